package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mishaRomanov/online-store/internal/handlers"
	"github.com/mishaRomanov/online-store/internal/jwtmiddleware"
	"github.com/mishaRomanov/online-store/internal/metrics"
)

type Deps struct {
	AuthHandler    *handlers.AuthHandler
	ProductHandler *handlers.ProductHandler
	CartHandler    *handlers.CartHandler
	OrderHandler   *handlers.OrderHandler
	ReviewHandler  *handlers.ReviewHandler
	MediaHandler   *handlers.MediaHandler
	SummaryHandler *handlers.SummaryHandler
	JWTSecret      []byte
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/metrics", metrics.Handler())

	api := e.Group("/api")

	api.POST("/register", d.AuthHandler.Register)
	api.POST("/login", d.AuthHandler.Login)
	api.POST("/refresh", d.AuthHandler.Refresh)
	api.POST("/logout", d.AuthHandler.Logout)

	api.GET("/products", d.ProductHandler.GetProducts)
	api.GET("/products/:id", d.ProductHandler.GetProduct)
	api.GET("/categories", d.ProductHandler.GetCategories)
	api.GET("/cart", d.CartHandler.GetCart)
	api.GET("/reviews/average-rating/:productId", d.ReviewHandler.AverageRating)

	authed := api.Group("", jwtmiddleware.JWTMiddleware(d.JWTSecret))

	authed.POST("/orders", d.OrderHandler.CreateOrder)
	authed.POST("/orders/process/:code", d.OrderHandler.ProcessPayment)
	authed.GET("/orders", d.OrderHandler.GetOrders)
	authed.GET("/orders/:code", d.OrderHandler.GetOrderByCode)
	authed.POST("/reviews/:productId", d.ReviewHandler.AddReview)
	authed.DELETE("/reviews/:id", d.ReviewHandler.DeleteReview)

	admin := authed.Group("/admin", jwtmiddleware.RequireAdmin)

	admin.POST("/products", d.ProductHandler.CreateProduct)
	admin.PUT("/products/:id", d.ProductHandler.PatchProduct)
	admin.DELETE("/products/:id", d.ProductHandler.DeleteProduct)
	admin.POST("/products/:id/thumbnail", d.MediaHandler.UploadThumbnail)
	admin.DELETE("/products/:id/thumbnail", d.MediaHandler.DeleteThumbnail)
	admin.PUT("/orders/:id", d.OrderHandler.UpdateOrder)
	admin.DELETE("/orders/:id", d.OrderHandler.DeleteOrder)
	admin.GET("/summary", d.SummaryHandler.GetSummary)
}
