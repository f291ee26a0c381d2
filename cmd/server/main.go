package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/mishaRomanov/online-store/internal/catalog"
	"github.com/mishaRomanov/online-store/internal/config"
	"github.com/mishaRomanov/online-store/internal/es"
	"github.com/mishaRomanov/online-store/internal/handlers"
	"github.com/mishaRomanov/online-store/internal/logging"
	"github.com/mishaRomanov/online-store/internal/media"
	"github.com/mishaRomanov/online-store/internal/metrics"
	"github.com/mishaRomanov/online-store/internal/mykafka"
	"github.com/mishaRomanov/online-store/internal/order"
	httpserver "github.com/mishaRomanov/online-store/internal/transport/http"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LOG_LEVEL)

	db, err := config.InitDB(configuration)
	if err != nil {
		log.Fatalf("db init: %v", err)
	}

	jwtSecret := []byte(configuration.JWT_SECRET)
	refreshSecret := []byte(configuration.REFRESH_SECRET)

	// events stays a nil interface when kafka is unconfigured, so the
	// handlers' nil check keeps publishing disabled
	var producer *mykafka.Producer
	var events handlers.EventPublisher
	if configuration.KAFKA_ADDRESS != "" {
		producer = mykafka.NewProducer([]string{configuration.KAFKA_ADDRESS})
		events = producer
	} else {
		logger.Warn("KAFKA_ADDRESS not set, events disabled")
	}

	var esClient *elasticsearch.Client
	if configuration.ES_URL != "" {
		esClient, err = es.NewClient(configuration)
		if err != nil {
			log.Fatalf("elasticsearch: %v", err)
		}
	} else {
		logger.Warn("ES_URL not set, falling back to database search")
	}

	mediaStore, err := media.NewFSStore(configuration.MEDIA_DIR)
	if err != nil {
		log.Fatalf("media store: %v", err)
	}

	checkout := configuration.Checkout
	builder := &order.Builder{
		DB:      db,
		Catalog: &catalog.GormGateway{DB: db},
		Codes:   order.Generator{Length: checkout.CodeLength, Prefix: checkout.CodePrefix},
		Cfg:     checkout,
	}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(metrics.NewServerMetrics().Middleware)
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			c.SetRequest(req.WithContext(logging.IntoContext(req.Context(), logger)))
			return next(c)
		}
	})

	deps := httpserver.Deps{
		AuthHandler: &handlers.AuthHandler{DB: db, JWTSecret: jwtSecret, RefreshSecret: refreshSecret, Producer: events},
		ProductHandler: &handlers.ProductHandler{
			DB: db, ES: esClient, ESIndex: "product", Producer: events, PageSize: checkout.CatalogPageSize,
		},
		CartHandler:    &handlers.CartHandler{DB: db, Cfg: checkout},
		OrderHandler:   &handlers.OrderHandler{DB: db, Builder: builder, Payments: &order.Payments{DB: db}, Query: &order.Query{DB: db, PageSize: checkout.OrdersPageSize}, Producer: events},
		ReviewHandler:  &handlers.ReviewHandler{DB: db},
		MediaHandler:   &handlers.MediaHandler{DB: db, Store: mediaStore},
		SummaryHandler: &handlers.SummaryHandler{DB: db},
		JWTSecret:      jwtSecret,
	}
	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         ":8080",
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "err", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "err", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Error("db close error", "err", err)
		}
	}

	if producer != nil {
		if err := producer.Close(); err != nil {
			logger.Error("kafka close error", "err", err)
		}
	}

	logger.Info("shutdown complete")
}
