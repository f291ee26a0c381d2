package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mishaRomanov/online-store/internal/models"
	"github.com/mishaRomanov/online-store/internal/service/search"
	"github.com/mishaRomanov/online-store/internal/transport"
	"github.com/mishaRomanov/online-store/internal/util"
)

type ProductHandler struct {
	DB       *gorm.DB
	ES       *elasticsearch.Client
	ESIndex  string
	Producer EventPublisher
	PageSize int
}

var productSortColumns = map[string]string{
	"id":       "products.id",
	"name":     "products.name",
	"brand":    "products.brand",
	"category": "categories.name",
	"price":    "products.price",
	"date":     "products.created_at",
}

func (h *ProductHandler) publish(c echo.Context, event map[string]any) {
	if h.Producer == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "product_events", fmt.Sprint(event["product_id"]), event); err != nil {
		c.Logger().Errorf("Kafka publish error: %v", err)
	}
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	var product models.Product
	if err := h.DB.Preload("Category").First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorResponse(c, http.StatusNotFound, err)
		}
		return errorResponse(c, http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusOK, product)
}

// GetProducts lists the catalog with the storefront filters: free-text
// search, category, price bounds, sortable columns. Unknown sort keys fall
// back to id descending.
func (h *ProductHandler) GetProducts(c echo.Context) error {
	page := util.ClampPage(parseIntDefault(c.QueryParam("page"), 1))
	offset, limit := util.Calculate(page, h.PageSize)

	// Free-text search goes through Elasticsearch when it is configured.
	if q := c.QueryParam("search"); q != "" && h.ES != nil {
		total, items, err := search.Products(c.Request().Context(), h.ES, h.ESIndex, q, offset, limit)
		if err != nil {
			return errorResponse(c, http.StatusInternalServerError, err)
		}
		return c.JSON(http.StatusOK, transport.Pagination{
			Data:       items,
			Page:       page,
			PageSize:   limit,
			TotalPages: util.TotalPages(total, limit),
		})
	}

	var total int64
	if err := h.filtered(c).Count(&total).Error; err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}

	column, ok := productSortColumns[strings.ToLower(c.QueryParam("sort"))]
	direction := strings.ToLower(c.QueryParam("order"))
	if !ok {
		column, direction = "products.id", "desc"
	}
	if direction != "asc" && direction != "desc" {
		direction = "desc"
	}

	var items []models.Product
	err := h.filtered(c).Preload("Category").
		Order(column + " " + direction).
		Offset(offset).Limit(limit).
		Find(&items).Error
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}

	return c.JSON(http.StatusOK, transport.Pagination{
		Data:       items,
		Page:       page,
		PageSize:   limit,
		TotalPages: util.TotalPages(total, limit),
	})
}

// filtered builds the catalog query from the request's filter parameters;
// callers add sorting and pagination on top.
func (h *ProductHandler) filtered(c echo.Context) *gorm.DB {
	query := h.DB.Model(&models.Product{}).
		Joins("LEFT JOIN categories ON categories.id = products.category_id")

	if q := c.QueryParam("search"); q != "" {
		like := "%" + q + "%"
		query = query.Where("products.name LIKE ? OR products.description LIKE ?", like, like)
	}
	if cat := c.QueryParam("category"); cat != "" {
		query = query.Where("lower(categories.name) = ?", strings.ToLower(cat))
	}
	if v := c.QueryParam("minPrice"); v != "" {
		if minPrice, err := decimal.NewFromString(v); err == nil {
			query = query.Where("products.price >= ?", minPrice)
		}
	}
	if v := c.QueryParam("maxPrice"); v != "" {
		if maxPrice, err := decimal.NewFromString(v); err == nil {
			query = query.Where("products.price <= ?", maxPrice)
		}
	}
	return query
}

func (h *ProductHandler) GetCategories(c echo.Context) error {
	var categories []models.Category
	if err := h.DB.Order("name ASC").Find(&categories).Error; err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusOK, categories)
}

type productRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Brand       string          `json:"brand"`
	Price       decimal.Decimal `json:"price"`
	Count       uint            `json:"count"`
	CategoryID  int             `json:"category_id"`
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}
	if req.Name == "" || req.Price.IsNegative() {
		return errorResponse(c, http.StatusBadRequest, errors.New("name required, price must be >= 0"))
	}

	product := models.Product{
		Name:        req.Name,
		Description: req.Description,
		Brand:       req.Brand,
		Price:       req.Price,
		Count:       req.Count,
		CategoryID:  req.CategoryID,
		CreatedAt:   time.Now(),
	}
	if err := h.DB.Create(&product).Error; err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}

	h.publish(c, map[string]any{"type": "product_created", "product_id": product.ID})
	return c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) PatchProduct(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	var product models.Product
	if err := h.DB.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorResponse(c, http.StatusNotFound, err)
		}
		return errorResponse(c, http.StatusInternalServerError, err)
	}

	var req productRequest
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}
	if req.Price.IsNegative() {
		return errorResponse(c, http.StatusBadRequest, errors.New("price must be >= 0"))
	}

	product.Name = req.Name
	product.Description = req.Description
	product.Brand = req.Brand
	product.Price = req.Price
	product.Count = req.Count
	product.CategoryID = req.CategoryID
	if err := h.DB.Save(&product).Error; err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}

	h.publish(c, map[string]any{"type": "product_updated", "product_id": product.ID})
	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	if err := h.DB.Delete(&models.Product{}, id).Error; err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}

	h.publish(c, map[string]any{"type": "product_deleted", "product_id": id})
	return c.NoContent(http.StatusNoContent)
}
