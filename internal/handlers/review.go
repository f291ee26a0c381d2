package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/mishaRomanov/online-store/internal/models"
)

type ReviewHandler struct {
	DB *gorm.DB
}

// AddReview creates or replaces the caller's review of a product. One review
// per user per product.
func (h *ReviewHandler) AddReview(c echo.Context) error {
	who, err := caller(c)
	if err != nil {
		return err
	}

	productID, err := strconv.Atoi(c.Param("productId"))
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	var req struct {
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	}
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}
	if req.Rating < 1 || req.Rating > 5 {
		return errorResponse(c, http.StatusBadRequest, errors.New("rating must be between 1 and 5"))
	}

	var product models.Product
	if err := h.DB.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorResponse(c, http.StatusNotFound, err)
		}
		return errorResponse(c, http.StatusInternalServerError, err)
	}

	var review models.Review
	err = h.DB.Where("user_id = ? AND product_id = ?", who.UserID, productID).First(&review).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		review = models.Review{
			UserID:    who.UserID,
			ProductID: productID,
			Rating:    req.Rating,
			Comment:   req.Comment,
			CreatedAt: time.Now(),
		}
		if err := h.DB.Create(&review).Error; err != nil {
			return errorResponse(c, http.StatusInternalServerError, err)
		}
	case err != nil:
		return errorResponse(c, http.StatusInternalServerError, err)
	default:
		review.Rating = req.Rating
		review.Comment = req.Comment
		if err := h.DB.Save(&review).Error; err != nil {
			return errorResponse(c, http.StatusInternalServerError, err)
		}
	}

	return c.JSON(http.StatusOK, review)
}

func (h *ReviewHandler) AverageRating(c echo.Context) error {
	productID, err := strconv.Atoi(c.Param("productId"))
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	var result struct {
		Average float64 `json:"average"`
		Count   int64   `json:"count"`
	}
	err = h.DB.Model(&models.Review{}).
		Where("product_id = ?", productID).
		Select("COALESCE(AVG(rating), 0) AS average, COUNT(*) AS count").
		Scan(&result).Error
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}

	return c.JSON(http.StatusOK, result)
}

// DeleteReview removes the caller's own review; admins may remove any.
func (h *ReviewHandler) DeleteReview(c echo.Context) error {
	who, err := caller(c)
	if err != nil {
		return err
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	var review models.Review
	if err := h.DB.First(&review, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorResponse(c, http.StatusNotFound, err)
		}
		return errorResponse(c, http.StatusInternalServerError, err)
	}

	if review.UserID != who.UserID && !who.IsAdmin() {
		return echo.NewHTTPError(http.StatusForbidden, "not your review")
	}

	if err := h.DB.Delete(&review).Error; err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}
	return c.NoContent(http.StatusNoContent)
}
