package handlers

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/mishaRomanov/online-store/internal/media"
	"github.com/mishaRomanov/online-store/internal/models"
)

const maxThumbnailBytes = 5 << 20

var allowedThumbnailExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

type MediaHandler struct {
	DB    *gorm.DB
	Store media.Store
}

// UploadThumbnail stores the uploaded image and points the product at the new
// reference; the previous reference is removed from the store.
func (h *MediaHandler) UploadThumbnail(c echo.Context) error {
	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	var product models.Product
	if err := h.DB.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorResponse(c, http.StatusNotFound, err)
		}
		return errorResponse(c, http.StatusInternalServerError, err)
	}

	file, err := c.FormFile("thumbnail")
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}
	if file.Size > maxThumbnailBytes {
		return errorResponse(c, http.StatusBadRequest, errors.New("file too large"))
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedThumbnailExt[ext] {
		return errorResponse(c, http.StatusBadRequest, errors.New("unsupported file type"))
	}

	src, err := file.Open()
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}

	ref, err := h.Store.Save(c.Request().Context(), data, ext)
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}

	old := product.Thumbnail
	product.Thumbnail = ref
	if err := h.DB.Save(&product).Error; err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}

	if old != "" {
		if err := h.Store.Delete(c.Request().Context(), old); err != nil {
			c.Logger().Errorf("media delete error: %v", err)
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"thumbnail": ref})
}

func (h *MediaHandler) DeleteThumbnail(c echo.Context) error {
	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	var product models.Product
	if err := h.DB.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorResponse(c, http.StatusNotFound, err)
		}
		return errorResponse(c, http.StatusInternalServerError, err)
	}

	if product.Thumbnail == "" {
		return c.NoContent(http.StatusNoContent)
	}

	ref := product.Thumbnail
	product.Thumbnail = ""
	if err := h.DB.Save(&product).Error; err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}
	if err := h.Store.Delete(c.Request().Context(), ref); err != nil {
		c.Logger().Errorf("media delete error: %v", err)
	}

	return c.NoContent(http.StatusNoContent)
}
