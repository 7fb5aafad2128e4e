package adminapi

import (
	"errors"
	"mime/multipart"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/envatex/envatex-api/internal/domain"
	"github.com/envatex/envatex-api/internal/webserver"
	"github.com/envatex/envatex-api/pkg/common"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type productPayload struct {
	Name        string `json:"name" form:"name"`
	Description string `json:"description" form:"description"`
	Sku         string `json:"sku" form:"sku"`
	ImageURL    string `json:"image_url" form:"image_url"`
}

// registerProductRoutes registers catalog endpoints. Listing and single
// fetch are public; mutations require the admin gate.
func registerProductRoutes() {
	webserver.PubGET("/products", listProducts)
	webserver.PubGET("/products/:id", getProduct)
	webserver.ApiPOST("/products", createProduct)
	webserver.ApiPUT("/products/:id", updateProduct)
	webserver.ApiDELETE("/products/:id", deleteProduct)
}

func listProducts(c echo.Context) error {
	var rows []domain.Product
	if err := GetDB(c).Order("id").Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", nil)
	}
	return ok(c, rows)
}

func getProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	var p domain.Product
	if err := GetDB(c).Where("id = ?", id).First(&p).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query product", nil)
	}
	return ok(c, p)
}

// uploadProductImage pushes an attached image file to the blob store and
// returns its durable URL. Called before any row is written, so an
// upload failure never leaves a half-created product.
func uploadProductImage(c echo.Context, fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()
	name := common.UUID() + path.Ext(fh.Filename)
	return GetBlobStore(c).Put(c.Request().Context(), name, src)
}

// imageFile returns the attached image file on multipart requests, nil
// when the request carries none.
func imageFile(c echo.Context) *multipart.FileHeader {
	if !strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
		return nil
	}
	fh, err := c.FormFile("image")
	if err != nil {
		return nil
	}
	return fh
}

func createProduct(c echo.Context) error {
	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product parameters", nil)
	}
	payload.Name = strings.TrimSpace(payload.Name)
	if payload.Name == "" {
		return fail(c, http.StatusBadRequest, "MISSING_NAME", "Product name is required", nil)
	}
	payload.Sku = strings.TrimSpace(payload.Sku)

	// enforce name/sku uniqueness up front so the failure surfaces as a
	// conflict rather than a bare constraint error
	var dup domain.Product
	if err := GetDB(c).Where("name = ?", payload.Name).First(&dup).Error; err == nil {
		return fail(c, http.StatusConflict, "DUPLICATE_PRODUCT", "Product with this name already exists", nil)
	}
	if payload.Sku != "" {
		if err := GetDB(c).Where("sku = ?", payload.Sku).First(&dup).Error; err == nil {
			return fail(c, http.StatusConflict, "DUPLICATE_SKU", "Product with this SKU already exists", nil)
		}
	}

	imageURL := strings.TrimSpace(payload.ImageURL)
	if fh := imageFile(c); fh != nil {
		url, err := uploadProductImage(c, fh)
		if err != nil {
			zap.L().Error("product image upload failed", zap.Error(err))
			return fail(c, http.StatusInternalServerError, "UPLOAD_FAILED", "Failed to upload product image", nil)
		}
		imageURL = url
	}

	now := time.Now()
	p := domain.Product{
		Name:        payload.Name,
		Description: optString(payload.Description),
		Sku:         optString(payload.Sku),
		ImageURL:    optString(imageURL),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := GetDB(c).Create(&p).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create product", nil)
	}
	return created(c, p)
}

func updateProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	var p domain.Product
	if err := GetDB(c).Where("id = ?", id).First(&p).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query product", nil)
	}

	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product parameters", nil)
	}

	// partial update: absent/empty fields stay untouched, an empty string
	// never clears a stored value
	updates := map[string]interface{}{}
	if name := strings.TrimSpace(payload.Name); name != "" {
		var dup domain.Product
		if err := GetDB(c).Where("name = ? AND id != ?", name, id).First(&dup).Error; err == nil {
			return fail(c, http.StatusConflict, "DUPLICATE_PRODUCT", "Another product with this name already exists", nil)
		}
		updates["name"] = name
	}
	if payload.Description != "" {
		updates["description"] = payload.Description
	}
	if sku := strings.TrimSpace(payload.Sku); sku != "" {
		var dup domain.Product
		if err := GetDB(c).Where("sku = ? AND id != ?", sku, id).First(&dup).Error; err == nil {
			return fail(c, http.StatusConflict, "DUPLICATE_SKU", "Another product with this SKU already exists", nil)
		}
		updates["sku"] = sku
	}
	if imageURL := strings.TrimSpace(payload.ImageURL); imageURL != "" {
		updates["image_url"] = imageURL
	}
	if fh := imageFile(c); fh != nil {
		url, err := uploadProductImage(c, fh)
		if err != nil {
			zap.L().Error("product image upload failed", zap.Error(err))
			return fail(c, http.StatusInternalServerError, "UPLOAD_FAILED", "Failed to upload product image", nil)
		}
		updates["image_url"] = url
	}
	updates["updated_at"] = time.Now()

	if err := GetDB(c).Model(&p).Updates(updates).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update product", nil)
	}
	GetDB(c).Where("id = ?", id).First(&p)
	return ok(c, p)
}

func deleteProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	var p domain.Product
	if err := GetDB(c).Where("id = ?", id).First(&p).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query product", nil)
	}
	if err := GetDB(c).Delete(&p).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete product", nil)
	}
	zap.L().Info("product deleted", zap.Int64("id", id))
	return ok(c, map[string]interface{}{"id": id})
}

func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
