package adminapi

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/envatex/envatex-api/internal/domain"
	"github.com/envatex/envatex-api/internal/webserver"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type quotationItemPayload struct {
	ProductID int64 `json:"product_id" form:"product_id"`
	Quantity  int   `json:"quantity" form:"quantity"`
}

type quotationPayload struct {
	CustomerName  string                 `json:"customer_name" form:"customer_name"`
	CustomerEmail string                 `json:"customer_email" form:"customer_email"`
	CustomerPhone string                 `json:"customer_phone" form:"customer_phone"`
	Items         []quotationItemPayload `json:"items"`
}

type quotationRespondPayload struct {
	AdminResponse string `json:"admin_response" form:"admin_response"`
}

// productNotFoundError aborts a quotation transaction when an item
// references a product that does not exist.
type productNotFoundError struct {
	id int64
}

func (e productNotFoundError) Error() string {
	return fmt.Sprintf("product with id %d not found", e.id)
}

// registerQuotationRoutes registers quotation endpoints. Creation is
// public; listing, responding and deletion require the admin gate.
func registerQuotationRoutes() {
	webserver.PubPOST("/quotations", createQuotation)
	webserver.ApiGET("/quotations", listQuotations)
	webserver.ApiPATCH("/quotations/:id", respondQuotation)
	webserver.ApiDELETE("/quotations/:id", deleteQuotation)
}

// createQuotation persists the quotation header together with all of its
// items in one transaction. If any item references a missing product the
// whole write rolls back and nothing is persisted.
func createQuotation(c echo.Context) error {
	var payload quotationPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse quotation parameters", nil)
	}
	payload.CustomerName = strings.TrimSpace(payload.CustomerName)
	payload.CustomerEmail = strings.TrimSpace(payload.CustomerEmail)
	if payload.CustomerName == "" || payload.CustomerEmail == "" {
		return fail(c, http.StatusBadRequest, "MISSING_FIELDS", "customer_name and customer_email are required", nil)
	}

	q := domain.Quotation{
		CustomerName:  payload.CustomerName,
		CustomerEmail: payload.CustomerEmail,
		CustomerPhone: optString(strings.TrimSpace(payload.CustomerPhone)),
		Status:        domain.QuotationPending,
		CreatedAt:     time.Now(),
	}

	err := GetDB(c).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Create(&q).Error; err != nil {
			return err
		}
		for _, it := range payload.Items {
			var p domain.Product
			if err := tx.Where("id = ?", it.ProductID).First(&p).Error; errors.Is(err, gorm.ErrRecordNotFound) {
				return productNotFoundError{id: it.ProductID}
			} else if err != nil {
				return err
			}
			item := domain.QuotationItem{
				Quantity:    it.Quantity,
				QuotationID: q.ID,
				ProductID:   p.ID,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
		}
		return nil
	})

	var notFound productNotFoundError
	if errors.As(err, &notFound) {
		return fail(c, http.StatusNotFound, "PRODUCT_NOT_FOUND",
			fmt.Sprintf("Product with id %d not found", notFound.id), nil)
	}
	if err != nil {
		zap.L().Error("failed to create quotation", zap.Error(err))
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create quotation", nil)
	}

	return created(c, map[string]interface{}{
		"message": "Quotation created successfully",
		"id":      q.ID,
	})
}

func listQuotations(c echo.Context) error {
	var rows []domain.Quotation
	if err := GetDB(c).Preload("Items").Order("created_at DESC, id DESC").Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query quotations", nil)
	}
	return ok(c, rows)
}

// respondQuotation records the admin response and moves the quotation to
// Responded. Applying it again simply overwrites the response text; the
// status never transitions back.
func respondQuotation(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid quotation ID", nil)
	}
	var payload quotationRespondPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse response parameters", nil)
	}
	payload.AdminResponse = strings.TrimSpace(payload.AdminResponse)
	if payload.AdminResponse == "" {
		return fail(c, http.StatusBadRequest, "MISSING_RESPONSE", "admin_response is required", nil)
	}

	var q domain.Quotation
	if err := GetDB(c).Where("id = ?", id).First(&q).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "QUOTATION_NOT_FOUND", "Quotation not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query quotation", nil)
	}

	if err := GetDB(c).Model(&q).Updates(map[string]interface{}{
		"admin_response": payload.AdminResponse,
		"status":         domain.QuotationResponded,
	}).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update quotation", nil)
	}

	GetDB(c).Preload("Items").Where("id = ?", id).First(&q)
	return ok(c, q)
}

// deleteQuotation removes the quotation and every item it owns, items
// first, inside one transaction.
func deleteQuotation(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid quotation ID", nil)
	}
	var q domain.Quotation
	if err := GetDB(c).Where("id = ?", id).First(&q).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "QUOTATION_NOT_FOUND", "Quotation not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query quotation", nil)
	}

	err = GetDB(c).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("quotation_id = ?", id).Delete(&domain.QuotationItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Quotation{}, id).Error
	})
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete quotation", nil)
	}

	zap.L().Info("quotation deleted", zap.Int64("id", id))
	return ok(c, map[string]interface{}{"id": id})
}
