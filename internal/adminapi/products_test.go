package adminapi

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/envatex/envatex-api/internal/domain"
	jsoniter "github.com/json-iterator/go"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func decodeProduct(t *testing.T, data []byte) domain.Product {
	t.Helper()
	var p domain.Product
	require.NoError(t, jsoniter.Unmarshal(data, &p))
	return p
}

func TestProductListIsPublicAndOrdered(t *testing.T) {
	env := newTestEnv(t)
	env.seedProduct(t, "alpha")
	env.seedProduct(t, "beta")

	rec := env.request(http.MethodGet, "/api/products", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var rows []domain.Product
	require.NoError(t, jsoniter.Unmarshal(rec.Body.Bytes(), &rows))
	require.Len(t, rows, 2)
	require.Less(t, rows[0].ID, rows[1].ID)
}

func TestProductCreate(t *testing.T) {
	env := newTestEnv(t)
	token := env.adminToken(t)

	rec := env.request(http.MethodPost, "/api/products", token,
		`{"name":"widget","description":"a widget","sku":"W-1"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	p := decodeProduct(t, rec.Body.Bytes())
	require.NotZero(t, p.ID)
	require.Equal(t, "widget", p.Name)
	require.NotNil(t, p.Description)
	require.Equal(t, "a widget", *p.Description)
	require.NotNil(t, p.Sku)
	require.Equal(t, "W-1", *p.Sku)
	require.Nil(t, p.ImageURL)
}

func TestProductCreateValidation(t *testing.T) {
	env := newTestEnv(t)
	token := env.adminToken(t)

	rec := env.request(http.MethodPost, "/api/products", token, `{"description":"nameless"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.request(http.MethodPost, "/api/products", token, `{"name":"   "}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProductCreateConflicts(t *testing.T) {
	env := newTestEnv(t)
	token := env.adminToken(t)

	rec := env.request(http.MethodPost, "/api/products", token, `{"name":"widget","sku":"W-1"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.request(http.MethodPost, "/api/products", token, `{"name":"widget"}`)
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = env.request(http.MethodPost, "/api/products", token, `{"name":"other","sku":"W-1"}`)
	require.Equal(t, http.StatusConflict, rec.Code)

	// two products without a SKU must not collide
	rec = env.request(http.MethodPost, "/api/products", token, `{"name":"bare-one"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = env.request(http.MethodPost, "/api/products", token, `{"name":"bare-two"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
}

func TestProductCreateRequiresAdmin(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(http.MethodPost, "/api/products", "", `{"name":"widget"}`)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var count int64
	env.db.Model(&domain.Product{}).Count(&count)
	require.Zero(t, count)
}

func multipartProductRequest(t *testing.T, target, token string, fields map[string]string, withImage bool) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if withImage {
		fw, err := w.CreateFormFile("image", "photo.png")
		require.NoError(t, err)
		_, err = fw.Write([]byte("fake-png-bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	return req
}

func TestProductCreateWithImageUpload(t *testing.T) {
	env := newTestEnv(t)
	token := env.adminToken(t)

	req := multipartProductRequest(t, "/api/products", token, map[string]string{"name": "pictured"}, true)
	rec := httptest.NewRecorder()
	env.echo.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	p := decodeProduct(t, rec.Body.Bytes())
	require.NotNil(t, p.ImageURL)
	require.Contains(t, *p.ImageURL, "https://blob.test/")
	require.Len(t, env.blob.objects, 1)
}

func TestProductCreateUploadFailureAbortsWrite(t *testing.T) {
	env := newTestEnv(t)
	token := env.adminToken(t)
	env.blob.failing = true

	req := multipartProductRequest(t, "/api/products", token, map[string]string{"name": "pictured"}, true)
	rec := httptest.NewRecorder()
	env.echo.ServeHTTP(rec, req)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Contains(t, rec.Body.String(), "UPLOAD_FAILED")

	var count int64
	env.db.Model(&domain.Product{}).Count(&count)
	require.Zero(t, count)
}

func TestProductPartialUpdate(t *testing.T) {
	env := newTestEnv(t)
	token := env.adminToken(t)

	rec := env.request(http.MethodPost, "/api/products", token,
		`{"name":"widget","description":"original text","sku":"W-1"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	p := decodeProduct(t, rec.Body.Bytes())

	// rename only; empty strings leave the other fields untouched
	rec = env.request(http.MethodPut, fmt.Sprintf("/api/products/%d", p.ID), token,
		`{"name":"widget-2","description":"","sku":""}`)
	require.Equal(t, http.StatusOK, rec.Code)

	updated := decodeProduct(t, rec.Body.Bytes())
	require.Equal(t, "widget-2", updated.Name)
	require.NotNil(t, updated.Description)
	require.Equal(t, "original text", *updated.Description)
	require.NotNil(t, updated.Sku)
	require.Equal(t, "W-1", *updated.Sku)
}

func TestProductUpdateNotFound(t *testing.T) {
	env := newTestEnv(t)
	token := env.adminToken(t)

	rec := env.request(http.MethodPut, "/api/products/9999", token, `{"name":"ghost"}`)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProductUpdateNameConflict(t *testing.T) {
	env := newTestEnv(t)
	token := env.adminToken(t)
	env.seedProduct(t, "alpha")
	p := env.seedProduct(t, "beta")

	rec := env.request(http.MethodPut, fmt.Sprintf("/api/products/%d", p.ID), token, `{"name":"alpha"}`)
	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestProductDelete(t *testing.T) {
	env := newTestEnv(t)
	token := env.adminToken(t)
	p := env.seedProduct(t, "doomed")

	rec := env.request(http.MethodDelete, fmt.Sprintf("/api/products/%d", p.ID), token, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.request(http.MethodDelete, fmt.Sprintf("/api/products/%d", p.ID), token, "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	var count int64
	env.db.Model(&domain.Product{}).Count(&count)
	require.Zero(t, count)
}
