package adminapi

import (
	"net/http"
	"strconv"

	"github.com/envatex/envatex-api/internal/app"
	"github.com/envatex/envatex-api/internal/blobstore"
	"github.com/envatex/envatex-api/internal/webserver"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// RegisterRoutes attaches every API endpoint to the web server. Call
// after webserver.Init.
func RegisterRoutes() {
	registerHealthRoutes()
	registerAuthRoutes()
	registerProductRoutes()
	registerQuotationRoutes()
}

// GetApp returns the application context bound to the request
func GetApp(c echo.Context) app.AppContext {
	return webserver.AppFromContext(c)
}

// GetDB returns the request-scoped database handle
func GetDB(c echo.Context) *gorm.DB {
	return GetApp(c).DB()
}

// GetBlobStore returns the configured image blob store
func GetBlobStore(c echo.Context) blobstore.Store {
	return GetApp(c).BlobStore()
}

func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, data)
}

func created(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusCreated, data)
}

func fail(c echo.Context, status int, code, message string, details interface{}) error {
	resp := map[string]interface{}{
		"code":  code,
		"error": message,
	}
	if details != nil {
		resp["details"] = details
	}
	return c.JSON(status, resp)
}

func parseIDParam(c echo.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Param(name), 10, 64)
}
