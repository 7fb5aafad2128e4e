package adminapi

import (
	"github.com/envatex/envatex-api/internal/webserver"
	"github.com/labstack/echo/v4"
)

func registerHealthRoutes() {
	webserver.PubGET("/health", healthCheck)
}

func healthCheck(c echo.Context) error {
	return ok(c, map[string]interface{}{
		"status":  "ok",
		"message": "Envatex API is healthy!",
	})
}
