package webserver

import (
	"fmt"

	"github.com/envatex/envatex-api/internal/app"
	jsoniter "github.com/json-iterator/go"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

// Context keys under which request middleware stores application state.
const (
	ContextAppKey = "envatex_app"
)

type WebServer struct {
	appCtx app.AppContext
	root   *echo.Echo
	pub    *echo.Group
	api    *echo.Group
}

var server *WebServer

// jsonSerializer implements echo.JSONSerializer on top of json-iterator.
type jsonSerializer struct{}

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func (jsonSerializer) Serialize(c echo.Context, i interface{}, indent string) error {
	enc := json.NewEncoder(c.Response())
	if indent != "" {
		enc.SetIndent("", indent)
	}
	return enc.Encode(i)
}

func (jsonSerializer) Deserialize(c echo.Context, i interface{}) error {
	return json.NewDecoder(c.Request().Body).Decode(i)
}

// Init builds the web server singleton. Admin routes registered through
// ApiGET/ApiPOST/... pass the JWT gate; Pub* routes are open.
func Init(appCtx app.AppContext) *WebServer {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.JSONSerializer = jsonSerializer{}

	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(ContextAppKey, appCtx)
			return next(c)
		}
	})

	cfg := appCtx.Config()
	if cfg.Blobstore.Type == "" || cfg.Blobstore.Type == "local" {
		e.Static("/uploads", cfg.UploadsDir())
	}

	pub := e.Group("/api")
	api := e.Group("/api", JwtGate(cfg.Jwt.Secret), AdminOnly)

	server = &WebServer{appCtx: appCtx, root: e, pub: pub, api: api}
	return server
}

// Echo exposes the underlying engine (used in tests).
func (s *WebServer) Echo() *echo.Echo {
	return s.root
}

func (s *WebServer) Listen() error {
	cfg := s.appCtx.Config()
	addr := fmt.Sprintf("%s:%d", cfg.Web.Host, cfg.Web.Port)
	zap.S().Infof("Starting web server on %s", addr)
	return s.root.Start(addr)
}

// Gated admin route registration

func ApiGET(path string, h echo.HandlerFunc) {
	server.api.GET(path, h)
}

func ApiPOST(path string, h echo.HandlerFunc) {
	server.api.POST(path, h)
}

func ApiPUT(path string, h echo.HandlerFunc) {
	server.api.PUT(path, h)
}

func ApiPATCH(path string, h echo.HandlerFunc) {
	server.api.PATCH(path, h)
}

func ApiDELETE(path string, h echo.HandlerFunc) {
	server.api.DELETE(path, h)
}

// Public route registration

func PubGET(path string, h echo.HandlerFunc) {
	server.pub.GET(path, h)
}

func PubPOST(path string, h echo.HandlerFunc) {
	server.pub.POST(path, h)
}

// AppFromContext returns the application context stored by the request
// middleware.
func AppFromContext(c echo.Context) app.AppContext {
	return c.Get(ContextAppKey).(app.AppContext)
}
