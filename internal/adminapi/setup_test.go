package adminapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/envatex/envatex-api/config"
	"github.com/envatex/envatex-api/internal/app"
	"github.com/envatex/envatex-api/internal/domain"
	"github.com/envatex/envatex-api/internal/webserver"
	"github.com/envatex/envatex-api/pkg/common"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testJwtSecret = "test-secret"

// fakeBlobStore records uploads in memory and can be flipped to fail.
type fakeBlobStore struct {
	objects map[string][]byte
	failing bool
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{objects: map[string][]byte{}}
}

func (s *fakeBlobStore) Put(_ context.Context, name string, r io.Reader) (string, error) {
	if s.failing {
		return "", errors.New("blobstore unavailable")
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	s.objects[name] = data
	return "https://blob.test/" + name, nil
}

type testEnv struct {
	echo *echo.Echo
	db   *gorm.DB
	blob *fakeBlobStore
	cfg  *config.AppConfig
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	// Unique in-memory database per test to avoid cross-test collisions.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(domain.Tables...))

	cfg := &config.AppConfig{
		System: config.SysConfig{Workdir: t.TempDir()},
		Jwt:    config.JwtConfig{Secret: testJwtSecret, Expire: 1},
	}
	application := app.NewApplication(cfg)
	application.OverrideDB(db)
	blob := newFakeBlobStore()
	application.OverrideBlobStore(blob)

	ws := webserver.Init(application)
	RegisterRoutes()

	return &testEnv{echo: ws.Echo(), db: db, blob: blob, cfg: cfg}
}

func (env *testEnv) seedAdmin(t *testing.T, username, password string) *domain.SysAdmin {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	admin := &domain.SysAdmin{
		ID:       common.UUIDint64(),
		Username: username,
		Password: string(hashed),
		Level:    domain.AdminLevelAdmin,
		Status:   domain.AdminStatusEnabled,
	}
	require.NoError(t, env.db.Create(admin).Error)
	return admin
}

func (env *testEnv) adminToken(t *testing.T) string {
	t.Helper()
	token, err := webserver.CreateToken(testJwtSecret, &domain.SysAdmin{
		Username: "admin",
		Level:    domain.AdminLevelAdmin,
	}, time.Hour)
	require.NoError(t, err)
	return token
}

func (env *testEnv) tokenWithLevel(t *testing.T, level string) string {
	t.Helper()
	token, err := webserver.CreateToken(testJwtSecret, &domain.SysAdmin{
		Username: "viewer",
		Level:    level,
	}, time.Hour)
	require.NoError(t, err)
	return token
}

func (env *testEnv) seedProduct(t *testing.T, name string) *domain.Product {
	t.Helper()
	p := &domain.Product{Name: name, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	require.NoError(t, env.db.Create(p).Error)
	return p
}

// request performs an HTTP round trip against the test server. A
// non-empty token is attached as a bearer credential.
func (env *testEnv) request(method, target, token, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	env.echo.ServeHTTP(rec, req)
	return rec
}

func TestHealthCheck(t *testing.T) {
	env := newTestEnv(t)
	rec := env.request(http.MethodGet, "/api/health", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"status":"ok"`)
}
