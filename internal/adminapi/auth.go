package adminapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/envatex/envatex-api/internal/domain"
	"github.com/envatex/envatex-api/internal/webserver"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type loginPayload struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// bcrypt hash compared against when the username does not exist, so the
// unknown-username and wrong-password paths cost the same.
const dummyPasswordHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

func registerAuthRoutes() {
	webserver.PubPOST("/auth/login", login)
}

func login(c echo.Context) error {
	var payload loginPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse login parameters", nil)
	}
	payload.Username = strings.TrimSpace(payload.Username)
	if payload.Username == "" || payload.Password == "" {
		return fail(c, http.StatusBadRequest, "MISSING_CREDENTIALS", "Username and password are required", nil)
	}

	var admin domain.SysAdmin
	err := GetDB(c).Where("username = ?", payload.Username).First(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// burn a comparison so the outcome is indistinguishable from a
		// wrong password
		_ = bcrypt.CompareHashAndPassword([]byte(dummyPasswordHash), []byte(payload.Password))
		return fail(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid username or password", nil)
	}
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query admin account", nil)
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(payload.Password)) != nil ||
		!strings.EqualFold(admin.Status, domain.AdminStatusEnabled) {
		return fail(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid username or password", nil)
	}

	cfg := GetApp(c).Config()
	token, err := webserver.CreateToken(cfg.Jwt.Secret, &admin, time.Duration(cfg.Jwt.Expire)*time.Hour)
	if err != nil {
		zap.L().Error("failed to sign session token", zap.Error(err))
		return fail(c, http.StatusInternalServerError, "TOKEN_ERROR", "Failed to issue session token", nil)
	}

	if err := GetDB(c).Model(&domain.SysAdmin{}).Where("id = ?", admin.ID).
		Update("last_login", time.Now()).Error; err != nil {
		zap.L().Warn("failed to record last login", zap.Error(err))
	}

	return ok(c, map[string]interface{}{
		"access_token": token,
		"role":         admin.Level,
	})
}
