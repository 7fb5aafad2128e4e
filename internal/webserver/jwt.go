package webserver

import (
	"net/http"
	"time"

	"github.com/envatex/envatex-api/internal/domain"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

// AdminClaims are the claims carried by a session token.
type AdminClaims struct {
	Username string `json:"username"`
	Level    string `json:"level"`
	jwt.RegisteredClaims
}

// CreateToken signs a session token for an admin account.
func CreateToken(secret string, admin *domain.SysAdmin, expire time.Duration) (string, error) {
	claims := &AdminClaims{
		Username: admin.Username,
		Level:    admin.Level,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   admin.Username,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expire)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// JwtGate validates the bearer token's signature and expiry. A missing,
// malformed or expired token yields 401; role checks happen afterwards
// in AdminOnly.
func JwtGate(secret string) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(secret),
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(AdminClaims)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(http.StatusUnauthorized, map[string]interface{}{
				"code":  "UNAUTHENTICATED",
				"error": "Missing or invalid token",
			})
		},
	})
}

// AdminOnly rejects tokens whose level claim is not admin.
func AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := c.Get("user").(*jwt.Token)
		if !ok {
			return c.JSON(http.StatusUnauthorized, map[string]interface{}{
				"code":  "UNAUTHENTICATED",
				"error": "Missing or invalid token",
			})
		}
		claims, ok := token.Claims.(*AdminClaims)
		if !ok || claims.Level != domain.AdminLevelAdmin {
			return c.JSON(http.StatusForbidden, map[string]interface{}{
				"code":  "FORBIDDEN",
				"error": "Admin role required",
			})
		}
		return next(c)
	}
}

// ClaimsFromContext returns the verified claims of the current request.
func ClaimsFromContext(c echo.Context) *AdminClaims {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return nil
	}
	claims, ok := token.Claims.(*AdminClaims)
	if !ok {
		return nil
	}
	return claims
}
