package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"parley/internal/infrastructure/firebase"
)

type AuthMiddleware struct {
	authClient *firebase.AuthClient
}

func NewAuthMiddleware(authClient *firebase.AuthClient) *AuthMiddleware {
	return &AuthMiddleware{
		authClient: authClient,
	}
}

// Authenticate verifies the bearer token and stores the caller's identity,
// locale and timezone on the request context.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "Authorization header is required")
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid authorization format")
		}

		uid, err := m.authClient.VerifyToken(c.Request().Context(), parts[1])
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
		}

		c.Set("uid", uid)
		c.Set("locale", requestLocale(c))
		c.Set("timezone", requestTimezone(c))

		return next(c)
	}
}

func requestLocale(c echo.Context) string {
	header := c.Request().Header.Get("Accept-Language")
	if header == "" {
		return "en"
	}
	// First tag only; the catalog handles matching and fallback.
	locale := strings.TrimSpace(strings.Split(header, ",")[0])
	if i := strings.Index(locale, ";"); i >= 0 {
		locale = locale[:i]
	}
	if locale == "" {
		return "en"
	}
	return locale
}

func requestTimezone(c echo.Context) string {
	if tz := c.Request().Header.Get("X-Timezone"); tz != "" {
		return tz
	}
	return "UTC"
}
