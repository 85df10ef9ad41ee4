package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (m *Middleware) AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, err := m.resolve(c)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
		}
		if claims.Role != "admin" {
			return echo.NewHTTPError(http.StatusForbidden, "admin rights required")
		}
		setUserContext(c, claims)
		return next(c)
	}
}
