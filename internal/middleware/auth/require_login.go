package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (m *Middleware) RequireLogin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, err := m.resolve(c)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
		}
		setUserContext(c, claims)
		return next(c)
	}
}
