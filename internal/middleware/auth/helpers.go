package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/ntarasov/shop_backend/internal/tokens"
)

const (
	ContextUserID = "user_id"
	ContextRole   = "role"
)

type Middleware struct {
	JWTSecret []byte
}

func bearerToken(c echo.Context) (string, error) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return "", errors.New("missing authorization header")
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", errors.New("malformed authorization header")
	}
	return parts[1], nil
}

func (m *Middleware) resolve(c echo.Context) (*tokens.AccessClaims, error) {
	raw, err := bearerToken(c)
	if err != nil {
		return nil, err
	}
	claims, err := tokens.AccessClaimsFromToken(raw, m.JWTSecret)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

func setUserContext(c echo.Context, claims *tokens.AccessClaims) {
	c.Set(ContextUserID, claims.Subject)
	c.Set(ContextRole, claims.Role)
}

// UserID reads the authenticated user id out of the echo context.
func UserID(c echo.Context) (uuid.UUID, error) {
	v, ok := c.Get(ContextUserID).(string)
	if !ok || v == "" {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	id, err := uuid.Parse(v)
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	return id, nil
}
