package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ntarasov/shop_backend/internal/errs"
)

type Response struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func errorResponse(c echo.Context, code int, msg string) error {
	return c.JSON(code, Response{Status: "error", Message: msg})
}

// serviceError maps the service error taxonomy onto HTTP statuses. The
// mapping lives here so the services stay transport-free.
func serviceError(c echo.Context, err error) error {
	var stock *errs.StockExceeded
	switch {
	case errors.As(err, &stock):
		return c.JSON(http.StatusBadRequest, echo.Map{
			"status":    "error",
			"message":   stock.Error(),
			"available": stock.Available,
			"in_cart":   stock.InCart,
			"requested": stock.Requested,
		})
	case errors.Is(err, errs.ErrNotFound):
		return errorResponse(c, http.StatusNotFound, err.Error())
	case errors.Is(err, errs.ErrValidation):
		return errorResponse(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, errs.ErrConflict):
		return errorResponse(c, http.StatusConflict, err.Error())
	default:
		return errorResponse(c, http.StatusInternalServerError, "internal server error")
	}
}
