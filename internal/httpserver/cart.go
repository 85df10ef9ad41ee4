package httpserver

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/ntarasov/shop_backend/internal/logging"
	authmw "github.com/ntarasov/shop_backend/internal/middleware/auth"
	"github.com/ntarasov/shop_backend/internal/mykafka"
	"github.com/ntarasov/shop_backend/internal/service"
	"github.com/ntarasov/shop_backend/internal/transport"
)

type CartHTTP struct {
	Svc      *service.CartService
	Producer *mykafka.Producer
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.get")

	userID, err := authmw.UserID(c)
	if err != nil {
		return err
	}

	view, err := h.Svc.GetCart(ctx, userID)
	if err != nil {
		l.Error("get_cart_error", "error", err)
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, view)
}

func (h *CartHTTP) AddItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add")

	userID, err := authmw.UserID(c)
	if err != nil {
		return err
	}

	var req transport.AddCartItemRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("add_to_cart_error", "status", 400, "error", err)
		return errorResponse(c, http.StatusBadRequest, "invalid body")
	}
	if req.ProductID == uuid.Nil {
		return errorResponse(c, http.StatusBadRequest, "product_id required")
	}

	view, err := h.Svc.AddItem(ctx, userID, req.ProductID, req.Quantity)
	if err != nil {
		l.Warn("add_to_cart_error", "error", err)
		return serviceError(c, err)
	}

	h.publish(c, "cart_events", userID.String(), map[string]any{
		"type":       "cart_item_added",
		"user_id":    userID,
		"product_id": req.ProductID,
		"quantity":   view.Quantity,
	})

	return c.JSON(http.StatusCreated, view)
}

func (h *CartHTTP) UpdateItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.update")

	userID, err := authmw.UserID(c)
	if err != nil {
		return err
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid item id")
	}

	var req transport.UpdateCartItemRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_cart_item_error", "status", 400, "error", err)
		return errorResponse(c, http.StatusBadRequest, "invalid body")
	}

	view, err := h.Svc.UpdateItem(ctx, itemID, userID, req.Quantity)
	if err != nil {
		l.Warn("update_cart_item_error", "error", err)
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, view)
}

func (h *CartHTTP) RemoveItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove")

	userID, err := authmw.UserID(c)
	if err != nil {
		return err
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid item id")
	}

	if err := h.Svc.RemoveItem(ctx, itemID, userID); err != nil {
		l.Warn("remove_cart_item_error", "error", err)
		return serviceError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *CartHTTP) ClearCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.clear")

	userID, err := authmw.UserID(c)
	if err != nil {
		return err
	}

	if _, err := h.Svc.ClearCart(ctx, userID); err != nil {
		l.Error("clear_cart_error", "error", err)
		return serviceError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
