package httpserver

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/ntarasov/shop_backend/internal/es"
	"github.com/ntarasov/shop_backend/internal/logging"
	"github.com/ntarasov/shop_backend/internal/service"
	"github.com/ntarasov/shop_backend/internal/transport"

	"github.com/ntarasov/shop_backend/internal/mykafka"
)

type ProductHTTP struct {
	Svc      *service.ProductService
	Producer *mykafka.Producer
	Indexer  *es.Indexer
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

func parseBoolParam(s string) *bool {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return nil
	}
	return &v
}

func parseDecimalParam(s string) *decimal.Decimal {
	if s == "" {
		return nil
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}
	return &v
}

func (h *ProductHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid product id")
	}

	product, err := h.Svc.GetProduct(ctx, id)
	if err != nil {
		l.Warn("get_product_error", "error", err)
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, product)
}

func (h *ProductHTTP) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.list")

	params := service.ListProductsParams{
		Name:     c.QueryParam("q"),
		InStock:  parseBoolParam(c.QueryParam("available")),
		MinPrice: parseDecimalParam(c.QueryParam("min_price")),
		MaxPrice: parseDecimalParam(c.QueryParam("max_price")),
		Page:     parseIntDefault(c.QueryParam("page"), 1),
		Size:     parseIntDefault(c.QueryParam("size"), 0),
	}

	list, err := h.Svc.ListProducts(ctx, params)
	if err != nil {
		l.Error("list_products_error", "error", err)
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"data": list.Items,
		"meta": list.Meta,
	})
}

func (h *ProductHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create")

	var req transport.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_product_error", "status", 400, "error", err)
		return errorResponse(c, http.StatusBadRequest, "invalid body")
	}

	product, err := h.Svc.CreateProduct(ctx, req)
	if err != nil {
		l.Warn("create_product_error", "error", err)
		return serviceError(c, err)
	}

	if err := h.Indexer.IndexProduct(ctx, product); err != nil {
		l.Error("index_product_error", "error", err)
	}
	h.publish(c, "product_events", product.ID.String(), map[string]any{
		"type":       "product_created",
		"product_id": product.ID,
		"name":       product.Name,
	})

	return c.JSON(http.StatusCreated, product)
}

func (h *ProductHTTP) PatchProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.patch")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid product id")
	}

	var req transport.PatchProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("patch_product_error", "status", 400, "error", err)
		return errorResponse(c, http.StatusBadRequest, "invalid body")
	}

	product, err := h.Svc.PatchProduct(ctx, id, req)
	if err != nil {
		l.Warn("patch_product_error", "error", err)
		return serviceError(c, err)
	}

	if err := h.Indexer.IndexProduct(ctx, product); err != nil {
		l.Error("index_product_error", "error", err)
	}
	h.publish(c, "product_events", product.ID.String(), map[string]any{
		"type":       "product_updated",
		"product_id": product.ID,
		"name":       product.Name,
	})

	return c.JSON(http.StatusOK, product)
}

func (h *ProductHTTP) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.delete")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid product id")
	}

	if err := h.Svc.DeleteProduct(ctx, id); err != nil {
		l.Warn("delete_product_error", "error", err)
		return serviceError(c, err)
	}

	if err := h.Indexer.DeleteProduct(ctx, id.String()); err != nil {
		l.Error("index_product_error", "error", err)
	}
	h.publish(c, "product_events", id.String(), map[string]any{
		"type":       "product_deleted",
		"product_id": id,
	})

	return c.NoContent(http.StatusNoContent)
}
