package httpserver

import (
	"net/http"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"

	"github.com/ntarasov/shop_backend/internal/logging"
	"github.com/ntarasov/shop_backend/internal/service/search"
	"github.com/ntarasov/shop_backend/internal/util"
)

type SearchHTTP struct {
	ES *elasticsearch.Client
}

func (h *SearchHTTP) Search(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "search")

	q := c.QueryParam("q")
	if q == "" {
		return errorResponse(c, http.StatusBadRequest, "q is required")
	}
	if h.ES == nil {
		return errorResponse(c, http.StatusServiceUnavailable, "search is not configured")
	}

	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, products, err := search.Search(ctx, h.ES, q, offset, limit)
	if err != nil {
		l.Error("search_error", "error", err)
		return errorResponse(c, http.StatusInternalServerError, "search failed")
	}

	return c.JSON(http.StatusOK, map[string]any{
		"data": products,
		"meta": map[string]any{
			"page":  page,
			"size":  limit,
			"total": total,
		},
	})
}
