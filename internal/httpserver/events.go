package httpserver

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ntarasov/shop_backend/internal/logging"
	"github.com/ntarasov/shop_backend/internal/mykafka"
)

// publishEvent is fire-and-forget: a broker problem is logged, never
// surfaced to the client.
func publishEvent(c echo.Context, p *mykafka.Producer, topic, key string, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := p.PublishEvent(ctx, topic, key, event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka publish error", "topic", topic, "error", err)
	}
}

func (h *CartHTTP) publish(c echo.Context, topic, key string, event map[string]any) {
	publishEvent(c, h.Producer, topic, key, event)
}

func (h *ProductHTTP) publish(c echo.Context, topic, key string, event map[string]any) {
	publishEvent(c, h.Producer, topic, key, event)
}

func (h *AuthHTTP) publish(c echo.Context, topic, key string, event map[string]any) {
	publishEvent(c, h.Producer, topic, key, event)
}
