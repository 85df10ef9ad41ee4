package httpserver

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/ntarasov/shop_backend/internal/transport"
)

func TestCartHTTP_AddItem(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser("buyer@example.com")
	product := env.seedProduct("Widget", "10.00", 5)

	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/cart", transport.AddCartItemRequest{
		ProductID: product.ID,
		Quantity:  2,
	})
	asUser(c, user)

	require.NoError(t, env.Cart.AddItem(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var view transport.CartItemView
	decodeBody(t, rec, &view)
	require.Equal(t, user.ID, view.UserID)
	require.Equal(t, product.ID, view.ProductID)
	require.Equal(t, 2, view.Quantity)
	require.Equal(t, "20.00", view.TotalPrice.StringFixed(2))
	require.Equal(t, "Widget", view.Product.Name)
}

func TestCartHTTP_AddItem_UnknownProductIs404(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser("buyer@example.com")

	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/cart", transport.AddCartItemRequest{
		ProductID: uuid.New(),
		Quantity:  1,
	})
	asUser(c, user)

	require.NoError(t, env.Cart.AddItem(c))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCartHTTP_AddItem_StockExceededIs400WithContext(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser("buyer@example.com")
	product := env.seedProduct("Widget", "10.00", 1)

	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/cart", transport.AddCartItemRequest{
		ProductID: product.ID,
		Quantity:  2,
	})
	asUser(c, user)

	require.NoError(t, env.Cart.AddItem(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]any
	decodeBody(t, rec, &body)
	require.Equal(t, "error", body["status"])
	require.EqualValues(t, 1, body["available"])
	require.EqualValues(t, 2, body["requested"])
}

func TestCartHTTP_AddItem_InvalidQuantityIs400(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser("buyer@example.com")
	product := env.seedProduct("Widget", "10.00", 5)

	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/cart", transport.AddCartItemRequest{
		ProductID: product.ID,
		Quantity:  0,
	})
	asUser(c, user)

	require.NoError(t, env.Cart.AddItem(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCartHTTP_GetCart(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser("buyer@example.com")
	product := env.seedProduct("Widget", "10.00", 5)

	_, addCtx := env.doJSONRequest(http.MethodPost, "/api/v1/cart", transport.AddCartItemRequest{
		ProductID: product.ID,
		Quantity:  3,
	})
	asUser(addCtx, user)
	require.NoError(t, env.Cart.AddItem(addCtx))

	rec, c := env.doJSONRequest(http.MethodGet, "/api/v1/cart", nil)
	asUser(c, user)

	require.NoError(t, env.Cart.GetCart(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var view transport.CartView
	decodeBody(t, rec, &view)
	require.Equal(t, 1, view.ItemsCount)
	require.Equal(t, "30.00", view.TotalCartValue.StringFixed(2))
}

func TestCartHTTP_RemoveItem_ForeignItemIs404(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser("owner@example.com")
	intruder := env.seedUser("intruder@example.com")
	product := env.seedProduct("Widget", "10.00", 5)

	addRec, addCtx := env.doJSONRequest(http.MethodPost, "/api/v1/cart", transport.AddCartItemRequest{
		ProductID: product.ID,
		Quantity:  1,
	})
	asUser(addCtx, owner)
	require.NoError(t, env.Cart.AddItem(addCtx))

	var view transport.CartItemView
	decodeBody(t, addRec, &view)

	rec, c := env.doJSONRequest(http.MethodDelete, "/api/v1/cart/"+view.ID.String(), nil)
	c.SetParamNames("id")
	c.SetParamValues(view.ID.String())
	asUser(c, intruder)

	require.NoError(t, env.Cart.RemoveItem(c))
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec, c = env.doJSONRequest(http.MethodDelete, "/api/v1/cart/"+view.ID.String(), nil)
	c.SetParamNames("id")
	c.SetParamValues(view.ID.String())
	asUser(c, owner)

	require.NoError(t, env.Cart.RemoveItem(c))
	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestCartHTTP_UpdateItem(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser("buyer@example.com")
	product := env.seedProduct("Widget", "10.00", 5)

	addRec, addCtx := env.doJSONRequest(http.MethodPost, "/api/v1/cart", transport.AddCartItemRequest{
		ProductID: product.ID,
		Quantity:  1,
	})
	asUser(addCtx, user)
	require.NoError(t, env.Cart.AddItem(addCtx))

	var view transport.CartItemView
	decodeBody(t, addRec, &view)

	rec, c := env.doJSONRequest(http.MethodPut, "/api/v1/cart/"+view.ID.String(), transport.UpdateCartItemRequest{Quantity: 5})
	c.SetParamNames("id")
	c.SetParamValues(view.ID.String())
	asUser(c, user)

	require.NoError(t, env.Cart.UpdateItem(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var updated transport.CartItemView
	decodeBody(t, rec, &updated)
	require.Equal(t, 5, updated.Quantity)
	require.Equal(t, "50.00", updated.TotalPrice.StringFixed(2))
}

func TestCartHTTP_ClearCart(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser("buyer@example.com")

	rec, c := env.doJSONRequest(http.MethodDelete, "/api/v1/cart", nil)
	asUser(c, user)

	require.NoError(t, env.Cart.ClearCart(c))
	require.Equal(t, http.StatusNoContent, rec.Code)
}
