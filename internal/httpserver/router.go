package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	authmw "github.com/ntarasov/shop_backend/internal/middleware/auth"
)

type Deps struct {
	AuthHandler    *AuthHTTP
	ProductHandler *ProductHTTP
	CartHandler    *CartHTTP
	SearchHandler  *SearchHTTP
	JWTSecret      []byte
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	mw := &authmw.Middleware{JWTSecret: d.JWTSecret}

	v1 := e.Group("/api/v1")

	auth := v1.Group("/auth")
	auth.POST("/register", d.AuthHandler.Register)
	auth.POST("/login", d.AuthHandler.Login)
	auth.POST("/refresh", d.AuthHandler.Refresh)
	auth.POST("/logout", d.AuthHandler.Logout)

	products := v1.Group("/products", mw.RequireLogin)
	products.GET("", d.ProductHandler.ListProducts)
	products.GET("/:id", d.ProductHandler.GetProduct)

	admin := v1.Group("/products", mw.AdminOnly)
	admin.POST("", d.ProductHandler.CreateProduct)
	admin.PATCH("/:id", d.ProductHandler.PatchProduct)
	admin.DELETE("/:id", d.ProductHandler.DeleteProduct)

	cart := v1.Group("/cart", mw.RequireLogin)
	cart.GET("", d.CartHandler.GetCart)
	cart.POST("", d.CartHandler.AddItem)
	cart.PUT("/:id", d.CartHandler.UpdateItem)
	cart.DELETE("/:id", d.CartHandler.RemoveItem)
	cart.DELETE("", d.CartHandler.ClearCart)

	v1.GET("/search", d.SearchHandler.Search, mw.RequireLogin)
}
