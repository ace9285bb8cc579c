package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mindstore/backoffice/internal/middleware/auth"
)

type Deps struct {
	AdminHandler *AdminHTTP
	JWTSecret    []byte
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	authMW := auth.New(d.JWTSecret)

	admin := e.Group("/admin", authMW.RequireAdmin)

	products := admin.Group("/products")
	products.GET("", d.AdminHandler.GetProducts)
	products.GET("/price", d.AdminHandler.GetProductsByPrice)
	products.GET("/search", d.AdminHandler.SearchProducts)
	products.GET("/:id", d.AdminHandler.GetProduct)
	products.POST("", d.AdminHandler.CreateProduct)
	products.PATCH("/:id", d.AdminHandler.UpdateProduct)
	products.DELETE("/:title", d.AdminHandler.DeleteProduct)

	users := admin.Group("/users")
	users.GET("", d.AdminHandler.GetUsers)
	users.GET("/search", d.AdminHandler.SearchUsers)
	users.GET("/:id", d.AdminHandler.GetUser)
	users.POST("", d.AdminHandler.CreateUser)
	users.PATCH("/:id", d.AdminHandler.UpdateUser)

	admins := admin.Group("/admins")
	admins.POST("", d.AdminHandler.CreateAdmin)
	admins.PATCH("/:id", d.AdminHandler.UpdateAdmin)
}
