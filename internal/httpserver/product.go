package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mindstore/backoffice/internal/service"
	"github.com/mindstore/backoffice/internal/transport"
	"github.com/mindstore/backoffice/internal/util"
	"github.com/mindstore/backoffice/pkg/logging"
)

type AdminHTTP struct {
	Svc *service.AdminService
}

func (h *AdminHTTP) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()

	direction := util.ParamDefault(c.QueryParam("direction"), service.DirectionAsc)
	field := util.ParamDefault(c.QueryParam("field"), "id")
	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)

	products, err := h.Svc.GetAllProducts(ctx, direction, field, page, size)
	if err != nil {
		return httpError(c, "product.get_products", err)
	}
	return c.JSON(http.StatusOK, products)
}

func (h *AdminHTTP) GetProductsByPrice(c echo.Context) error {
	ctx := c.Request().Context()

	direction := util.ParamDefault(c.QueryParam("direction"), service.DirectionAsc)
	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	minPrice := util.ParseIntDefault(c.QueryParam("min_price"), 0)
	maxPrice := util.ParseIntDefault(c.QueryParam("max_price"), 1000)

	products, err := h.Svc.GetAllProductsByPrice(ctx, direction, page, size, minPrice, maxPrice)
	if err != nil {
		return httpError(c, "product.get_products_by_price", err)
	}
	return c.JSON(http.StatusOK, products)
}

func (h *AdminHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		return echo.NewHTTPError(http.StatusBadRequest, "id is not a positive integer")
	}

	product, err := h.Svc.GetProductByID(ctx, uint(id))
	if err != nil {
		return httpError(c, "product.get_product", err)
	}
	return c.JSON(http.StatusOK, product)
}

func (h *AdminHTTP) SearchProducts(c echo.Context) error {
	ctx := c.Request().Context()

	title := c.QueryParam("title")
	if title == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "title is required")
	}

	products, err := h.Svc.GetProductsByName(ctx, title)
	if err != nil {
		return httpError(c, "product.search_products", err)
	}
	return c.JSON(http.StatusOK, products)
}

func (h *AdminHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create_product")

	var req transport.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_product_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	product, err := h.Svc.AddProduct(ctx, req)
	if err != nil {
		return httpError(c, "product.create_product", err)
	}

	l.Info("create_product_success", "product_id", product.ID)
	return c.JSON(http.StatusCreated, product)
}

func (h *AdminHTTP) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.update_product")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		return echo.NewHTTPError(http.StatusBadRequest, "id is not a positive integer")
	}

	var req transport.UpdateProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_product_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	product, err := h.Svc.UpdateProduct(ctx, uint(id), req)
	if err != nil {
		return httpError(c, "product.update_product", err)
	}

	l.Info("update_product_success", "product_id", product.ID)
	return c.JSON(http.StatusOK, product)
}

// Products are deleted by title, matching the catalog workflow where
// back-office staff work from the listing, not the id.
func (h *AdminHTTP) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.delete_product")

	title := c.Param("title")
	if title == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "title is required")
	}

	if err := h.Svc.DeleteProduct(ctx, title); err != nil {
		return httpError(c, "product.delete_product", err)
	}

	l.Info("delete_product_success", "title", title)
	return c.NoContent(http.StatusNoContent)
}
