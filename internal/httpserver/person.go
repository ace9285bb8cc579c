package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mindstore/backoffice/internal/middleware/auth"
	"github.com/mindstore/backoffice/internal/service"
	"github.com/mindstore/backoffice/internal/transport"
	"github.com/mindstore/backoffice/internal/util"
	"github.com/mindstore/backoffice/pkg/logging"
)

func (h *AdminHTTP) GetUsers(c echo.Context) error {
	ctx := c.Request().Context()

	direction := util.ParamDefault(c.QueryParam("direction"), service.DirectionAsc)
	field := util.ParamDefault(c.QueryParam("field"), "id")
	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)

	users, err := h.Svc.GetAllUsers(ctx, direction, field, page, size)
	if err != nil {
		return httpError(c, "user.get_users", err)
	}
	return c.JSON(http.StatusOK, users)
}

func (h *AdminHTTP) GetUser(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		return echo.NewHTTPError(http.StatusBadRequest, "id is not a positive integer")
	}

	user, err := h.Svc.GetUserByID(ctx, uint(id))
	if err != nil {
		return httpError(c, "user.get_user", err)
	}
	return c.JSON(http.StatusOK, user)
}

func (h *AdminHTTP) SearchUsers(c echo.Context) error {
	ctx := c.Request().Context()

	name := c.QueryParam("name")
	if name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}

	users, err := h.Svc.GetUsersByName(ctx, name)
	if err != nil {
		return httpError(c, "user.search_users", err)
	}
	return c.JSON(http.StatusOK, users)
}

func (h *AdminHTTP) CreateUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.create_user")

	var req transport.CreateUserRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_user_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, err := h.Svc.AddUser(ctx, req)
	if err != nil {
		return httpError(c, "user.create_user", err)
	}

	l.Info("create_user_success", "user_id", user.ID)
	return c.JSON(http.StatusCreated, user)
}

func (h *AdminHTTP) UpdateUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.update_user")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		return echo.NewHTTPError(http.StatusBadRequest, "id is not a positive integer")
	}

	var req transport.UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_user_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, err := h.Svc.UpdateUser(ctx, uint(id), req)
	if err != nil {
		return httpError(c, "user.update_user", err)
	}

	l.Info("update_user_success", "user_id", user.ID)
	return c.JSON(http.StatusOK, user)
}

func (h *AdminHTTP) CreateAdmin(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.create_admin")

	var req transport.CreateAdminRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_admin_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	admin, err := h.Svc.AddAdmin(ctx, req)
	if err != nil {
		return httpError(c, "admin.create_admin", err)
	}

	l.Info("create_admin_success", "admin_id", admin.ID)
	return c.JSON(http.StatusCreated, admin)
}

func (h *AdminHTTP) UpdateAdmin(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.update_admin")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		return echo.NewHTTPError(http.StatusBadRequest, "id is not a positive integer")
	}

	var req transport.UpdateAdminRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_admin_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	admin, err := h.Svc.UpdateAdmin(ctx, auth.CallerID(c), uint(id), req)
	if err != nil {
		return httpError(c, "admin.update_admin", err)
	}

	l.Info("update_admin_success", "admin_id", admin.ID)
	return c.JSON(http.StatusOK, admin)
}
