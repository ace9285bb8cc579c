package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mindstore/backoffice/internal/models"
	"github.com/mindstore/backoffice/internal/repo"
	"github.com/mindstore/backoffice/internal/service"
	"github.com/mindstore/backoffice/internal/transport"
)

type handlerEnv struct {
	E  *echo.Echo
	H  *AdminHTTP
	DB *gorm.DB
}

func newHandlerEnv(t *testing.T) *handlerEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, repo.Migrate(db))
	require.NoError(t, db.Create(&models.Category{Name: "Tools"}).Error)

	svc := &service.AdminService{Repo: &repo.GormRepo{DB: db}}
	return &handlerEnv{
		E:  echo.New(),
		H:  &AdminHTTP{Svc: svc},
		DB: db,
	}
}

func (env *handlerEnv) doJSONRequest(method, target string, body any) (*httptest.ResponseRecorder, echo.Context) {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)
	return rec, c
}

func TestCreateProductHandler(t *testing.T) {
	env := newHandlerEnv(t)

	rec, c := env.doJSONRequest(http.MethodPost, "/admin/products", transport.CreateProductRequest{
		Title:    "Widget",
		Price:    20,
		Category: "Tools",
	})

	require.NoError(t, env.H.CreateProduct(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp transport.ProductDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Widget", resp.Title)
	assert.Equal(t, "Tools", resp.Category)
	assert.Zero(t, resp.Rating.Rate)
	assert.Zero(t, resp.Rating.Count)
}

func TestCreateProductHandler_Conflict(t *testing.T) {
	env := newHandlerEnv(t)

	rec, c := env.doJSONRequest(http.MethodPost, "/admin/products", transport.CreateProductRequest{
		Title:    "Widget",
		Price:    20,
		Category: "Tools",
	})
	require.NoError(t, env.H.CreateProduct(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	_, c = env.doJSONRequest(http.MethodPost, "/admin/products", transport.CreateProductRequest{
		Title:    "Widget",
		Price:    30,
		Category: "Tools",
	})

	err := env.H.CreateProduct(c)
	require.Error(t, err)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, he.Code)
	assert.Equal(t, "Product already exists", he.Message)
}

func TestGetProductHandler_NotFound(t *testing.T) {
	env := newHandlerEnv(t)

	_, c := env.doJSONRequest(http.MethodGet, "/admin/products/99", nil)
	c.SetParamNames("id")
	c.SetParamValues("99")

	err := env.H.GetProduct(c)
	require.Error(t, err)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Code)
	assert.Equal(t, "Product not found", he.Message)
}

func TestGetProductsHandler_BadDirection(t *testing.T) {
	env := newHandlerEnv(t)

	_, c := env.doJSONRequest(http.MethodGet, "/admin/products?direction=sideways", nil)

	err := env.H.GetProducts(c)
	require.Error(t, err)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestDeleteProductHandler(t *testing.T) {
	env := newHandlerEnv(t)

	rec, c := env.doJSONRequest(http.MethodPost, "/admin/products", transport.CreateProductRequest{
		Title:    "Widget",
		Price:    20,
		Category: "Tools",
	})
	require.NoError(t, env.H.CreateProduct(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, c = env.doJSONRequest(http.MethodDelete, "/admin/products/Widget", nil)
	c.SetParamNames("title")
	c.SetParamValues("Widget")
	require.NoError(t, env.H.DeleteProduct(c))
	require.Equal(t, http.StatusNoContent, rec.Code)

	_, c = env.doJSONRequest(http.MethodDelete, "/admin/products/Widget", nil)
	c.SetParamNames("title")
	c.SetParamValues("Widget")
	err := env.H.DeleteProduct(c)
	require.Error(t, err)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Code)
}
