package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mindstore/backoffice/internal/apperr"
	"github.com/mindstore/backoffice/internal/models"
	"github.com/mindstore/backoffice/internal/repo"
	"github.com/mindstore/backoffice/internal/transport"
	"github.com/mindstore/backoffice/pkg/hash"
)

type testEnv struct {
	DB  *gorm.DB
	Svc *AdminService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	// one connection so every query sees the same in-memory database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, repo.Migrate(db))

	for _, name := range []string{"Tools", "Books"} {
		require.NoError(t, db.Create(&models.Category{Name: name}).Error)
	}

	return &testEnv{
		DB:  db,
		Svc: &AdminService{Repo: &repo.GormRepo{DB: db}},
	}
}

func (env *testEnv) addProduct(t *testing.T, title string, price float64, category string) transport.ProductDTO {
	t.Helper()
	dto, err := env.Svc.AddProduct(context.Background(), transport.CreateProductRequest{
		Title:    title,
		Price:    price,
		Category: category,
	})
	require.NoError(t, err)
	return *dto
}

func (env *testEnv) addUser(t *testing.T, name, email string) transport.UserDTO {
	t.Helper()
	dto, err := env.Svc.AddUser(context.Background(), transport.CreateUserRequest{
		Name:     name,
		Email:    email,
		Password: "secret",
	})
	require.NoError(t, err)
	return *dto
}

func (env *testEnv) addAdmin(t *testing.T, name, email string) transport.AdminDTO {
	t.Helper()
	dto, err := env.Svc.AddAdmin(context.Background(), transport.CreateAdminRequest{
		Name:     name,
		Email:    email,
		Password: "secret",
	})
	require.NoError(t, err)
	return *dto
}

func ptr[T any](v T) *T { return &v }

func TestAdminService_GetProductByID(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created := env.addProduct(t, "Widget", 20, "Tools")

	got, err := env.Svc.GetProductByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Widget", got.Title)
	assert.Equal(t, "Tools", got.Category)

	_, err = env.Svc.GetProductByID(ctx, 999)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.EqualError(t, err, "Product not found")
}

func TestAdminService_GetUserByID_NotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.Svc.GetUserByID(context.Background(), 42)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.EqualError(t, err, "User not found")
}

func TestAdminService_AddProduct_CreatesEmptyRating(t *testing.T) {
	env := newTestEnv(t)

	dto := env.addProduct(t, "Widget", 20, "Tools")

	assert.Equal(t, "Tools", dto.Category)
	assert.Zero(t, dto.Rating.Rate)
	assert.Zero(t, dto.Rating.Count)

	var product models.Product
	require.NoError(t, env.DB.Preload("Rating").First(&product, dto.ID).Error)
	assert.NotZero(t, product.RatingID)
	assert.Zero(t, product.Rating.Rate)
	assert.Zero(t, product.Rating.Count)
}

func TestAdminService_AddProduct_DuplicateTitle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.addProduct(t, "Widget", 20, "Tools")

	_, err := env.Svc.AddProduct(ctx, transport.CreateProductRequest{
		Title:    "Widget",
		Price:    30,
		Category: "Books",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrConflict)
	assert.EqualError(t, err, "Product already exists")

	var count int64
	require.NoError(t, env.DB.Model(&models.Product{}).Where("title = ?", "Widget").Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestAdminService_AddProduct_UnknownCategory(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.Svc.AddProduct(context.Background(), transport.CreateProductRequest{
		Title:    "Widget",
		Price:    20,
		Category: "Garden",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.EqualError(t, err, "Category not found")
}

func TestAdminService_AddProduct_NegativePrice(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.Svc.AddProduct(context.Background(), transport.CreateProductRequest{
		Title:    "Widget",
		Price:    -1,
		Category: "Tools",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrNotAllowedValue)
}

func TestAdminService_AddUser_AssignsUserRole(t *testing.T) {
	env := newTestEnv(t)

	dto := env.addUser(t, "ana", "ana@mail.com")
	assert.Equal(t, models.RoleUserName, dto.Role)

	var user models.User
	require.NoError(t, env.DB.First(&user, dto.ID).Error)
	assert.Equal(t, models.RoleUserID, user.RoleID)
	assert.NotEqual(t, "secret", user.PasswordHash)
	assert.True(t, hash.CheckPassword(user.PasswordHash, "secret"))
}

func TestAdminService_AddAdmin_AssignsAdminRole(t *testing.T) {
	env := newTestEnv(t)

	dto := env.addAdmin(t, "root", "root@mail.com")
	assert.Equal(t, models.RoleAdminName, dto.Role)

	var admin models.Admin
	require.NoError(t, env.DB.First(&admin, dto.ID).Error)
	assert.Equal(t, models.RoleAdminID, admin.RoleID)
	assert.True(t, hash.CheckPassword(admin.PasswordHash, "secret"))
}

func TestAdminService_AddUser_DuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.addUser(t, "ana", "ana@mail.com")

	_, err := env.Svc.AddUser(ctx, transport.CreateUserRequest{
		Name:     "other",
		Email:    "ana@mail.com",
		Password: "secret",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrConflict)
	assert.EqualError(t, err, "Email is already being used")

	var count int64
	require.NoError(t, env.DB.Model(&models.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestAdminService_AddUser_EmailTakenByAdmin(t *testing.T) {
	env := newTestEnv(t)

	env.addAdmin(t, "root", "root@mail.com")

	_, err := env.Svc.AddUser(context.Background(), transport.CreateUserRequest{
		Name:     "ana",
		Email:    "root@mail.com",
		Password: "secret",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestAdminService_GetAllProducts_Pagination(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for i := 1; i <= 15; i++ {
		env.addProduct(t, fmt.Sprintf("product-%02d", i), float64(i), "Tools")
	}

	page, err := env.Svc.GetAllProducts(ctx, DirectionAsc, "title", 1, 10)
	require.NoError(t, err)
	require.Len(t, page, 10)
	assert.Equal(t, "product-01", page[0].Title)
	assert.Equal(t, "product-10", page[9].Title)

	page, err = env.Svc.GetAllProducts(ctx, DirectionAsc, "title", 2, 10)
	require.NoError(t, err)
	require.Len(t, page, 5)
	assert.Equal(t, "product-11", page[0].Title)

	_, err = env.Svc.GetAllProducts(ctx, DirectionAsc, "title", 0, 10)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrInvalidParameter)

	_, err = env.Svc.GetAllProducts(ctx, DirectionAsc, "title", 1, 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrInvalidParameter)

	_, err = env.Svc.GetAllProducts(ctx, DirectionAsc, "title", 1, DefaultMaxPageSize+1)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrInvalidParameter)
}

func TestAdminService_GetAllProducts_Direction(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.addProduct(t, "cheap", 5, "Tools")
	env.addProduct(t, "dear", 500, "Tools")

	asc, err := env.Svc.GetAllProducts(ctx, DirectionAsc, "price", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, "cheap", asc[0].Title)

	desc, err := env.Svc.GetAllProducts(ctx, DirectionDesc, "price", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, "dear", desc[0].Title)

	_, err = env.Svc.GetAllProducts(ctx, "sideways", "price", 1, 10)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrNotAllowedValue)
	assert.EqualError(t, err, "Direction not allowed")
}

func TestAdminService_GetAllProducts_SortField(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.addProduct(t, "Widget", 20, "Tools")

	// product fields match case-insensitively
	_, err := env.Svc.GetAllProducts(ctx, DirectionAsc, "TITLE", 1, 10)
	require.NoError(t, err)

	_, err = env.Svc.GetAllProducts(ctx, DirectionAsc, "password", 1, 10)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrInvalidParameter)
	assert.EqualError(t, err, "Field not allowed")
}

func TestAdminService_GetAllUsers_SortFieldCaseSensitive(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.addUser(t, "ana", "ana@mail.com")

	_, err := env.Svc.GetAllUsers(ctx, DirectionAsc, "name", 1, 10)
	require.NoError(t, err)

	_, err = env.Svc.GetAllUsers(ctx, DirectionAsc, "Name", 1, 10)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrInvalidParameter)
}

func TestAdminService_GetAllProductsByPrice(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.addProduct(t, "cheap", 5, "Tools")
	env.addProduct(t, "mid", 50, "Tools")
	env.addProduct(t, "dear", 500, "Tools")

	got, err := env.Svc.GetAllProductsByPrice(ctx, DirectionAsc, 1, 10, 10, 100)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "mid", got[0].Title)

	_, err = env.Svc.GetAllProductsByPrice(ctx, DirectionDesc, 1, 10, -1, 100)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrNotAllowedValue)

	_, err = env.Svc.GetAllProductsByPrice(ctx, DirectionDesc, 1, 10, 0, 1001)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrNotAllowedValue)
}

func TestAdminService_GetProductsByName(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.addProduct(t, "Blue Widget", 20, "Tools")
	env.addProduct(t, "Red Widget", 25, "Tools")
	env.addProduct(t, "Hammer", 10, "Tools")

	got, err := env.Svc.GetProductsByName(ctx, "Widget")
	require.NoError(t, err)
	assert.Len(t, got, 2)

	_, err = env.Svc.GetProductsByName(ctx, "Screwdriver")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.EqualError(t, err, "Product not found")
}

func TestAdminService_GetUsersByName(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.addUser(t, "ana", "ana@mail.com")
	env.addUser(t, "ana", "ana2@mail.com")

	got, err := env.Svc.GetUsersByName(ctx, "ana")
	require.NoError(t, err)
	assert.Len(t, got, 2)

	_, err = env.Svc.GetUsersByName(ctx, "bob")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.EqualError(t, err, "User not found")
}

func TestAdminService_UpdateUser_EmailConflict(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.addUser(t, "ana", "ana@mail.com")
	bob := env.addUser(t, "bob", "bob@mail.com")

	_, err := env.Svc.UpdateUser(ctx, bob.ID, transport.UpdateUserRequest{
		Email: ptr("ana@mail.com"),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrConflict)

	var unchanged models.User
	require.NoError(t, env.DB.First(&unchanged, bob.ID).Error)
	assert.Equal(t, "bob@mail.com", unchanged.Email)
}

// Re-submitting the record's own email is not a conflict.
func TestAdminService_UpdateUser_KeepsOwnEmail(t *testing.T) {
	env := newTestEnv(t)

	ana := env.addUser(t, "ana", "ana@mail.com")

	got, err := env.Svc.UpdateUser(context.Background(), ana.ID, transport.UpdateUserRequest{
		Name:  ptr("ana maria"),
		Email: ptr("ana@mail.com"),
	})
	require.NoError(t, err)
	assert.Equal(t, "ana maria", got.Name)
	assert.Equal(t, "ana@mail.com", got.Email)
}

func TestAdminService_UpdateUser_PartialMerge(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ana := env.addUser(t, "ana", "ana@mail.com")

	var before models.User
	require.NoError(t, env.DB.First(&before, ana.ID).Error)

	got, err := env.Svc.UpdateUser(ctx, ana.ID, transport.UpdateUserRequest{
		Name: ptr("ana maria"),
	})
	require.NoError(t, err)
	assert.Equal(t, "ana maria", got.Name)
	assert.Equal(t, "ana@mail.com", got.Email)

	var after models.User
	require.NoError(t, env.DB.First(&after, ana.ID).Error)
	assert.Equal(t, before.PasswordHash, after.PasswordHash)

	_, err = env.Svc.UpdateUser(ctx, ana.ID, transport.UpdateUserRequest{
		Password: ptr("changed"),
	})
	require.NoError(t, err)
	require.NoError(t, env.DB.First(&after, ana.ID).Error)
	assert.True(t, hash.CheckPassword(after.PasswordHash, "changed"))
}

func TestAdminService_UpdateUser_NotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.Svc.UpdateUser(context.Background(), 404, transport.UpdateUserRequest{
		Name: ptr("ghost"),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestAdminService_UpdateProduct_TitleConflict(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.addProduct(t, "Widget", 20, "Tools")
	gadget := env.addProduct(t, "Gadget", 30, "Tools")

	_, err := env.Svc.UpdateProduct(ctx, gadget.ID, transport.UpdateProductRequest{
		Title: ptr("Widget"),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrConflict)
	assert.EqualError(t, err, "Title already exists")
}

func TestAdminService_UpdateProduct_PartialMerge(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	widget := env.addProduct(t, "Widget", 20, "Tools")

	got, err := env.Svc.UpdateProduct(ctx, widget.ID, transport.UpdateProductRequest{
		Title:    ptr("Widget"), // unchanged, must not self-conflict
		Price:    ptr(25.0),
		Category: ptr("Books"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Widget", got.Title)
	assert.Equal(t, 25.0, got.Price)
	assert.Equal(t, "Books", got.Category)

	_, err = env.Svc.UpdateProduct(ctx, widget.ID, transport.UpdateProductRequest{
		Price: ptr(-5.0),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrNotAllowedValue)
}

func TestAdminService_UpdateAdmin_SelfOnly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	root := env.addAdmin(t, "root", "root@mail.com")
	other := env.addAdmin(t, "other", "other@mail.com")

	_, err := env.Svc.UpdateAdmin(ctx, other.ID, root.ID, transport.UpdateAdminRequest{
		Name: ptr("hijacked"),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)

	got, err := env.Svc.UpdateAdmin(ctx, root.ID, root.ID, transport.UpdateAdminRequest{
		Name: ptr("root prime"),
	})
	require.NoError(t, err)
	assert.Equal(t, "root prime", got.Name)
}

func TestAdminService_DeleteProduct_CascadesRating(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	widget := env.addProduct(t, "Widget", 20, "Tools")

	require.NoError(t, env.Svc.DeleteProduct(ctx, "Widget"))

	_, err := env.Svc.GetProductByID(ctx, widget.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	var ratings int64
	require.NoError(t, env.DB.Model(&models.Rating{}).Count(&ratings).Error)
	assert.Zero(t, ratings)

	err = env.Svc.DeleteProduct(ctx, "Widget")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.EqualError(t, err, "Product not found")
}
