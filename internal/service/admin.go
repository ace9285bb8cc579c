package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/mindstore/backoffice/internal/apperr"
	"github.com/mindstore/backoffice/internal/events"
	"github.com/mindstore/backoffice/internal/models"
	"github.com/mindstore/backoffice/internal/repo"
	"github.com/mindstore/backoffice/internal/search"
	"github.com/mindstore/backoffice/internal/transport"
	"github.com/mindstore/backoffice/pkg/hash"
	"github.com/mindstore/backoffice/pkg/logging"
)

// AdminService implements the back-office use cases. Producer and
// Indexer are optional; a nil collaborator turns the side effect off.
type AdminService struct {
	Repo        *repo.GormRepo
	Producer    *events.Producer
	Indexer     *search.Indexer
	MaxPageSize int
}

func (s *AdminService) maxPageSize() int {
	if s.MaxPageSize > 0 {
		return s.MaxPageSize
	}
	return DefaultMaxPageSize
}

func (s *AdminService) GetAllProducts(ctx context.Context, direction, field string, page, pageSize int) ([]transport.ProductDTO, error) {
	if err := validatePages(page, pageSize, s.maxPageSize()); err != nil {
		return nil, err
	}
	desc, err := descending(direction)
	if err != nil {
		return nil, err
	}
	col, err := productSortColumn(field)
	if err != nil {
		return nil, err
	}

	products, err := s.Repo.ListProducts(ctx, col, desc, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, err
	}
	return transport.ProductsToDTO(products), nil
}

// GetAllProductsByPrice pages through products sorted by price and
// windows the page to [minPrice, maxPrice] in memory, so a page may
// come back short.
func (s *AdminService) GetAllProductsByPrice(ctx context.Context, direction string, page, pageSize, minPrice, maxPrice int) ([]transport.ProductDTO, error) {
	if err := validatePages(page, pageSize, s.maxPageSize()); err != nil {
		return nil, err
	}
	if err := validatePriceRange(minPrice, maxPrice); err != nil {
		return nil, err
	}
	desc, err := descending(direction)
	if err != nil {
		return nil, err
	}

	products, err := s.Repo.ListProducts(ctx, "price", desc, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, err
	}

	filtered := make([]models.Product, 0, len(products))
	for _, p := range products {
		if p.Price >= float64(minPrice) && p.Price <= float64(maxPrice) {
			filtered = append(filtered, p)
		}
	}
	return transport.ProductsToDTO(filtered), nil
}

func (s *AdminService) GetProductByID(ctx context.Context, id uint) (*transport.ProductDTO, error) {
	product, err := s.Repo.ProductByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := transport.ProductToDTO(product)
	return &dto, nil
}

func (s *AdminService) GetProductsByName(ctx context.Context, title string) ([]transport.ProductDTO, error) {
	products, err := s.Repo.SearchProductsByTitle(ctx, title)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, apperr.NotFound("Product not found")
	}
	return transport.ProductsToDTO(products), nil
}

func (s *AdminService) GetAllUsers(ctx context.Context, direction, field string, page, pageSize int) ([]transport.UserDTO, error) {
	if err := validatePages(page, pageSize, s.maxPageSize()); err != nil {
		return nil, err
	}
	desc, err := descending(direction)
	if err != nil {
		return nil, err
	}
	col, err := userSortColumn(field)
	if err != nil {
		return nil, err
	}

	users, err := s.Repo.ListUsers(ctx, col, desc, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, err
	}
	return transport.UsersToDTO(users), nil
}

func (s *AdminService) GetUserByID(ctx context.Context, id uint) (*transport.UserDTO, error) {
	user, err := s.Repo.UserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := transport.UserToDTO(user)
	return &dto, nil
}

func (s *AdminService) GetUsersByName(ctx context.Context, name string) ([]transport.UserDTO, error) {
	users, err := s.Repo.UsersByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, apperr.NotFound("User not found")
	}
	return transport.UsersToDTO(users), nil
}

func (s *AdminService) AddUser(ctx context.Context, req transport.CreateUserRequest) (*transport.UserDTO, error) {
	l := logging.FromContext(ctx).With("svc", "admin.add_user")

	taken, err := s.Repo.EmailInUse(ctx, req.Email, 0, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		l.Warn("add_user_conflict", "email", req.Email)
		return nil, apperr.Conflict("Email is already being used")
	}

	// Role comes from the fixed table, never from the request.
	role, err := s.Repo.RoleByID(ctx, models.RoleUserID)
	if err != nil {
		return nil, err
	}

	pwHash, err := hash.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: pwHash,
		RoleID:       role.ID,
		Role:         *role,
	}

	if err := s.Repo.CreateUser(ctx, &user); err != nil {
		if repo.IsDuplicate(err) {
			return nil, apperr.Conflict("Email is already being used")
		}
		return nil, err
	}

	l.Info("add_user_success", "user_id", user.ID)
	s.publish(ctx, events.TopicUserEvents, strconv.FormatUint(uint64(user.ID), 10), map[string]any{
		"type":   "user_registered",
		"userID": user.ID,
		"email":  user.Email,
	})

	dto := transport.UserToDTO(&user)
	return &dto, nil
}

func (s *AdminService) AddAdmin(ctx context.Context, req transport.CreateAdminRequest) (*transport.AdminDTO, error) {
	l := logging.FromContext(ctx).With("svc", "admin.add_admin")

	taken, err := s.Repo.EmailInUse(ctx, req.Email, 0, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		l.Warn("add_admin_conflict", "email", req.Email)
		return nil, apperr.Conflict("Email is already being used")
	}

	role, err := s.Repo.RoleByID(ctx, models.RoleAdminID)
	if err != nil {
		return nil, err
	}

	pwHash, err := hash.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	admin := models.Admin{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: pwHash,
		RoleID:       role.ID,
		Role:         *role,
	}

	if err := s.Repo.CreateAdmin(ctx, &admin); err != nil {
		if repo.IsDuplicate(err) {
			return nil, apperr.Conflict("Email is already being used")
		}
		return nil, err
	}

	l.Info("add_admin_success", "admin_id", admin.ID)
	s.publish(ctx, events.TopicUserEvents, strconv.FormatUint(uint64(admin.ID), 10), map[string]any{
		"type":    "admin_registered",
		"adminID": admin.ID,
		"email":   admin.Email,
	})

	dto := transport.AdminToDTO(&admin)
	return &dto, nil
}

func (s *AdminService) AddProduct(ctx context.Context, req transport.CreateProductRequest) (*transport.ProductDTO, error) {
	l := logging.FromContext(ctx).With("svc", "admin.add_product")

	if req.Price < 0 {
		return nil, apperr.NotAllowedValue("Price must not be negative")
	}

	taken, err := s.Repo.TitleTaken(ctx, req.Title, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		l.Warn("add_product_conflict", "title", req.Title)
		return nil, apperr.Conflict("Product already exists")
	}

	category, err := s.Repo.CategoryByName(ctx, req.Category)
	if err != nil {
		return nil, err
	}

	product := models.Product{
		Title:       req.Title,
		Description: req.Description,
		Image:       req.Image,
		Price:       req.Price,
		CategoryID:  category.ID,
		Category:    *category,
		Rating:      models.Rating{Rate: 0, Count: 0},
	}

	if err := s.Repo.CreateProduct(ctx, &product); err != nil {
		if repo.IsDuplicate(err) {
			return nil, apperr.Conflict("Product already exists")
		}
		return nil, err
	}

	l.Info("add_product_success", "product_id", product.ID)
	dto := transport.ProductToDTO(&product)

	s.publish(ctx, events.TopicProductEvents, strconv.FormatUint(uint64(product.ID), 10), map[string]any{
		"type":      "product_created",
		"productID": product.ID,
		"title":     product.Title,
	})
	s.index(ctx, dto)

	return &dto, nil
}

func (s *AdminService) UpdateProduct(ctx context.Context, id uint, req transport.UpdateProductRequest) (*transport.ProductDTO, error) {
	l := logging.FromContext(ctx).With("svc", "admin.update_product", "product_id", id)

	product, err := s.Repo.ProductByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		taken, err := s.Repo.TitleTaken(ctx, *req.Title, product.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			l.Warn("update_product_conflict", "title", *req.Title)
			return nil, apperr.Conflict("Title already exists")
		}
		product.Title = *req.Title
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Image != nil {
		product.Image = *req.Image
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, apperr.NotAllowedValue("Price must not be negative")
		}
		product.Price = *req.Price
	}
	if req.Category != nil {
		category, err := s.Repo.CategoryByName(ctx, *req.Category)
		if err != nil {
			return nil, err
		}
		product.CategoryID = category.ID
		product.Category = *category
	}

	if err := s.Repo.SaveProduct(ctx, product); err != nil {
		if repo.IsDuplicate(err) {
			return nil, apperr.Conflict("Title already exists")
		}
		return nil, err
	}

	l.Info("update_product_success")
	dto := transport.ProductToDTO(product)

	s.publish(ctx, events.TopicProductEvents, strconv.FormatUint(uint64(product.ID), 10), map[string]any{
		"type":      "product_updated",
		"productID": product.ID,
		"title":     product.Title,
	})
	s.index(ctx, dto)

	return &dto, nil
}

func (s *AdminService) UpdateUser(ctx context.Context, id uint, req transport.UpdateUserRequest) (*transport.UserDTO, error) {
	l := logging.FromContext(ctx).With("svc", "admin.update_user", "user_id", id)

	user, err := s.Repo.UserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Email != nil {
		taken, err := s.Repo.EmailInUse(ctx, *req.Email, user.ID, 0)
		if err != nil {
			return nil, err
		}
		if taken {
			l.Warn("update_user_conflict", "email", *req.Email)
			return nil, apperr.Conflict("Email is already being used")
		}
		user.Email = *req.Email
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Password != nil {
		pwHash, err := hash.HashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = pwHash
	}

	if err := s.Repo.SaveUser(ctx, user); err != nil {
		if repo.IsDuplicate(err) {
			return nil, apperr.Conflict("Email is already being used")
		}
		return nil, err
	}

	l.Info("update_user_success")
	dto := transport.UserToDTO(user)
	return &dto, nil
}

// UpdateAdmin lets an admin change their own record only.
func (s *AdminService) UpdateAdmin(ctx context.Context, callerID, id uint, req transport.UpdateAdminRequest) (*transport.AdminDTO, error) {
	l := logging.FromContext(ctx).With("svc", "admin.update_admin", "admin_id", id)

	if callerID != id {
		l.Warn("update_admin_forbidden", "caller_id", callerID)
		return nil, apperr.Unauthorized("Admins may only update their own account")
	}

	admin, err := s.Repo.AdminByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Email != nil {
		taken, err := s.Repo.EmailInUse(ctx, *req.Email, 0, admin.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			l.Warn("update_admin_conflict", "email", *req.Email)
			return nil, apperr.Conflict("Email is already being used")
		}
		admin.Email = *req.Email
	}
	if req.Name != nil {
		admin.Name = *req.Name
	}
	if req.Password != nil {
		pwHash, err := hash.HashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		admin.PasswordHash = pwHash
	}

	if err := s.Repo.SaveAdmin(ctx, admin); err != nil {
		if repo.IsDuplicate(err) {
			return nil, apperr.Conflict("Email is already being used")
		}
		return nil, err
	}

	l.Info("update_admin_success")
	dto := transport.AdminToDTO(admin)
	return &dto, nil
}

func (s *AdminService) DeleteProduct(ctx context.Context, title string) error {
	l := logging.FromContext(ctx).With("svc", "admin.delete_product", "title", title)

	product, err := s.Repo.ProductByTitle(ctx, title)
	if err != nil {
		return err
	}

	if err := s.Repo.DeleteProduct(ctx, product); err != nil {
		return err
	}

	l.Info("delete_product_success", "product_id", product.ID)
	s.publish(ctx, events.TopicProductEvents, strconv.FormatUint(uint64(product.ID), 10), map[string]any{
		"type":      "product_deleted",
		"productID": product.ID,
	})
	s.dropFromIndex(ctx, product.ID)

	return nil
}

// publish and index are best effort: a broken broker or index must not
// fail the admin operation, so failures are only logged.

func (s *AdminService) publish(ctx context.Context, topic, key string, event map[string]any) {
	if s.Producer == nil {
		return
	}
	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.Producer.PublishEvent(pubCtx, topic, key, event); err != nil {
		logging.FromContext(ctx).Error("event_publish_failed", "topic", topic, "error", err)
	}
}

func (s *AdminService) index(ctx context.Context, dto transport.ProductDTO) {
	if s.Indexer == nil {
		return
	}
	if err := s.Indexer.IndexProduct(ctx, dto); err != nil {
		logging.FromContext(ctx).Error("product_index_failed", "product_id", dto.ID, "error", err)
	}
}

func (s *AdminService) dropFromIndex(ctx context.Context, id uint) {
	if s.Indexer == nil {
		return
	}
	if err := s.Indexer.DeleteProduct(ctx, id); err != nil {
		logging.FromContext(ctx).Error("product_unindex_failed", "product_id", id, "error", err)
	}
}
