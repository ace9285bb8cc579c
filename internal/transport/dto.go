package transport

import "github.com/mindstore/backoffice/internal/models"

type RatingDTO struct {
	Rate  float64 `json:"rate"`
	Count int     `json:"count"`
}

type ProductDTO struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	Rating      RatingDTO `json:"rating"`
}

type UserDTO struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type AdminDTO struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type CreateProductRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
}

type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CreateAdminRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Update requests carry pointers: nil leaves the field untouched.
type UpdateProductRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Image       *string  `json:"image"`
	Price       *float64 `json:"price"`
	Category    *string  `json:"category"`
}

type UpdateUserRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

type UpdateAdminRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

func ProductToDTO(p *models.Product) ProductDTO {
	return ProductDTO{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Image:       p.Image,
		Price:       p.Price,
		Category:    p.Category.Name,
		Rating: RatingDTO{
			Rate:  p.Rating.Rate,
			Count: p.Rating.Count,
		},
	}
}

func ProductsToDTO(products []models.Product) []ProductDTO {
	out := make([]ProductDTO, len(products))
	for i := range products {
		out[i] = ProductToDTO(&products[i])
	}
	return out
}

func UserToDTO(u *models.User) UserDTO {
	return UserDTO{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role.Name,
	}
}

func UsersToDTO(users []models.User) []UserDTO {
	out := make([]UserDTO, len(users))
	for i := range users {
		out[i] = UserToDTO(&users[i])
	}
	return out
}

func AdminToDTO(a *models.Admin) AdminDTO {
	return AdminDTO{
		ID:    a.ID,
		Name:  a.Name,
		Email: a.Email,
		Role:  a.Role.Name,
	}
}
