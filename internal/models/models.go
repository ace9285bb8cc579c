package models

// Role is reference data. The two rows are seeded with the schema and
// resolved by fixed id, never from client input.
type Role struct {
	ID   uint   `gorm:"primaryKey"               json:"id"`
	Name string `gorm:"uniqueIndex;not null"     json:"name"`
}

const (
	RoleUserID  uint = 1
	RoleAdminID uint = 2

	RoleUserName  = "USER"
	RoleAdminName = "ADMIN"
)

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string `gorm:"not null"                 json:"name"`
	Email        string `gorm:"uniqueIndex;not null"     json:"email"`
	PasswordHash string `gorm:"not null"                 json:"-"`
	RoleID       uint   `gorm:"not null"                 json:"-"`
	Role         Role   `gorm:"foreignKey:RoleID"        json:"role"`
}

type Admin struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string `gorm:"not null"                 json:"name"`
	Email        string `gorm:"uniqueIndex;not null"     json:"email"`
	PasswordHash string `gorm:"not null"                 json:"-"`
	RoleID       uint   `gorm:"not null"                 json:"-"`
	Role         Role   `gorm:"foreignKey:RoleID"        json:"role"`
}

type Category struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"uniqueIndex;not null"     json:"name"`
}

// Rating is 1:1-owned by its Product and created empty alongside it.
type Rating struct {
	ID    uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Rate  float64 `gorm:"not null"                 json:"rate"`
	Count int     `gorm:"not null"                 json:"count"`
}

type Product struct {
	ID          uint     `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string   `gorm:"uniqueIndex;not null"     json:"title"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	Price       float64  `gorm:"not null"                 json:"price"`
	CategoryID  uint     `gorm:"not null"                 json:"-"`
	Category    Category `gorm:"foreignKey:CategoryID"    json:"category"`
	RatingID    uint     `gorm:"not null"                 json:"-"`
	Rating      Rating   `gorm:"foreignKey:RatingID"      json:"rating"`
}
