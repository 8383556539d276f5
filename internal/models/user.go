package models

import "time"

// Roles a user account can carry. Admin accounts are seeded, never registered.
const (
	RoleBuyer  = "buyer"
	RoleSeller = "seller"
	RoleAdmin  = "admin"
)

// User matches the users table (buyers, sellers and the seeded admin).
type User struct {
	ID           uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Email        string    `gorm:"column:email;not null;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"column:password_hash;not null" json:"-"`
	FirstName    string    `gorm:"column:first_name;not null" json:"first_name"`
	LastName     string    `gorm:"column:last_name" json:"last_name"`
	Role         string    `gorm:"column:role;not null" json:"role"`
	IDNumber     string    `gorm:"column:id_number" json:"id_number"`
	IsVerified   bool      `gorm:"column:is_verified;default:false" json:"is_verified"`
	IsBlocked    bool      `gorm:"column:is_blocked;default:false" json:"is_blocked"`
	CreatedAt    time.Time `json:"created_at"`
}

func (User) TableName() string {
	return "users"
}
