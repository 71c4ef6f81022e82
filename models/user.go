package models

import "time"

// User roles.
const (
	RoleClient       = "client"
	RoleProfessional = "professional"
	RoleAdmin        = "admin"
)

// User statuses.
const (
	UserActive    = "active"
	UserSuspended = "suspended"
)

// User represents a platform account.
type User struct {
	ID           string    `bson:"id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Email        string    `bson:"email" json:"email"`
	PhoneNumber  string    `bson:"phoneNumber,omitempty" json:"phoneNumber,omitempty"`
	Password     string    `bson:"-" json:"password,omitempty"`
	PasswordHash string    `bson:"passwordHash" json:"-"`
	TokenHash    string    `bson:"tokenHash,omitempty" json:"-"`
	Role         string    `bson:"role" json:"role"`
	Status       string    `bson:"status" json:"status"`
	LastLogin    time.Time `bson:"lastLogin,omitempty" json:"lastLogin,omitzero"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

// IsValidRole reports whether r is a known role.
func IsValidRole(r string) bool {
	return r == RoleClient || r == RoleProfessional || r == RoleAdmin
}

// IsValidUserStatus reports whether s is a known account status.
func IsValidUserStatus(s string) bool {
	return s == UserActive || s == UserSuspended
}

// AuthResponse is returned after login, registration and onboarding.
type AuthResponse struct {
	ID    string `json:"id"`
	Token string `json:"token"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role"`
}

// UserFilter narrows the admin user table.
type UserFilter struct {
	Query    string
	Role     string
	Status   string
	Page     int
	PageSize int
}

// RegisterRequest is the client sign-up payload.
type RegisterRequest struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required"`
	PhoneNumber string `json:"phoneNumber"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
}

// UserUpdate is the admin patch of a user's role or status.
type UserUpdate struct {
	Role   *string `json:"role"`
	Status *string `json:"status"`
}
