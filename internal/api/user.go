package api

import (
	"time"

	"online-shop/internal/model"
)

// swagger:model api.CreateUserRequest
type CreateUserRequest struct {
	FirstName string `json:"nume" validate:"required" example:"Popescu"`
	LastName  string `json:"prenume" validate:"required" example:"Ana"`
	Email     string `json:"email" validate:"required" example:"ana@example.com"`
	Password  string `json:"parola" validate:"required" example:"Secret123!"`
	Address   string `json:"adresa_domiciliu" example:"Str. Lunga 1, Brasov"`
	Phone     string `json:"telefon" example:"0712345678"`
}

// UserResponse 對外的使用者資料，不含密碼雜湊
// swagger:model api.UserResponse
type UserResponse struct {
	ID        string    `json:"id" example:"0b6f1c7e-2d1a-4c55-9a4e-3c1d2e5f6a7b"`
	FirstName string    `json:"nume" example:"Popescu"`
	LastName  string    `json:"prenume" example:"Ana"`
	Email     string    `json:"email" example:"ana@example.com"`
	Address   string    `json:"adresa_domiciliu" example:"Str. Lunga 1, Brasov"`
	Phone     string    `json:"telefon" example:"0712345678"`
	IsAdmin   bool      `json:"admin" example:"false"`
	CreatedAt time.Time `json:"data_creare" example:"2024-01-01T00:00:00Z"`
}

// swagger:model api.UserListResponse
type UserListResponse struct {
	Users []UserResponse `json:"users"`
}

// swagger:model api.UserEnvelope
type UserEnvelope struct {
	User UserResponse `json:"user"`
}

// swagger:model api.CreateUserResponse
type CreateUserResponse struct {
	Message string `json:"message" example:"Utilizator adaugat cu succes!"`
	ID      string `json:"id" example:"0b6f1c7e-2d1a-4c55-9a4e-3c1d2e5f6a7b"`
}

func NewUserResponse(u model.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Address:   u.Address,
		Phone:     u.Phone,
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt,
	}
}
