package api

import (
	"time"

	"online-shop/internal/model"
)

// swagger:model api.CartResponse
type CartResponse struct {
	ID        int64     `json:"id" example:"1"`
	CreatedAt time.Time `json:"data_creare" example:"2024-01-01T00:00:00Z"`
	UserID    string    `json:"id_utilizator" example:"0b6f1c7e-2d1a-4c55-9a4e-3c1d2e5f6a7b"`
}

// swagger:model api.CartListResponse
type CartListResponse struct {
	Carts []CartResponse `json:"cart"`
}

// swagger:model api.CreateCartResponse
type CreateCartResponse struct {
	Message string       `json:"message" example:"Cart created"`
	Cart    CartResponse `json:"cart"`
}

// swagger:model api.AddProductRequest
type AddProductRequest struct {
	ProductID *int64 `json:"produs_id" validate:"required" example:"1"`
}

func NewCartResponse(c model.Cart) CartResponse {
	return CartResponse{ID: c.ID, CreatedAt: c.CreatedAt, UserID: c.UserID}
}
