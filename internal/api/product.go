package api

import (
	"time"

	"online-shop/internal/model"
)

// CreateProductRequest 新增商品表單；pret 以指標判斷是否有提供
// swagger:model api.CreateProductRequest
type CreateProductRequest struct {
	Name        string `json:"nume" validate:"required" example:"Widget"`
	Category    string `json:"categorie" validate:"required" example:"gadgets"`
	Price       *int   `json:"pret" validate:"required" example:"10"`
	Description string `json:"descriere" example:"A small widget"`
	Image       string `json:"imagine" example:"https://example.com/widget.png"`
}

// swagger:model api.UpdateProductRequest
type UpdateProductRequest struct {
	Name string `json:"nume" validate:"required" example:"Widget Pro"`
}

// swagger:model api.ProductResponse
type ProductResponse struct {
	ID          int64     `json:"id" example:"1"`
	Name        string    `json:"nume" example:"Widget"`
	Category    string    `json:"categorie" example:"gadgets"`
	Price       int       `json:"pret" example:"10"`
	Description string    `json:"descriere" example:"A small widget"`
	Image       string    `json:"imagine" example:"https://example.com/widget.png"`
	ReleasedAt  time.Time `json:"data_lansare" example:"2024-01-01T00:00:00Z"`
}

// swagger:model api.ProductListResponse
type ProductListResponse struct {
	Products []ProductResponse `json:"produse"`
}

// swagger:model api.ProductEnvelope
type ProductEnvelope struct {
	Product ProductResponse `json:"produs"`
}

// swagger:model api.CreateProductResponse
type CreateProductResponse struct {
	Message string          `json:"message" example:"Product added succesfully!"`
	Product ProductResponse `json:"produs"`
}

func NewProductResponse(p model.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Category:    p.Category,
		Price:       p.Price,
		Description: p.Description,
		Image:       p.Image,
		ReleasedAt:  p.ReleasedAt,
	}
}

// NewProductList 永遠回傳非 nil slice，空清單序列化為 []
func NewProductList(ps []model.Product) ProductListResponse {
	out := make([]ProductResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, NewProductResponse(p))
	}
	return ProductListResponse{Products: out}
}
