// File: internal/model/cart.go
package model

import "time"

// Cart belongs to exactly one user.
type Cart struct {
	ID        int64     `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// CartLine places one product in one cart. Repeated adds produce repeated lines.
type CartLine struct {
	ID        int64 `db:"id" json:"id"`
	CartID    int64 `db:"cart_id" json:"cart_id"`
	ProductID int64 `db:"product_id" json:"product_id"`
}
