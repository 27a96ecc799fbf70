// File: internal/model/product.go
package model

import "time"

type Product struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Category    string    `db:"category" json:"category"`
	Price       int       `db:"price" json:"price"`
	Description string    `db:"description" json:"description"`
	Image       string    `db:"image" json:"image"`
	ReleasedAt  time.Time `db:"released_at" json:"released_at"`
}
