// File: internal/store/products.go
package store

import (
	"context"
	"fmt"

	"online-shop/internal/database"
	"online-shop/internal/model"

	"github.com/jackc/pgx/v5"
)

const productColumns = `id, name, category, price, description, image, released_at`

func scanProduct(row pgx.Row, p *model.Product) error {
	return row.Scan(
		&p.ID,
		&p.Name,
		&p.Category,
		&p.Price,
		&p.Description,
		&p.Image,
		&p.ReleasedAt,
	)
}

func collectProducts(fn string, rows pgx.Rows) ([]model.Product, error) {
	defer rows.Close()

	products := []model.Product{}
	for rows.Next() {
		var p model.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, wrap(fn, err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(fn, err)
	}
	return products, nil
}

// CreateProduct 新增商品，released_at 由資料庫預設為建立時間
func CreateProduct(ctx context.Context, q database.Querier, p *model.Product) (*model.Product, error) {
	row := q.QueryRow(ctx,
		`INSERT INTO products (name, category, price, description, image)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, released_at`,
		p.Name,
		p.Category,
		p.Price,
		p.Description,
		p.Image,
	)
	if err := row.Scan(&p.ID, &p.ReleasedAt); err != nil {
		return nil, wrap("CreateProduct", err)
	}
	return p, nil
}

func GetProductByID(ctx context.Context, q database.Querier, id int64) (*model.Product, error) {
	row := q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	p := &model.Product{}
	if err := scanProduct(row, p); err != nil {
		return nil, wrap("GetProductByID", err)
	}
	return p, nil
}

func ListProducts(ctx context.Context, q database.Querier) ([]model.Product, error) {
	rows, err := q.Query(ctx, `SELECT `+productColumns+` FROM products ORDER BY id`)
	if err != nil {
		return nil, wrap("ListProducts", err)
	}
	return collectProducts("ListProducts", rows)
}

func UpdateProductName(ctx context.Context, q database.Querier, id int64, name string) error {
	tag, err := q.Exec(ctx, `UPDATE products SET name = $1 WHERE id = $2`, name, id)
	if err != nil {
		return wrap("UpdateProductName", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("UpdateProductName: %w", ErrNotFound)
	}
	return nil
}

// DeleteProduct removes every cart line pointing at the product, then the product itself.
func DeleteProduct(ctx context.Context, db database.DB, id int64) error {
	return database.WithTx(ctx, db, func(q database.Querier) error {
		if _, err := q.Exec(ctx, `DELETE FROM cart_lines WHERE product_id = $1`, id); err != nil {
			return wrap("DeleteProduct", err)
		}
		tag, err := q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
		if err != nil {
			return wrap("DeleteProduct", err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("DeleteProduct: %w", ErrNotFound)
		}
		return nil
	})
}
