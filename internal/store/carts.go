// File: internal/store/carts.go
package store

import (
	"context"
	"fmt"

	"online-shop/internal/database"
	"online-shop/internal/model"
)

// CreateCart 為使用者建立購物車；已存在時回傳 ErrCartExists
func CreateCart(ctx context.Context, q database.Querier, userID string) (*model.Cart, error) {
	c := &model.Cart{UserID: userID}
	row := q.QueryRow(ctx,
		`INSERT INTO carts (user_id) VALUES ($1)
		 RETURNING id, created_at`,
		userID,
	)
	if err := row.Scan(&c.ID, &c.CreatedAt); err != nil {
		if code, _ := pgCode(err); code == uniqueViolation {
			return nil, fmt.Errorf("CreateCart: %w", ErrCartExists)
		}
		return nil, wrap("CreateCart", err)
	}
	return c, nil
}

// EnsureCart returns the id of the user's cart, creating the cart when missing.
// The upsert keeps concurrent callers on the same row.
func EnsureCart(ctx context.Context, q database.Querier, userID string) (int64, error) {
	var id int64
	row := q.QueryRow(ctx,
		`INSERT INTO carts (user_id) VALUES ($1)
		 ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
		 RETURNING id`,
		userID,
	)
	if err := row.Scan(&id); err != nil {
		return 0, wrap("EnsureCart", err)
	}
	return id, nil
}

func GetCartByUser(ctx context.Context, q database.Querier, userID string) (*model.Cart, error) {
	c := &model.Cart{}
	row := q.QueryRow(ctx,
		`SELECT id, user_id, created_at FROM carts WHERE user_id = $1`,
		userID,
	)
	if err := row.Scan(&c.ID, &c.UserID, &c.CreatedAt); err != nil {
		return nil, wrap("GetCartByUser", err)
	}
	return c, nil
}

func ListCartsByUser(ctx context.Context, q database.Querier, userID string) ([]model.Cart, error) {
	rows, err := q.Query(ctx,
		`SELECT id, user_id, created_at FROM carts WHERE user_id = $1 ORDER BY id`,
		userID,
	)
	if err != nil {
		return nil, wrap("ListCartsByUser", err)
	}
	defer rows.Close()

	carts := []model.Cart{}
	for rows.Next() {
		var c model.Cart
		if err := rows.Scan(&c.ID, &c.UserID, &c.CreatedAt); err != nil {
			return nil, wrap("ListCartsByUser", err)
		}
		carts = append(carts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("ListCartsByUser", err)
	}
	return carts, nil
}

// DeleteCartByUser drops the user's cart lines and cart in one transaction.
func DeleteCartByUser(ctx context.Context, db database.DB, userID string) error {
	return database.WithTx(ctx, db, func(q database.Querier) error {
		if _, err := q.Exec(ctx,
			`DELETE FROM cart_lines
			 WHERE cart_id IN (SELECT id FROM carts WHERE user_id = $1)`,
			userID,
		); err != nil {
			return wrap("DeleteCartByUser", err)
		}
		tag, err := q.Exec(ctx, `DELETE FROM carts WHERE user_id = $1`, userID)
		if err != nil {
			return wrap("DeleteCartByUser", err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("DeleteCartByUser: %w", ErrNotFound)
		}
		return nil
	})
}
