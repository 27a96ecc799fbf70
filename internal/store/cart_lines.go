// File: internal/store/cart_lines.go
package store

import (
	"context"
	"fmt"

	"online-shop/internal/database"
	"online-shop/internal/model"
)

// AddProductToCart creates the user's cart if needed and appends one line for the product.
// Both writes share a transaction.
func AddProductToCart(ctx context.Context, db database.DB, userID string, productID int64) (*model.CartLine, error) {
	line := &model.CartLine{ProductID: productID}
	err := database.WithTx(ctx, db, func(q database.Querier) error {
		cartID, err := EnsureCart(ctx, q, userID)
		if err != nil {
			return err
		}
		line.CartID = cartID

		row := q.QueryRow(ctx,
			`INSERT INTO cart_lines (cart_id, product_id) VALUES ($1, $2)
			 RETURNING id`,
			cartID,
			productID,
		)
		if err := row.Scan(&line.ID); err != nil {
			if code, _ := pgCode(err); code == foreignKeyViolation {
				return fmt.Errorf("AddProductToCart: %w", ErrNotFound)
			}
			return wrap("AddProductToCart", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return line, nil
}

// ListCartProducts returns one product per cart line of the user's cart.
func ListCartProducts(ctx context.Context, q database.Querier, userID string) ([]model.Product, error) {
	rows, err := q.Query(ctx,
		`SELECT p.id, p.name, p.category, p.price, p.description, p.image, p.released_at
		 FROM products p
		 JOIN cart_lines l ON l.product_id = p.id
		 JOIN carts c ON c.id = l.cart_id
		 WHERE c.user_id = $1
		 ORDER BY l.id`,
		userID,
	)
	if err != nil {
		return nil, wrap("ListCartProducts", err)
	}
	return collectProducts("ListCartProducts", rows)
}

// RemoveCartLine deletes a single line of productID from the cart.
func RemoveCartLine(ctx context.Context, q database.Querier, cartID, productID int64) error {
	tag, err := q.Exec(ctx,
		`DELETE FROM cart_lines
		 WHERE id = (
		     SELECT id FROM cart_lines
		     WHERE cart_id = $1 AND product_id = $2
		     ORDER BY id
		     LIMIT 1
		 )`,
		cartID,
		productID,
	)
	if err != nil {
		return wrap("RemoveCartLine", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("RemoveCartLine: %w", ErrNotFound)
	}
	return nil
}
