// File: internal/store/users.go
package store

import (
	"context"
	"fmt"

	"online-shop/internal/database"
	"online-shop/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const userColumns = `id, first_name, last_name, email, password_hash, address, phone, is_admin, created_at`

var newUserID = uuid.NewString

func scanUser(row pgx.Row, u *model.User) error {
	return row.Scan(
		&u.ID,
		&u.FirstName,
		&u.LastName,
		&u.Email,
		&u.PasswordHash,
		&u.Address,
		&u.Phone,
		&u.IsAdmin,
		&u.CreatedAt,
	)
}

// CreateUser 新增使用者；email 重複時回傳 ErrDuplicateEmail
func CreateUser(ctx context.Context, q database.Querier, u *model.User) (*model.User, error) {
	if u.ID == "" {
		u.ID = newUserID()
	}
	row := q.QueryRow(ctx,
		`INSERT INTO users (id, first_name, last_name, email, password_hash, address, phone, is_admin)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING created_at`,
		u.ID,
		u.FirstName,
		u.LastName,
		u.Email,
		u.PasswordHash,
		u.Address,
		u.Phone,
		u.IsAdmin,
	)
	if err := row.Scan(&u.CreatedAt); err != nil {
		if code, _ := pgCode(err); code == uniqueViolation {
			return nil, fmt.Errorf("CreateUser: %w", ErrDuplicateEmail)
		}
		return nil, wrap("CreateUser", err)
	}
	return u, nil
}

func GetUserByID(ctx context.Context, q database.Querier, id string) (*model.User, error) {
	row := q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	u := &model.User{}
	if err := scanUser(row, u); err != nil {
		return nil, wrap("GetUserByID", err)
	}
	return u, nil
}

func GetUserByEmail(ctx context.Context, q database.Querier, email string) (*model.User, error) {
	row := q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	u := &model.User{}
	if err := scanUser(row, u); err != nil {
		return nil, wrap("GetUserByEmail", err)
	}
	return u, nil
}

func ListUsers(ctx context.Context, q database.Querier) ([]model.User, error) {
	rows, err := q.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at, id`)
	if err != nil {
		return nil, wrap("ListUsers", err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		var u model.User
		if err := scanUser(rows, &u); err != nil {
			return nil, wrap("ListUsers", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("ListUsers", err)
	}
	return users, nil
}

// SetUserAdmin 更新管理員旗標
func SetUserAdmin(ctx context.Context, q database.Querier, id string, isAdmin bool) error {
	tag, err := q.Exec(ctx, `UPDATE users SET is_admin = $1 WHERE id = $2`, isAdmin, id)
	if err != nil {
		return wrap("SetUserAdmin", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("SetUserAdmin: %w", ErrNotFound)
	}
	return nil
}

// DeleteUser removes the user together with their cart and its lines in one transaction.
func DeleteUser(ctx context.Context, db database.DB, id string) error {
	return database.WithTx(ctx, db, func(q database.Querier) error {
		if _, err := q.Exec(ctx,
			`DELETE FROM cart_lines
			 WHERE cart_id IN (SELECT id FROM carts WHERE user_id = $1)`,
			id,
		); err != nil {
			return wrap("DeleteUser", err)
		}
		if _, err := q.Exec(ctx, `DELETE FROM carts WHERE user_id = $1`, id); err != nil {
			return wrap("DeleteUser", err)
		}
		tag, err := q.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
		if err != nil {
			return wrap("DeleteUser", err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("DeleteUser: %w", ErrNotFound)
		}
		return nil
	})
}
