package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"online-shop/internal/database"
	"online-shop/internal/model"
	"online-shop/internal/store"

	"go.uber.org/zap"
)

var createUser = store.CreateUser

// EnsureAdmin 在 email 尚未註冊時建立管理員帳號；email 或密碼為空則略過
func EnsureAdmin(ctx context.Context, db database.DB, email, password string, log *zap.Logger) error {
	if email == "" || password == "" {
		return nil
	}
	email = strings.ToLower(email)

	_, err := getUserByEmail(ctx, db, email)
	if err == nil {
		log.Info("admin already exists", zap.String("email", email))
		return nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("EnsureAdmin: %w", err)
	}

	hash, err := HashPassword(password)
	if err != nil {
		return fmt.Errorf("EnsureAdmin: %w", err)
	}
	u, err := createUser(ctx, db, &model.User{
		FirstName:    "Admin",
		LastName:     "Admin",
		Email:        email,
		PasswordHash: hash,
		IsAdmin:      true,
	})
	// 多個實例同時啟動時，另一個可能已先建立
	if errors.Is(err, store.ErrDuplicateEmail) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("EnsureAdmin: %w", err)
	}
	log.Info("admin created", zap.String("email", email), zap.String("id", u.ID))
	return nil
}
