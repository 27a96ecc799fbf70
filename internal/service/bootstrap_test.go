package service

import (
	"context"
	"errors"
	"testing"

	"online-shop/internal/database"
	"online-shop/internal/model"
	"online-shop/internal/store"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestEnsureAdmin(t *testing.T) {
	ctx := context.Background()
	db := &database.FakeDB{}
	log := zap.NewNop()

	t.Run("skipped without credentials", func(t *testing.T) {
		t.Cleanup(restoreGlobals)
		getUserByEmail = func(context.Context, database.Querier, string) (*model.User, error) {
			t.Fatal("should not query")
			return nil, nil
		}
		require.NoError(t, EnsureAdmin(ctx, db, "", "pw", log))
		require.NoError(t, EnsureAdmin(ctx, db, "root@shop.test", "", log))
	})

	t.Run("creates admin", func(t *testing.T) {
		t.Cleanup(restoreGlobals)
		getUserByEmail = func(context.Context, database.Querier, string) (*model.User, error) {
			return nil, store.ErrNotFound
		}
		var created *model.User
		createUser = func(_ context.Context, _ database.Querier, u *model.User) (*model.User, error) {
			created = u
			u.ID = "admin-1"
			return u, nil
		}
		require.NoError(t, EnsureAdmin(ctx, db, "Root@Shop.test", "pw", log))
		require.NotNil(t, created)
		require.True(t, created.IsAdmin)
		require.Equal(t, "root@shop.test", created.Email)
		require.NoError(t, ComparePassword(created.PasswordHash, "pw"))
	})

	t.Run("existing user left alone", func(t *testing.T) {
		t.Cleanup(restoreGlobals)
		getUserByEmail = func(context.Context, database.Querier, string) (*model.User, error) {
			return &model.User{ID: "u1"}, nil
		}
		createUser = func(context.Context, database.Querier, *model.User) (*model.User, error) {
			t.Fatal("should not create")
			return nil, nil
		}
		require.NoError(t, EnsureAdmin(ctx, db, "root@shop.test", "pw", log))
	})

	t.Run("concurrent create tolerated", func(t *testing.T) {
		t.Cleanup(restoreGlobals)
		getUserByEmail = func(context.Context, database.Querier, string) (*model.User, error) {
			return nil, store.ErrNotFound
		}
		createUser = func(context.Context, database.Querier, *model.User) (*model.User, error) {
			return nil, store.ErrDuplicateEmail
		}
		require.NoError(t, EnsureAdmin(ctx, db, "root@shop.test", "pw", log))
	})

	t.Run("lookup error", func(t *testing.T) {
		t.Cleanup(restoreGlobals)
		getUserByEmail = func(context.Context, database.Querier, string) (*model.User, error) {
			return nil, errors.New("db down")
		}
		require.ErrorContains(t, EnsureAdmin(ctx, db, "root@shop.test", "pw", log), "db down")
	})
}
