package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"online-shop/internal/database"
	"online-shop/internal/model"
	"online-shop/internal/store"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func stubUsers(t *testing.T, users ...model.User) {
	t.Helper()
	getUserByEmail = func(_ context.Context, _ database.Querier, email string) (*model.User, error) {
		for _, u := range users {
			if u.Email == email {
				u := u
				return &u, nil
			}
		}
		return nil, store.ErrNotFound
	}
	getUserByID = func(_ context.Context, _ database.Querier, id string) (*model.User, error) {
		for _, u := range users {
			if u.ID == id {
				u := u
				return &u, nil
			}
		}
		return nil, store.ErrNotFound
	}
}

func registered(t *testing.T) model.User {
	t.Helper()
	hash, err := HashPassword("pw")
	require.NoError(t, err)
	return model.User{ID: "user-1", Email: "ana@example.com", PasswordHash: hash}
}

func TestIssueAndVerify(t *testing.T) {
	t.Cleanup(restoreGlobals)
	u := registered(t)
	stubUsers(t, u)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	timeNow = func() time.Time { return now }

	auth := NewAuthenticator(&database.FakeDB{}, testSecret, 15*time.Minute)
	tok, exp, err := auth.Issue(context.Background(), "Ana@Example.com", "pw")
	require.NoError(t, err)
	require.NotEmpty(t, tok)
	require.Equal(t, now.Add(15*time.Minute), exp)

	got, err := auth.Verify(context.Background(), tok)
	require.NoError(t, err)
	require.Equal(t, "user-1", got.ID)

	claims, err := auth.VerifyAccessToken(tok)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.UserID)
	require.Equal(t, "user-1", claims.Subject)
}

func TestIssueInvalidCredentials(t *testing.T) {
	t.Cleanup(restoreGlobals)
	stubUsers(t, registered(t))
	auth := NewAuthenticator(&database.FakeDB{}, testSecret, 15*time.Minute)

	_, _, errUnknown := auth.Issue(context.Background(), "nobody@example.com", "pw")
	_, _, errWrong := auth.Issue(context.Background(), "ana@example.com", "bad")
	require.ErrorIs(t, errUnknown, ErrInvalidCredentials)
	require.ErrorIs(t, errWrong, ErrInvalidCredentials)
	// 兩種失敗對外完全相同
	require.Equal(t, errUnknown.Error(), errWrong.Error())
}

func TestIssueLookupError(t *testing.T) {
	t.Cleanup(restoreGlobals)
	getUserByEmail = func(context.Context, database.Querier, string) (*model.User, error) {
		return nil, errors.New("conn refused")
	}
	auth := NewAuthenticator(&database.FakeDB{}, testSecret, 15*time.Minute)
	_, _, err := auth.Issue(context.Background(), "ana@example.com", "pw")
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrInvalidCredentials)
}

func TestTokenExpiry(t *testing.T) {
	t.Cleanup(restoreGlobals)
	u := registered(t)
	stubUsers(t, u)
	issued := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	timeNow = func() time.Time { return issued }
	auth := NewAuthenticator(&database.FakeDB{}, testSecret, 15*time.Minute)
	tok, _, err := auth.IssueAccessToken(u)
	require.NoError(t, err)

	timeNow = func() time.Time { return issued.Add(14 * time.Minute) }
	_, err = auth.Verify(context.Background(), tok)
	require.NoError(t, err)

	timeNow = func() time.Time { return issued.Add(15*time.Minute + time.Second) }
	_, err = auth.Verify(context.Background(), tok)
	require.ErrorIs(t, err, ErrUnauthenticated)
}

func TestVerifyRejects(t *testing.T) {
	t.Cleanup(restoreGlobals)
	u := registered(t)
	stubUsers(t, u)
	auth := NewAuthenticator(&database.FakeDB{}, testSecret, 15*time.Minute)
	ctx := context.Background()
	exp := jwt.NewNumericDate(time.Now().Add(time.Minute))

	t.Run("malformed", func(t *testing.T) {
		_, err := auth.Verify(ctx, "not-a-token")
		require.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewAuthenticator(&database.FakeDB{}, "other", 15*time.Minute)
		tok, _, err := other.IssueAccessToken(u)
		require.NoError(t, err)
		_, err = auth.Verify(ctx, tok)
		require.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("alg none", func(t *testing.T) {
		tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: u.ID, RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: exp}}).
			SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = auth.Verify(ctx, tok)
		require.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("hs512", func(t *testing.T) {
		tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{UserID: u.ID, RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: exp}}).
			SignedString([]byte(testSecret))
		require.NoError(t, err)
		_, err = auth.Verify(ctx, tok)
		require.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("missing exp", func(t *testing.T) {
		tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{UserID: u.ID}).SignedString([]byte(testSecret))
		require.NoError(t, err)
		_, err = auth.Verify(ctx, tok)
		require.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("missing id", func(t *testing.T) {
		tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: exp}}).
			SignedString([]byte(testSecret))
		require.NoError(t, err)
		_, err = auth.Verify(ctx, tok)
		require.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("user deleted", func(t *testing.T) {
		tok, _, err := auth.IssueAccessToken(model.User{ID: "gone"})
		require.NoError(t, err)
		_, err = auth.Verify(ctx, tok)
		require.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("invalid token object", func(t *testing.T) {
		parseWithClaims = func(string, jwt.Claims, jwt.Keyfunc, ...jwt.ParserOption) (*jwt.Token, error) {
			return &jwt.Token{Claims: &Claims{UserID: "x"}, Valid: false}, nil
		}
		t.Cleanup(func() { parseWithClaims = jwt.ParseWithClaims })
		_, err := auth.Verify(ctx, "whatever")
		require.ErrorIs(t, err, ErrUnauthenticated)
	})
}

func TestMissingSecret(t *testing.T) {
	auth := NewAuthenticator(&database.FakeDB{}, "", time.Minute)
	_, _, err := auth.IssueAccessToken(model.User{ID: "u"})
	require.Error(t, err)
	_, err = auth.VerifyAccessToken("abc")
	require.Error(t, err)
}
