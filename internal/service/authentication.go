package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"online-shop/internal/database"
	"online-shop/internal/model"
	"online-shop/internal/store"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("unauthenticated")
)

var (
	getUserByEmail  = store.GetUserByEmail
	getUserByID     = store.GetUserByID
	timeNow         = time.Now
	parseWithClaims = jwt.ParseWithClaims
)

// Claims 定義 JWT 負載內容，只帶使用者 id；權限每次從資料庫讀取
type Claims struct {
	UserID string `json:"id"`
	jwt.RegisteredClaims
}

// Authenticator 簽發與驗證 access token
type Authenticator struct {
	DB     database.DB
	Secret []byte
	TTL    time.Duration
}

func NewAuthenticator(db database.DB, secret string, ttl time.Duration) *Authenticator {
	return &Authenticator{DB: db, Secret: []byte(secret), TTL: ttl}
}

// 找不到使用者時仍做一次 bcrypt 比對，讓兩種失敗耗時相近
var dummyHash = sync.OnceValue(func() string {
	h, _ := HashPassword("not-a-real-password")
	return h
})

// Issue 以 email/密碼登入；帳號不存在與密碼錯誤都回傳 ErrInvalidCredentials
func (a *Authenticator) Issue(ctx context.Context, email, password string) (string, time.Time, error) {
	user, err := getUserByEmail(ctx, a.DB, strings.ToLower(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			_ = ComparePassword(dummyHash(), password)
			return "", time.Time{}, ErrInvalidCredentials
		}
		return "", time.Time{}, fmt.Errorf("Issue: %w", err)
	}
	if err := ComparePassword(user.PasswordHash, password); err != nil {
		return "", time.Time{}, ErrInvalidCredentials
	}
	return a.IssueAccessToken(*user)
}

// IssueAccessToken 依據使用者與 TTL 產生 HS256 JWT
func (a *Authenticator) IssueAccessToken(user model.User) (string, time.Time, error) {
	if len(a.Secret) == 0 {
		return "", time.Time{}, fmt.Errorf("JWT secret not set")
	}

	now := timeNow()
	exp := now.Add(a.TTL)
	claims := Claims{
		UserID: user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.Secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, exp.Truncate(time.Second), nil
}

// VerifyAccessToken 驗證簽章、演算法與 exp，回傳 claims
func (a *Authenticator) VerifyAccessToken(tokenString string) (*Claims, error) {
	if len(a.Secret) == 0 {
		return nil, fmt.Errorf("JWT secret not set")
	}

	token, err := parseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return a.Secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(timeNow),
	)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

// Verify 驗證 token 並載入對應使用者；任何失敗都是 ErrUnauthenticated
func (a *Authenticator) Verify(ctx context.Context, token string) (*model.User, error) {
	claims, err := a.VerifyAccessToken(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}
	user, err := getUserByID(ctx, a.DB, claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}
	return user, nil
}
