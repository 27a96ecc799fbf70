package middleware

import (
	"context"

	"online-shop/internal/apperr"
	"online-shop/internal/model"

	"github.com/labstack/echo/v4"
)

// TokenHeader 攜帶 access token 的 header
const TokenHeader = "x-access-token"

const ContextUserKey = "user"

// TokenVerifier 驗證 token 並回傳對應的使用者
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*model.User, error)
}

// RequireAuth 驗證 token，將使用者放入 echo.Context
func RequireAuth(v TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := c.Request().Header.Get(TokenHeader)
			if token == "" {
				return apperr.ErrUnauthenticated.WithMessage("Token is missing!")
			}
			user, err := v.Verify(c.Request().Context(), token)
			if err != nil {
				return apperr.ErrUnauthenticated.Wrap(err)
			}
			c.Set(ContextUserKey, user)
			return next(c)
		}
	}
}

// RequireAdmin 必須掛在 RequireAuth 之後；管理員身分取自剛載入的使用者資料
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok := CurrentUser(c)
		if !ok {
			return apperr.ErrUnauthenticated
		}
		if !user.IsAdmin {
			return apperr.ErrForbidden
		}
		return next(c)
	}
}

// CurrentUser 取出 RequireAuth 放入的使用者
func CurrentUser(c echo.Context) (*model.User, bool) {
	u, ok := c.Get(ContextUserKey).(*model.User)
	return u, ok && u != nil
}
