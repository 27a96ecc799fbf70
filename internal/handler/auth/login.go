package auth

import (
	"context"
	"errors"
	"net/http"
	"time"

	"online-shop/internal/api"
	"online-shop/internal/apperr"
	"online-shop/internal/service"

	"github.com/labstack/echo/v4"
)

// Issuer 以帳號密碼簽發 token
type Issuer interface {
	Issue(ctx context.Context, email, password string) (string, time.Time, error)
}

// LoginHandler 使用 HTTP Basic Auth (email/密碼) 驗證並回傳 JWT
// @Summary     登入使用者
// @Description 以 Basic Auth 傳入 email 與密碼，回傳 15 分鐘有效的存取令牌
// @Tags        auth
// @Produce     json
// @Success     200      {object} api.LoginResponse
// @Failure     401      {object} api.ErrorResponse
// @Failure     500      {object} api.ErrorResponse
// @Security    BasicAuth
// @Router      /login [get]
func LoginHandler(iss Issuer) echo.HandlerFunc {
	return func(c echo.Context) error {
		email, password, ok := c.Request().BasicAuth()
		if !ok || email == "" || password == "" {
			return apperr.ErrInvalidCredentials.WithMessage("Could not verify. No data provided.")
		}

		token, exp, err := iss.Issue(c.Request().Context(), email, password)
		if errors.Is(err, service.ErrInvalidCredentials) {
			return apperr.ErrInvalidCredentials
		}
		if err != nil {
			return apperr.ErrInternal.Wrap(err)
		}

		return c.JSON(http.StatusOK, api.LoginResponse{Token: token, ExpiresAt: exp})
	}
}
