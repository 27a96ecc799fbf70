package apperr

import (
	"errors"
	"net/http"

	"online-shop/internal/api"
	"online-shop/internal/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// HTTPErrorHandler 將 handler 回傳的錯誤轉成 api.ErrorResponse
// 未知錯誤一律 500 並隱藏細節，5xx 會寫 log
func HTTPErrorHandler(log *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := ErrInternal.Code
		msg := ErrInternal.Message

		var appErr *Error
		var httpErr *echo.HTTPError
		switch {
		case errors.As(err, &appErr):
			code, msg = appErr.Code, appErr.Message
			if appErr.Challenge != "" {
				c.Response().Header().Set(echo.HeaderWWWAuthenticate, appErr.Challenge)
			}
		case errors.As(err, &httpErr):
			code = httpErr.Code
			if s, ok := httpErr.Message.(string); ok {
				msg = s
			} else {
				msg = http.StatusText(code)
			}
		}

		if code >= http.StatusInternalServerError {
			log.Error("request failed",
				zap.String("request_id", logger.RequestID(c)),
				zap.String("method", c.Request().Method),
				zap.String("path", c.Path()),
				zap.Int("status", code),
				zap.Error(err),
			)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(code)
		} else {
			err = c.JSON(code, api.ErrorResponse{Message: msg})
		}
		if err != nil {
			log.Warn("write error response", zap.Error(err))
		}
	}
}
