package handler

import (
	"net/http"

	"online-shop/internal/api"
	"online-shop/internal/apperr"
	"online-shop/internal/cache"
	"online-shop/internal/database"

	"github.com/labstack/echo/v4"
)

var (
	errDatabaseUnhealthy = apperr.New(http.StatusServiceUnavailable, "database unhealthy")
	errCacheUnhealthy    = apperr.New(http.StatusServiceUnavailable, "cache unhealthy")
)

// PingHandler 健康檢查
// @Summary     Health Check
// @Description 回傳 pong，並檢查資料庫與 Redis 連線是否正常
// @Tags        health
// @Produce     json
// @Success     200 {object} api.PingResponse
// @Failure     503 {object} api.ErrorResponse
// @Router      /ping [get]
func PingHandler(db database.DB, c cache.Cache) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		if err := db.Ping(ctx.Request().Context()); err != nil {
			return errDatabaseUnhealthy.Wrap(err)
		}
		if err := c.Ping(ctx.Request().Context()).Err(); err != nil {
			return errCacheUnhealthy.Wrap(err)
		}
		return ctx.JSON(http.StatusOK, api.PingResponse{Message: "pong"})
	}
}
