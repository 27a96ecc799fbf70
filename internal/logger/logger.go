package logger

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// RequestIDKey 是 request id 存放在 echo.Context 的 key
const RequestIDKey = "request_id"

var newRequestID = uuid.NewString

// New 依環境建立 logger：production 輸出 JSON，其餘為 console
func New(env string) (*zap.Logger, error) {
	var cfg zap.Config
	if env == "production" {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "timestamp"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	return cfg.Build()
}

// RequestLogger 記錄每個請求的 method/path/status/latency
// 沿用 X-Request-ID，沒有就產生一個並回寫到 response header
func RequestLogger(log *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()

			id := req.Header.Get(echo.HeaderXRequestID)
			if id == "" {
				id = newRequestID()
			}
			c.Set(RequestIDKey, id)
			c.Response().Header().Set(echo.HeaderXRequestID, id)

			// 先交給 HTTPErrorHandler 寫出回應，status 才會正確
			if err := next(c); err != nil {
				c.Error(err)
			}

			log.Info("request completed",
				zap.String("request_id", id),
				zap.String("method", req.Method),
				zap.String("path", req.URL.Path),
				zap.String("query", req.URL.RawQuery),
				zap.Int("status", c.Response().Status),
				zap.String("ip", c.RealIP()),
				zap.Duration("latency", time.Since(start)),
				zap.String("user_agent", req.UserAgent()),
			)
			return nil
		}
	}
}

// RequestID 取出目前請求的 id，沒有時回傳空字串
func RequestID(c echo.Context) string {
	id, _ := c.Get(RequestIDKey).(string)
	return id
}
