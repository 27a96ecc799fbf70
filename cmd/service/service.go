package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"online-shop/internal/apperr"
	"online-shop/internal/cache"
	"online-shop/internal/config"
	"online-shop/internal/database"
	"online-shop/internal/logger"
	"online-shop/internal/middleware"
	"online-shop/internal/router"
	"online-shop/internal/service"
	"online-shop/internal/worker"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"
)

// CustomValidator wraps go-playground/validator for Echo
// swagger:ignore
type CustomValidator struct {
	validator *validator.Validate
}

// Validate calls the underlying validator
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

const shutdownTimeout = 10 * time.Second

var (
	loadConfig      = func() (*config.Config, error) { return config.Load() }
	newLogger       = logger.New
	newPgxPool      = database.NewPgxPool
	newRedisClient  = cache.NewRedisClient
	runMigrationsFn = database.RunMigrations
	rollbackFn      = database.RollbackAll
	newWorkerPool   = worker.NewPool
	ensureAdmin     = service.EnsureAdmin
	startServer     = func(e *echo.Echo, addr string) error { return e.Start(addr) }
	exitFunc        = os.Exit
	cmdArgs         = func() []string { return os.Args[1:] }
)

// newServer 組裝 echo 實例、全域中介層與路由
func newServer(cfg *config.Config, log *zap.Logger, db database.DB, rdb cache.Cache, wp worker.Pool) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Debug = cfg.Env != "production"
	e.Validator = &CustomValidator{validator: validator.New()}
	e.HTTPErrorHandler = apperr.HTTPErrorHandler(log)

	e.Use(logger.RequestLogger(log))
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, middleware.TokenHeader},
	}))

	router.Setup(e, router.Deps{
		DB:      db,
		Cache:   rdb,
		Auth:    service.NewAuthenticator(db, cfg.JWTSecret, cfg.TokenTTL),
		Catalog: service.NewCatalog(db, rdb, wp, cfg.CatalogCacheTTL, log),
	})

	// Swagger UI
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	return e
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, err := newLogger(cfg.Env)
	if err != nil {
		return fmt.Errorf("建立 logger 失敗: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := runMigrationsFn(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("Migration 執行失敗: %w", err)
	}

	db, err := newPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("DB 連線失敗: %w", err)
	}
	defer db.Close()

	rdb, err := newRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return fmt.Errorf("Redis 連線失敗: %w", err)
	}
	defer rdb.Close()

	wp := newWorkerPool(cfg.WorkerCount, log)
	defer wp.Stop()

	if err := ensureAdmin(ctx, db, cfg.AdminEmail, cfg.AdminPassword, log); err != nil {
		return fmt.Errorf("建立管理員失敗: %w", err)
	}

	e := newServer(cfg, log, db, rdb, wp)

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", zap.String("addr", cfg.Addr()), zap.String("env", cfg.Env))
		errCh <- startServer(e, cfg.Addr())
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
		log.Info("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return e.Shutdown(sctx)
	}
}

// rollbackMigrations 退回所有 migration，供 -migrate-down 使用
func rollbackMigrations() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, err := newLogger(cfg.Env)
	if err != nil {
		return fmt.Errorf("建立 logger 失敗: %w", err)
	}
	defer func() { _ = log.Sync() }()

	if err := rollbackFn(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("Migration 退回失敗: %w", err)
	}
	log.Info("migrations rolled back")
	return nil
}
