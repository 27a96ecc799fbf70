package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config 為服務啟動所需的全部設定，於 main 建立一次後往下傳
type Config struct {
	Port            string
	DatabaseURL     string
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	JWTSecret       string
	TokenTTL        time.Duration
	WorkerCount     int
	Env             string
	AdminEmail      string
	AdminPassword   string
	CatalogCacheTTL time.Duration
}

var loadDotenv = godotenv.Load

// Load 先讀取 .env（檔案不存在時略過，已存在的環境變數優先），再從環境變數組出 Config
func Load(files ...string) (*Config, error) {
	if err := loadDotenv(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("載入 .env 失敗: %w", err)
	}

	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		Env:           getEnv("APP_ENV", "development"),
		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
	}

	for key, val := range map[string]string{
		"DATABASE_URL": cfg.DatabaseURL,
		"REDIS_ADDR":   cfg.RedisAddr,
		"JWT_SECRET":   cfg.JWTSecret,
	} {
		if val == "" {
			return nil, fmt.Errorf("環境變數 %s 未設定", key)
		}
	}

	var err error
	if cfg.RedisDB, err = getInt("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if cfg.WorkerCount, err = getInt("WORKER_COUNT", 1); err != nil {
		return nil, err
	}
	if cfg.WorkerCount <= 0 {
		return nil, fmt.Errorf("無效的 WORKER_COUNT: %d", cfg.WorkerCount)
	}
	if cfg.TokenTTL, err = getDuration("TOKEN_TTL", 15*time.Minute); err != nil {
		return nil, err
	}
	if cfg.CatalogCacheTTL, err = getDuration("CATALOG_CACHE_TTL", 5*time.Minute); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Addr 回傳 echo 監聽位址
func (c *Config) Addr() string {
	return ":" + c.Port
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("無效的 %s: %w", key, err)
	}
	return n, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("無效的 %s: %w", key, err)
	}
	return d, nil
}
