package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"online-shop/internal/cache"
	"online-shop/internal/database"
	"online-shop/internal/model"
	"online-shop/internal/store"
	"online-shop/internal/worker"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	CatalogVersionKey = "products:version"
	listKeyPrefix     = "products:v:"
	detailKeyPrefix   = "product:v:"

	invalidateTimeout = 500 * time.Millisecond
	fillTimeout       = 5 * time.Second
)

var (
	listProducts      = store.ListProducts
	getProductByID    = store.GetProductByID
	createProduct     = store.CreateProduct
	updateProductName = store.UpdateProductName
	deleteProduct     = store.DeleteProduct
)

// Catalog 在商品資料表前加一層 redis 快取。
// 快取 key 含版本號，任何寫入都 INCR 版本，舊 key 交給 TTL 過期。
// redis 失敗一律退回資料庫，不影響請求結果。
type Catalog struct {
	db    database.DB
	cache cache.Cache
	pool  worker.Pool
	ttl   time.Duration
	log   *zap.Logger
}

func NewCatalog(db database.DB, c cache.Cache, pool worker.Pool, ttl time.Duration, log *zap.Logger) *Catalog {
	return &Catalog{db: db, cache: c, pool: pool, ttl: ttl, log: log}
}

func listKey(ver int64) string {
	return listKeyPrefix + strconv.FormatInt(ver, 10) + ":all"
}

func detailKey(ver, id int64) string {
	return detailKeyPrefix + strconv.FormatInt(ver, 10) + ":detail:" + strconv.FormatInt(id, 10)
}

// version 取得目前快取版本，不存在時以 SETNX 初始化為 1。
// 初始化不能蓋掉並行寫入已 INCR 的版本，否則舊版本的快取會重新生效。
func (s *Catalog) version(ctx context.Context) (int64, error) {
	ver, err := s.cache.Get(ctx, CatalogVersionKey).Int64()
	if err == nil {
		return ver, nil
	}
	if !errors.Is(err, redis.Nil) {
		return 0, err
	}
	created, err := s.cache.SetNX(ctx, CatalogVersionKey, 1, 0).Result()
	if err != nil {
		return 0, err
	}
	if created {
		return 1, nil
	}
	return s.cache.Get(ctx, CatalogVersionKey).Int64()
}

// lookup 讀取快取；命中回傳 true
func (s *Catalog) lookup(ctx context.Context, key string, dst any) bool {
	b, err := s.cache.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.log.Warn("catalog cache read failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal(b, dst); err != nil {
		s.log.Warn("catalog cache entry corrupt", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// fill 非同步寫入快取
func (s *Catalog) fill(key string, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		s.log.Warn("catalog cache marshal failed", zap.String("key", key), zap.Error(err))
		return
	}
	s.pool.Submit("catalog fill "+key, func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, fillTimeout)
		defer cancel()
		return s.cache.Set(ctx, key, b, s.ttl).Err()
	})
}

// invalidate 先同步嘗試遞增版本，失敗時交給 worker pool 重試
func (s *Catalog) invalidate(ctx context.Context) {
	ictx, cancel := context.WithTimeout(ctx, invalidateTimeout)
	err := s.cache.Incr(ictx, CatalogVersionKey).Err()
	cancel()
	if err == nil {
		return
	}
	s.log.Warn("catalog invalidate failed, retrying in background", zap.Error(err))
	s.pool.Submit("catalog invalidate", func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, fillTimeout)
		defer cancel()
		return s.cache.Incr(ctx, CatalogVersionKey).Err()
	})
}

// List 回傳所有商品
func (s *Catalog) List(ctx context.Context) ([]model.Product, error) {
	ver, verErr := s.version(ctx)
	if verErr == nil {
		var cached []model.Product
		if s.lookup(ctx, listKey(ver), &cached) {
			return cached, nil
		}
	} else {
		s.log.Warn("catalog cache unavailable", zap.Error(verErr))
	}

	ps, err := listProducts(ctx, s.db)
	if err != nil {
		return nil, err
	}
	if verErr == nil {
		s.fill(listKey(ver), ps)
	}
	return ps, nil
}

// Get 依 id 取得商品，不存在時回傳 store.ErrNotFound
func (s *Catalog) Get(ctx context.Context, id int64) (*model.Product, error) {
	ver, verErr := s.version(ctx)
	if verErr == nil {
		var cached model.Product
		if s.lookup(ctx, detailKey(ver, id), &cached) {
			return &cached, nil
		}
	} else {
		s.log.Warn("catalog cache unavailable", zap.Error(verErr))
	}

	p, err := getProductByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if verErr == nil {
		s.fill(detailKey(ver, id), p)
	}
	return p, nil
}

func (s *Catalog) Create(ctx context.Context, p *model.Product) (*model.Product, error) {
	created, err := createProduct(ctx, s.db, p)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return created, nil
}

func (s *Catalog) Rename(ctx context.Context, id int64, name string) error {
	if err := updateProductName(ctx, s.db, id, name); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// Delete 先移除引用此商品的購物車項目，再刪除商品
func (s *Catalog) Delete(ctx context.Context, id int64) error {
	if err := deleteProduct(ctx, s.db, id); err != nil {
		return fmt.Errorf("Catalog.Delete: %w", err)
	}
	s.invalidate(ctx)
	return nil
}
