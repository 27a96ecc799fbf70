package service

import (
	"context"
	"strconv"
	"time"

	"online-shop/internal/cache"
	"online-shop/internal/store"
	"online-shop/internal/worker"

	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
)

func restoreGlobals() {
	bcryptGenerateFromPassword = bcrypt.GenerateFromPassword
	bcryptCompareHashAndPassword = bcrypt.CompareHashAndPassword
	getUserByEmail = store.GetUserByEmail
	getUserByID = store.GetUserByID
	createUser = store.CreateUser
	timeNow = time.Now
	parseWithClaims = jwt.ParseWithClaims
	listProducts = store.ListProducts
	getProductByID = store.GetProductByID
	createProduct = store.CreateProduct
	updateProductName = store.UpdateProductName
	deleteProduct = store.DeleteProduct
}

// inlinePool 在 Submit 當下直接執行工作
type inlinePool struct {
	names []string
}

func (p *inlinePool) Submit(name string, t worker.Task) bool {
	p.names = append(p.names, name)
	_ = t(context.Background())
	return true
}

func (p *inlinePool) Stop() {}

// newMemCache 以 map 模擬 redis 的 Get/Set/SetNX/Incr
func newMemCache() (*cache.FakeCache, map[string]string) {
	m := map[string]string{}
	return &cache.FakeCache{
		GetFn: func(_ context.Context, key string) *redis.StringCmd {
			if v, ok := m[key]; ok {
				return redis.NewStringResult(v, nil)
			}
			return redis.NewStringResult("", redis.Nil)
		},
		SetFn: func(_ context.Context, key string, val any, _ time.Duration) *redis.StatusCmd {
			switch v := val.(type) {
			case []byte:
				m[key] = string(v)
			case int:
				m[key] = strconv.Itoa(v)
			default:
				panic("unexpected value type")
			}
			return redis.NewStatusResult("OK", nil)
		},
		SetNXFn: func(_ context.Context, key string, val any, _ time.Duration) *redis.BoolCmd {
			if _, ok := m[key]; ok {
				return redis.NewBoolResult(false, nil)
			}
			m[key] = strconv.Itoa(val.(int))
			return redis.NewBoolResult(true, nil)
		},
		IncrFn: func(_ context.Context, key string) *redis.IntCmd {
			n, _ := strconv.ParseInt(m[key], 10, 64)
			n++
			m[key] = strconv.FormatInt(n, 10)
			return redis.NewIntResult(n, nil)
		},
	}, m
}
