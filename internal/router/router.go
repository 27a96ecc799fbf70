package router

import (
	"github.com/labstack/echo/v4"

	"online-shop/internal/cache"
	"online-shop/internal/database"
	"online-shop/internal/handler"
	"online-shop/internal/handler/auth"
	"online-shop/internal/handler/cart"
	"online-shop/internal/handler/products"
	"online-shop/internal/handler/users"
	"online-shop/internal/middleware"
)

// Authenticator 同時負責登入簽發與 token 驗證
type Authenticator interface {
	auth.Issuer
	middleware.TokenVerifier
}

// Deps 為路由需要的所有依賴
type Deps struct {
	DB      database.DB
	Cache   cache.Cache
	Auth    Authenticator
	Catalog products.Catalog
}

// Setup 註冊所有路由與中介層
// 中介層逐條掛上，避免 Group.Use 產生額外的 catch-all 路由
func Setup(e *echo.Echo, d Deps) {
	requireAuth := middleware.RequireAuth(d.Auth)
	admin := []echo.MiddlewareFunc{requireAuth, middleware.RequireAdmin}

	// 健康檢查
	e.GET("/ping", handler.PingHandler(d.DB, d.Cache))

	// 使用者登入 (Basic Auth)
	e.GET("/login", auth.LoginHandler(d.Auth))

	// 管理員專屬 Users
	e.GET("/users", users.ListUsersHandler(d.DB), admin...)
	e.POST("/users/add", users.CreateUserHandler(d.DB), admin...)
	e.GET("/users/:id", users.GetUserHandler(d.DB), admin...)
	e.PUT("/users/:id", users.PromoteUserHandler(d.DB), admin...)
	e.DELETE("/users/:id", users.DeleteUserHandler(d.DB), admin...)

	// 商品：讀取公開，寫入限管理員
	e.GET("/products", products.ListProductsHandler(d.Catalog))
	e.GET("/products/:id", products.GetProductHandler(d.Catalog))
	e.POST("/products/create", products.CreateProductHandler(d.Catalog), admin...)
	e.PUT("/products/:id", products.UpdateProductHandler(d.Catalog), admin...)
	e.DELETE("/products/:id", products.DeleteProductHandler(d.Catalog), admin...)

	// 目前使用者的購物車
	e.POST("/cart", cart.CreateCartHandler(d.DB), requireAuth)
	e.GET("/cart", cart.ListCartHandler(d.DB), requireAuth)
	e.DELETE("/cart", cart.DeleteCartHandler(d.DB), requireAuth)
	e.POST("/cart/add_product", cart.AddProductHandler(d.DB), requireAuth)
	e.GET("/cart/products", cart.ListCartProductsHandler(d.DB), requireAuth)
	e.DELETE("/cart/delete_product/:id_produs", cart.RemoveProductHandler(d.DB), requireAuth)
}
