package cart

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"online-shop/internal/apperr"
	"online-shop/internal/database"
	"online-shop/internal/middleware"
	"online-shop/internal/model"
	"online-shop/internal/store"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type realValidator struct{ v *validator.Validate }

func (r realValidator) Validate(i interface{}) error { return r.v.Struct(i) }

var caller = &model.User{ID: "u1"}

func restore() {
	createCart = store.CreateCart
	listCartsByUser = store.ListCartsByUser
	getCartByUser = store.GetCartByUser
	deleteCartByUser = store.DeleteCartByUser
	getProductByID = store.GetProductByID
	addProductToCart = store.AddProductToCart
	listCartProducts = store.ListCartProducts
	removeCartLine = store.RemoveCartLine
}

func newCtx(method, path, body string, user *model.User) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = realValidator{v: validator.New()}
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if user != nil {
		c.Set(middleware.ContextUserKey, user)
	}
	return c, rec
}

func serve(h echo.HandlerFunc, c echo.Context) {
	if err := h(c); err != nil {
		apperr.HTTPErrorHandler(zap.NewNop())(err, c)
	}
}

func TestHandlersRequireUser(t *testing.T) {
	t.Cleanup(restore)
	for name, h := range map[string]echo.HandlerFunc{
		"create":   CreateCartHandler(nil),
		"list":     ListCartHandler(nil),
		"delete":   DeleteCartHandler(nil),
		"add":      AddProductHandler(nil),
		"products": ListCartProductsHandler(nil),
		"remove":   RemoveProductHandler(nil),
	} {
		ctx, rec := newCtx(http.MethodGet, "/cart", "", nil)
		serve(h, ctx)
		require.Equal(t, http.StatusUnauthorized, rec.Code, name)
	}
}

func TestCreateCartHandler(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		t.Cleanup(restore)
		createCart = func(_ context.Context, _ database.Querier, userID string) (*model.Cart, error) {
			return &model.Cart{ID: 7, UserID: userID, CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}, nil
		}
		ctx, rec := newCtx(http.MethodPost, "/cart", "", caller)
		serve(CreateCartHandler(nil), ctx)
		require.Equal(t, http.StatusCreated, rec.Code)
		require.JSONEq(t, `{"message":"Cart created","cart":{"id":7,"data_creare":"2024-01-01T00:00:00Z","id_utilizator":"u1"}}`, rec.Body.String())
	})

	t.Run("second cart conflicts", func(t *testing.T) {
		t.Cleanup(restore)
		createCart = func(context.Context, database.Querier, string) (*model.Cart, error) {
			return nil, store.ErrCartExists
		}
		ctx, rec := newCtx(http.MethodPost, "/cart", "", caller)
		serve(CreateCartHandler(nil), ctx)
		require.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestListCartHandler(t *testing.T) {
	t.Cleanup(restore)
	listCartsByUser = func(context.Context, database.Querier, string) ([]model.Cart, error) { return nil, nil }
	ctx, rec := newCtx(http.MethodGet, "/cart", "", caller)
	serve(ListCartHandler(nil), ctx)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"cart":[]}`, rec.Body.String())
}

func TestDeleteCartHandler(t *testing.T) {
	t.Run("no cart", func(t *testing.T) {
		t.Cleanup(restore)
		deleteCartByUser = func(context.Context, database.DB, string) error { return store.ErrNotFound }
		ctx, rec := newCtx(http.MethodDelete, "/cart", "", caller)
		serve(DeleteCartHandler(nil), ctx)
		require.Equal(t, http.StatusNotFound, rec.Code)
		require.Contains(t, rec.Body.String(), "does not have a cart")
	})

	t.Run("deleted", func(t *testing.T) {
		t.Cleanup(restore)
		var gotUser string
		deleteCartByUser = func(_ context.Context, _ database.DB, userID string) error { gotUser = userID; return nil }
		ctx, rec := newCtx(http.MethodDelete, "/cart", "", caller)
		serve(DeleteCartHandler(nil), ctx)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "u1", gotUser)
	})
}

func TestAddProductHandler(t *testing.T) {
	widget := &model.Product{ID: 5, Name: "Widget", Price: 10}

	t.Run("missing produs_id", func(t *testing.T) {
		t.Cleanup(restore)
		ctx, rec := newCtx(http.MethodPost, "/cart/add_product", `{}`, caller)
		serve(AddProductHandler(nil), ctx)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown product", func(t *testing.T) {
		t.Cleanup(restore)
		getProductByID = func(context.Context, database.Querier, int64) (*model.Product, error) {
			return nil, store.ErrNotFound
		}
		addProductToCart = func(context.Context, database.DB, string, int64) (*model.CartLine, error) {
			t.Fatal("should not add")
			return nil, nil
		}
		ctx, rec := newCtx(http.MethodPost, "/cart/add_product", `{"produs_id":99}`, caller)
		serve(AddProductHandler(nil), ctx)
		require.Equal(t, http.StatusNotFound, rec.Code)
		require.Contains(t, rec.Body.String(), "no longer available")
	})

	t.Run("product deleted concurrently", func(t *testing.T) {
		t.Cleanup(restore)
		getProductByID = func(context.Context, database.Querier, int64) (*model.Product, error) { return widget, nil }
		addProductToCart = func(context.Context, database.DB, string, int64) (*model.CartLine, error) {
			return nil, store.ErrNotFound
		}
		ctx, rec := newCtx(http.MethodPost, "/cart/add_product", `{"produs_id":5}`, caller)
		serve(AddProductHandler(nil), ctx)
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("added", func(t *testing.T) {
		t.Cleanup(restore)
		getProductByID = func(context.Context, database.Querier, int64) (*model.Product, error) { return widget, nil }
		var gotUser string
		var gotProduct int64
		addProductToCart = func(_ context.Context, _ database.DB, userID string, productID int64) (*model.CartLine, error) {
			gotUser, gotProduct = userID, productID
			return &model.CartLine{ID: 1, CartID: 1, ProductID: productID}, nil
		}
		ctx, rec := newCtx(http.MethodPost, "/cart/add_product", `{"produs_id":5}`, caller)
		serve(AddProductHandler(nil), ctx)
		require.Equal(t, http.StatusCreated, rec.Code)
		require.Contains(t, rec.Body.String(), "Product Widget added succesfully")
		require.Equal(t, "u1", gotUser)
		require.Equal(t, int64(5), gotProduct)
	})
}

func TestListCartProductsHandler(t *testing.T) {
	t.Run("empty cart", func(t *testing.T) {
		t.Cleanup(restore)
		listCartProducts = func(context.Context, database.Querier, string) ([]model.Product, error) { return nil, nil }
		ctx, rec := newCtx(http.MethodGet, "/cart/products", "", caller)
		serve(ListCartProductsHandler(nil), ctx)
		require.Equal(t, http.StatusOK, rec.Code)
		require.JSONEq(t, `{"produse":[]}`, rec.Body.String())
	})

	t.Run("duplicates listed twice", func(t *testing.T) {
		t.Cleanup(restore)
		listCartProducts = func(context.Context, database.Querier, string) ([]model.Product, error) {
			return []model.Product{{ID: 5, Name: "Widget"}, {ID: 5, Name: "Widget"}}, nil
		}
		ctx, rec := newCtx(http.MethodGet, "/cart/products", "", caller)
		serve(ListCartProductsHandler(nil), ctx)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, 2, strings.Count(rec.Body.String(), `"nume":"Widget"`))
	})

	t.Run("db error", func(t *testing.T) {
		t.Cleanup(restore)
		listCartProducts = func(context.Context, database.Querier, string) ([]model.Product, error) {
			return nil, errors.New("db")
		}
		ctx, rec := newCtx(http.MethodGet, "/cart/products", "", caller)
		serve(ListCartProductsHandler(nil), ctx)
		require.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func newRemoveCtx(id string) (echo.Context, *httptest.ResponseRecorder) {
	ctx, rec := newCtx(http.MethodDelete, "/cart/delete_product/"+id, "", caller)
	ctx.SetPath("/cart/delete_product/:id_produs")
	ctx.SetParamNames("id_produs")
	ctx.SetParamValues(id)
	return ctx, rec
}

func TestRemoveProductHandler(t *testing.T) {
	t.Run("bad id", func(t *testing.T) {
		t.Cleanup(restore)
		ctx, rec := newRemoveCtx("abc")
		serve(RemoveProductHandler(nil), ctx)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("no cart", func(t *testing.T) {
		t.Cleanup(restore)
		getCartByUser = func(context.Context, database.Querier, string) (*model.Cart, error) {
			return nil, store.ErrNotFound
		}
		ctx, rec := newRemoveCtx("5")
		serve(RemoveProductHandler(nil), ctx)
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("line absent", func(t *testing.T) {
		t.Cleanup(restore)
		getCartByUser = func(context.Context, database.Querier, string) (*model.Cart, error) {
			return &model.Cart{ID: 2}, nil
		}
		removeCartLine = func(context.Context, database.Querier, int64, int64) error { return store.ErrNotFound }
		ctx, rec := newRemoveCtx("5")
		serve(RemoveProductHandler(nil), ctx)
		require.Equal(t, http.StatusNotFound, rec.Code)
		require.Contains(t, rec.Body.String(), "not in the cart")
	})

	t.Run("removed", func(t *testing.T) {
		t.Cleanup(restore)
		getCartByUser = func(context.Context, database.Querier, string) (*model.Cart, error) {
			return &model.Cart{ID: 2}, nil
		}
		var gotCart, gotProduct int64
		removeCartLine = func(_ context.Context, _ database.Querier, cartID, productID int64) error {
			gotCart, gotProduct = cartID, productID
			return nil
		}
		ctx, rec := newRemoveCtx("5")
		serve(RemoveProductHandler(nil), ctx)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, int64(2), gotCart)
		require.Equal(t, int64(5), gotProduct)
		require.Contains(t, rec.Body.String(), "cosul cu id 2")
	})
}
