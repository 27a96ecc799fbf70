package cart

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"online-shop/internal/api"
	"online-shop/internal/apperr"
	"online-shop/internal/database"
	"online-shop/internal/middleware"
	"online-shop/internal/model"
	"online-shop/internal/store"

	"github.com/labstack/echo/v4"
)

var (
	createCart       = store.CreateCart
	listCartsByUser  = store.ListCartsByUser
	getCartByUser    = store.GetCartByUser
	deleteCartByUser = store.DeleteCartByUser
	getProductByID   = store.GetProductByID
	addProductToCart = store.AddProductToCart
	listCartProducts = store.ListCartProducts
	removeCartLine   = store.RemoveCartLine
)

var errNoCart = apperr.ErrNotFound.WithMessage("User does not have a cart yet")

func currentUser(c echo.Context) (*model.User, error) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return nil, apperr.ErrUnauthenticated
	}
	return u, nil
}

// @Summary     Create my cart
// @Description 為目前使用者建立購物車；每位使用者僅能有一個
// @Tags        cart
// @Produce     json
// @Success     201 {object} api.CreateCartResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     409 {object} api.ErrorResponse "購物車已存在"
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /cart [post]
func CreateCartHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		u, err := currentUser(c)
		if err != nil {
			return err
		}
		cart, err := createCart(c.Request().Context(), db, u.ID)
		if errors.Is(err, store.ErrCartExists) {
			return apperr.ErrConflict.WithMessage("User already has a cart")
		}
		if err != nil {
			return apperr.ErrInternal.Wrap(err)
		}
		return c.JSON(http.StatusCreated, api.CreateCartResponse{
			Message: "Cart created",
			Cart:    api.NewCartResponse(*cart),
		})
	}
}

// @Summary     List my carts
// @Tags        cart
// @Produce     json
// @Success     200 {object} api.CartListResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /cart [get]
func ListCartHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		u, err := currentUser(c)
		if err != nil {
			return err
		}
		carts, err := listCartsByUser(c.Request().Context(), db, u.ID)
		if err != nil {
			return apperr.ErrInternal.Wrap(err)
		}
		out := make([]api.CartResponse, 0, len(carts))
		for _, ct := range carts {
			out = append(out, api.NewCartResponse(ct))
		}
		return c.JSON(http.StatusOK, api.CartListResponse{Carts: out})
	}
}

// @Summary     Delete my cart
// @Description 刪除購物車及其所有項目
// @Tags        cart
// @Produce     json
// @Success     200 {object} api.MessageResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /cart [delete]
func DeleteCartHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		u, err := currentUser(c)
		if err != nil {
			return err
		}
		err = deleteCartByUser(c.Request().Context(), db, u.ID)
		if errors.Is(err, store.ErrNotFound) {
			return errNoCart
		}
		if err != nil {
			return apperr.ErrInternal.Wrap(err)
		}
		return c.JSON(http.StatusOK, api.MessageResponse{Message: "Cart deleted!"})
	}
}

// @Summary     Add a product to my cart
// @Description 沒有購物車時自動建立；同一商品加入兩次會產生兩筆項目
// @Tags        cart
// @Accept      json
// @Produce     json
// @Param       body body     api.AddProductRequest true "商品 ID"
// @Success     201  {object} api.MessageResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Failure     404  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /cart/add_product [post]
func AddProductHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		u, err := currentUser(c)
		if err != nil {
			return err
		}
		var req api.AddProductRequest
		if err := c.Bind(&req); err != nil {
			return apperr.ErrValidation.WithMessage("invalid request body")
		}
		if err := c.Validate(&req); err != nil {
			return apperr.ErrValidation.WithMessage(err.Error())
		}

		ctx := c.Request().Context()
		notAvailable := apperr.ErrNotFound.WithMessage("Product is no longer available")
		p, err := getProductByID(ctx, db, *req.ProductID)
		if errors.Is(err, store.ErrNotFound) {
			return notAvailable
		}
		if err != nil {
			return apperr.ErrInternal.Wrap(err)
		}
		// 商品可能在查詢後被刪除，外鍵錯誤同樣視為不存在
		_, err = addProductToCart(ctx, db, u.ID, p.ID)
		if errors.Is(err, store.ErrNotFound) {
			return notAvailable
		}
		if err != nil {
			return apperr.ErrInternal.Wrap(err)
		}
		return c.JSON(http.StatusCreated, api.MessageResponse{
			Message: fmt.Sprintf("Product %s added succesfully", p.Name),
		})
	}
}

// @Summary     List products in my cart
// @Description 每筆購物車項目一筆，重複加入的商品會出現多次
// @Tags        cart
// @Produce     json
// @Success     200 {object} api.ProductListResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /cart/products [get]
func ListCartProductsHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		u, err := currentUser(c)
		if err != nil {
			return err
		}
		ps, err := listCartProducts(c.Request().Context(), db, u.ID)
		if err != nil {
			return apperr.ErrInternal.Wrap(err)
		}
		return c.JSON(http.StatusOK, api.NewProductList(ps))
	}
}

// @Summary     Remove a product from my cart
// @Description 只移除一筆符合的項目
// @Tags        cart
// @Produce     json
// @Param       id_produs path     int true "商品 ID"
// @Success     200       {object} api.MessageResponse
// @Failure     400       {object} api.ErrorResponse
// @Failure     401       {object} api.ErrorResponse
// @Failure     404       {object} api.ErrorResponse
// @Failure     500       {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /cart/delete_product/{id_produs} [delete]
func RemoveProductHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		u, err := currentUser(c)
		if err != nil {
			return err
		}
		productID, err := strconv.ParseInt(c.Param("id_produs"), 10, 64)
		if err != nil {
			return apperr.ErrValidation.WithMessage("invalid product ID")
		}

		ctx := c.Request().Context()
		cart, err := getCartByUser(ctx, db, u.ID)
		if errors.Is(err, store.ErrNotFound) {
			return errNoCart
		}
		if err != nil {
			return apperr.ErrInternal.Wrap(err)
		}
		err = removeCartLine(ctx, db, cart.ID, productID)
		if errors.Is(err, store.ErrNotFound) {
			return apperr.ErrNotFound.WithMessage("Product is not in the cart")
		}
		if err != nil {
			return apperr.ErrInternal.Wrap(err)
		}
		return c.JSON(http.StatusOK, api.MessageResponse{
			Message: fmt.Sprintf("Produs sters din cosul cu id %d", cart.ID),
		})
	}
}
