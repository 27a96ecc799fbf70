package products

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"online-shop/internal/api"
	"online-shop/internal/apperr"
	"online-shop/internal/model"
	"online-shop/internal/store"

	"github.com/labstack/echo/v4"
)

// Catalog 商品讀寫介面，由 service.Catalog 實作
type Catalog interface {
	List(ctx context.Context) ([]model.Product, error)
	Get(ctx context.Context, id int64) (*model.Product, error)
	Create(ctx context.Context, p *model.Product) (*model.Product, error)
	Rename(ctx context.Context, id int64, name string) error
	Delete(ctx context.Context, id int64) error
}

var errProductNotFound = apperr.ErrNotFound.WithMessage("Product does not exist")

func productID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, apperr.ErrValidation.WithMessage("invalid product ID")
	}
	return id, nil
}

func mapErr(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return errProductNotFound
	}
	if errors.Is(err, store.ErrValueTooLong) {
		return apperr.ErrValidation.WithMessage("field value is too long")
	}
	return apperr.ErrInternal.Wrap(err)
}

// @Summary     List products
// @Tags        products
// @Produce     json
// @Success     200 {object} api.ProductListResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /products [get]
func ListProductsHandler(cat Catalog) echo.HandlerFunc {
	return func(c echo.Context) error {
		ps, err := cat.List(c.Request().Context())
		if err != nil {
			return apperr.ErrInternal.Wrap(err)
		}
		return c.JSON(http.StatusOK, api.NewProductList(ps))
	}
}

// @Summary     Get a product by ID
// @Tags        products
// @Produce     json
// @Param       id  path     int true "商品 ID"
// @Success     200 {object} api.ProductEnvelope
// @Failure     400 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /products/{id} [get]
func GetProductHandler(cat Catalog) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := productID(c)
		if err != nil {
			return err
		}
		p, err := cat.Get(c.Request().Context(), id)
		if err != nil {
			return mapErr(err)
		}
		return c.JSON(http.StatusOK, api.ProductEnvelope{Product: api.NewProductResponse(*p)})
	}
}

// @Summary     Create a product
// @Description 僅限管理員；data_lansare 由資料庫填入
// @Tags        products
// @Accept      json
// @Produce     json
// @Param       body body     api.CreateProductRequest true "商品資料"
// @Success     201  {object} api.CreateProductResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Failure     403  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /products/create [post]
func CreateProductHandler(cat Catalog) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.CreateProductRequest
		if err := c.Bind(&req); err != nil {
			return apperr.ErrValidation.WithMessage("invalid request body")
		}
		if err := c.Validate(&req); err != nil {
			return apperr.ErrValidation.WithMessage(err.Error())
		}

		p, err := cat.Create(c.Request().Context(), &model.Product{
			Name:        req.Name,
			Category:    req.Category,
			Price:       *req.Price,
			Description: req.Description,
			Image:       req.Image,
		})
		if err != nil {
			return mapErr(err)
		}
		return c.JSON(http.StatusCreated, api.CreateProductResponse{
			Message: "Product added succesfully!",
			Product: api.NewProductResponse(*p),
		})
	}
}

// @Summary     Rename a product
// @Tags        products
// @Accept      json
// @Produce     json
// @Param       id   path     int                      true "商品 ID"
// @Param       body body     api.UpdateProductRequest true "新名稱"
// @Success     200  {object} api.MessageResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Failure     403  {object} api.ErrorResponse
// @Failure     404  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /products/{id} [put]
func UpdateProductHandler(cat Catalog) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := productID(c)
		if err != nil {
			return err
		}
		var req api.UpdateProductRequest
		if err := c.Bind(&req); err != nil {
			return apperr.ErrValidation.WithMessage("invalid request body")
		}
		if err := c.Validate(&req); err != nil {
			return apperr.ErrValidation.WithMessage(err.Error())
		}
		if err := cat.Rename(c.Request().Context(), id, req.Name); err != nil {
			return mapErr(err)
		}
		return c.JSON(http.StatusOK, api.MessageResponse{Message: "Product has been updated"})
	}
}

// @Summary     Delete a product
// @Description 先移除所有購物車中的此商品，再刪除商品
// @Tags        products
// @Produce     json
// @Param       id  path     int true "商品 ID"
// @Success     200 {object} api.MessageResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /products/{id} [delete]
func DeleteProductHandler(cat Catalog) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := productID(c)
		if err != nil {
			return err
		}
		if err := cat.Delete(c.Request().Context(), id); err != nil {
			return mapErr(err)
		}
		return c.JSON(http.StatusOK, api.MessageResponse{Message: "Product deleted!"})
	}
}
