package users

import (
	"errors"
	"net/http"
	"strings"

	"online-shop/internal/api"
	"online-shop/internal/apperr"
	"online-shop/internal/database"
	"online-shop/internal/model"
	"online-shop/internal/service"
	"online-shop/internal/store"

	"github.com/labstack/echo/v4"
)

var (
	hashPassword = service.HashPassword
	listUsers    = store.ListUsers
	createUser   = store.CreateUser
	getUserByID  = store.GetUserByID
	setUserAdmin = store.SetUserAdmin
	deleteUser   = store.DeleteUser
)

var errUserNotFound = apperr.ErrNotFound.WithMessage("User does not exist")

// @Summary     List users
// @Description 回傳所有使用者（不含密碼雜湊）
// @Tags        users
// @Produce     json
// @Success     200 {object} api.UserListResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /users [get]
func ListUsersHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		users, err := listUsers(c.Request().Context(), db)
		if err != nil {
			return apperr.ErrInternal.Wrap(err)
		}
		out := make([]api.UserResponse, 0, len(users))
		for _, u := range users {
			out = append(out, api.NewUserResponse(u))
		}
		return c.JSON(http.StatusOK, api.UserListResponse{Users: out})
	}
}

// @Summary     Get a user by ID
// @Description 透過 ID 查詢並回傳使用者詳細資料
// @Tags        users
// @Produce     json
// @Param       id   path      string  true  "使用者 ID"
// @Success     200  {object}  api.UserEnvelope
// @Failure     401  {object}  api.ErrorResponse
// @Failure     403  {object}  api.ErrorResponse
// @Failure     404  {object}  api.ErrorResponse  "使用者不存在"
// @Failure     500  {object}  api.ErrorResponse  "伺服器錯誤"
// @Security    ApiKeyAuth
// @Router      /users/{id} [get]
func GetUserHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := getUserByID(c.Request().Context(), db, c.Param("id"))
		if errors.Is(err, store.ErrNotFound) {
			return errUserNotFound
		}
		if err != nil {
			return apperr.ErrInternal.Wrap(err)
		}
		return c.JSON(http.StatusOK, api.UserEnvelope{User: api.NewUserResponse(*user)})
	}
}

// @Summary     Create a new user
// @Description 建立新帳號 (Email 會自動轉小寫)，僅限管理員
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       body body     api.CreateUserRequest true "使用者資料"
// @Success     201  {object} api.CreateUserResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Failure     403  {object} api.ErrorResponse
// @Failure     409  {object} api.ErrorResponse "Email 已註冊"
// @Failure     500  {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /users/add [post]
func CreateUserHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.CreateUserRequest
		if err := c.Bind(&req); err != nil {
			return apperr.ErrValidation.WithMessage("invalid request body")
		}
		if err := c.Validate(&req); err != nil {
			return apperr.ErrValidation.WithMessage(err.Error())
		}

		hash, err := hashPassword(req.Password)
		if err != nil {
			return apperr.ErrInternal.Wrap(err)
		}

		user, err := createUser(c.Request().Context(), db, &model.User{
			FirstName:    req.FirstName,
			LastName:     req.LastName,
			Email:        strings.ToLower(req.Email),
			PasswordHash: hash,
			Address:      req.Address,
			Phone:        req.Phone,
		})
		if errors.Is(err, store.ErrDuplicateEmail) {
			return apperr.ErrDuplicateEmail
		}
		if errors.Is(err, store.ErrValueTooLong) {
			return apperr.ErrValidation.WithMessage("field value is too long")
		}
		if err != nil {
			return apperr.ErrInternal.Wrap(err)
		}

		return c.JSON(http.StatusCreated, api.CreateUserResponse{
			Message: "Utilizator adaugat cu succes!",
			ID:      user.ID,
		})
	}
}

// @Summary     Promote a user to admin
// @Description 將使用者設為管理員（不可逆）
// @Tags        users
// @Produce     json
// @Param       id  path     string true "使用者 ID"
// @Success     200 {object} api.MessageResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /users/{id} [put]
func PromoteUserHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		err := setUserAdmin(c.Request().Context(), db, c.Param("id"), true)
		if errors.Is(err, store.ErrNotFound) {
			return errUserNotFound
		}
		if err != nil {
			return apperr.ErrInternal.Wrap(err)
		}
		return c.JSON(http.StatusOK, api.MessageResponse{Message: "The user has been promoted!"})
	}
}

// @Summary     Delete a user by ID
// @Description 刪除使用者，連同其購物車與購物車項目
// @Tags        users
// @Produce     json
// @Param       id   path      string  true  "使用者 ID"
// @Success     200  {object}  api.MessageResponse
// @Failure     401  {object}  api.ErrorResponse
// @Failure     403  {object}  api.ErrorResponse
// @Failure     404  {object}  api.ErrorResponse
// @Failure     500  {object}  api.ErrorResponse  "伺服器錯誤"
// @Security    ApiKeyAuth
// @Router      /users/{id} [delete]
func DeleteUserHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		err := deleteUser(c.Request().Context(), db, c.Param("id"))
		if errors.Is(err, store.ErrNotFound) {
			return errUserNotFound
		}
		if err != nil {
			return apperr.ErrInternal.Wrap(err)
		}
		return c.JSON(http.StatusOK, api.MessageResponse{Message: "This user has been deleted!"})
	}
}
