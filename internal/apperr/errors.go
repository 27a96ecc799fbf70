package apperr

import (
	"fmt"
	"net/http"
)

// BasicChallenge 是 /login 失敗時回傳的 WWW-Authenticate 值
const BasicChallenge = `Basic realm="Login required!"`

// Error represents an application error
type Error struct {
	Code    int
	Message string
	Err     error
	// Challenge 非空時寫入 WWW-Authenticate header
	Challenge string

	kind *Error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is 以來源 sentinel 比對，因此 WithMessage/Wrap 的副本仍等於原 sentinel
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.root() == t.root()
}

func (e *Error) root() *Error {
	if e.kind != nil {
		return e.kind
	}
	return e
}

// WithMessage 回傳同類型但訊息不同的副本
func (e *Error) WithMessage(msg string) *Error {
	cp := *e
	cp.Message = msg
	cp.kind = e.root()
	return &cp
}

// Wrap 回傳帶有底層錯誤的副本
func (e *Error) Wrap(err error) *Error {
	cp := *e
	cp.Err = err
	cp.kind = e.root()
	return &cp
}

// New creates a new Error
func New(code int, message string) *Error {
	return &Error{Code: code, Message: message}
}

var (
	ErrUnauthenticated    = New(http.StatusUnauthorized, "Token is invalid or you must log in!")
	ErrInvalidCredentials = &Error{Code: http.StatusUnauthorized, Message: "Could not verify", Challenge: BasicChallenge}
	ErrForbidden          = New(http.StatusForbidden, "Must be an admin to perform that function")
	ErrNotFound           = New(http.StatusNotFound, "Not found")
	ErrDuplicateEmail     = New(http.StatusConflict, "Email already registered")
	ErrConflict           = New(http.StatusConflict, "Conflict")
	ErrValidation         = New(http.StatusBadRequest, "Validation error")
	ErrInternal           = New(http.StatusInternalServerError, "Internal server error")
)
