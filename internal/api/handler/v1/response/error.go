package response

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Err is the JSON error envelope returned by every handler.
type Err struct {
	StatusCode int    `json:"-"`
	ErrorMsg   string `json:"error"`

	// internal carries the wrapped cause for logging. Never serialized.
	internal error
}

func (e *Err) Error() string {
	return e.ErrorMsg
}

func NewErr(statusCode int, msg string, internal error) *Err {
	return &Err{
		StatusCode: statusCode,
		ErrorMsg:   msg,
		internal:   internal,
	}
}

func ErrBadRequest(err error) *Err {
	return NewErr(http.StatusBadRequest, err.Error(), err)
}

func ErrUnauthorized(msg string) *Err {
	return NewErr(http.StatusUnauthorized, msg, nil)
}

func ErrWrongCredentials(err error) *Err {
	return NewErr(http.StatusUnauthorized, "wrong credentials", err)
}

func ErrPermissionDenied(err error) *Err {
	return NewErr(http.StatusForbidden, "permission denied", err)
}

func ErrNotFound(resource, key string, value any) *Err {
	return NewErr(http.StatusNotFound, fmt.Sprintf("%v not found (%v=%v)", resource, key, value), nil)
}

func ErrConflict(err error) *Err {
	return NewErr(http.StatusConflict, err.Error(), err)
}

func ErrInternalServerError(err error) *Err {
	return NewErr(http.StatusInternalServerError, "internal server error", err)
}

// RenderErr logs server side errors and writes the envelope.
func RenderErr(ctx *gin.Context, err *Err) {
	if err.StatusCode >= http.StatusInternalServerError {
		zap.L().Error("request failed",
			zap.String("path", ctx.FullPath()),
			zap.Int("status", err.StatusCode),
			zap.Error(err.internal),
		)
	}

	ctx.AbortWithStatusJSON(err.StatusCode, err)
}
