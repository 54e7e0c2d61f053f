package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/vitalrec/health-api/pkg/errors"
)

type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func NewSuccessResponse(data interface{}) *Response {
	return &Response{
		Status: "success",
		Data:   data,
	}
}

func NewErrorResponse(message string) *Response {
	return &Response{
		Status:  "error",
		Message: message,
	}
}

// RespondError maps an AppError to its HTTP status. Internal errors never
// expose the underlying cause to the client.
func RespondError(c *gin.Context, err error) {
	appErr, ok := apperrors.AsAppError(err)
	if !ok {
		c.JSON(http.StatusInternalServerError, NewErrorResponse("internal server error"))
		return
	}

	c.JSON(statusFor(appErr.Code), NewErrorResponse(appErr.Message))
}

func statusFor(code apperrors.ErrorCode) int {
	switch code {
	case apperrors.ErrNotFound:
		return http.StatusNotFound
	case apperrors.ErrBadRequest:
		return http.StatusBadRequest
	case apperrors.ErrUnauthorized:
		return http.StatusUnauthorized
	case apperrors.ErrForbidden:
		return http.StatusForbidden
	case apperrors.ErrConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
