package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rs/zerolog/log"

	"bookstore-catalog/pkg/database"
)

type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *Error      `json:"error,omitempty"`
	Meta    *Meta       `json:"meta,omitempty"`
}

type Error struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

type Meta struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Count  int `json:"count"`
}

// Success responses
func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Data:    data,
	})
}

func SuccessWithMeta(c *gin.Context, statusCode int, data interface{}, meta *Meta) {
	c.JSON(statusCode, Response{
		Success: true,
		Data:    data,
		Meta:    meta,
	})
}

// Error responses
func ErrorResponse(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, Response{
		Success: false,
		Error: &Error{
			Code:    code,
			Message: message,
		},
	})
}

func ErrorWithDetails(c *gin.Context, statusCode int, code, message string, details interface{}) {
	c.JSON(statusCode, Response{
		Success: false,
		Error: &Error{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// Common error responses
func BadRequest(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusBadRequest, "BAD_REQUEST", message)
}

func NotFound(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusNotFound, "NOT_FOUND", message)
}

func InternalServerError(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", message)
}

// ValidationFailed trả về từng field lỗi trong details
func ValidationFailed(c *gin.Context, err error) {
	var fields validation.Errors
	if errors.As(err, &fields) {
		ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Validation failed", fields)
		return
	}
	ErrorResponse(c, http.StatusBadRequest, "VALIDATION_FAILED", err.Error())
}

// FromError map các lỗi dùng chung sang HTTP status.
// Lỗi riêng của domain (not found, invalid reference) do handler xử lý trước.
func FromError(c *gin.Context, err error) {
	var fields validation.Errors
	switch {
	case errors.As(err, &fields):
		ValidationFailed(c, err)
	case errors.Is(err, database.ErrConstraintViolation):
		// message của storage được trả nguyên văn
		ErrorResponse(c, http.StatusBadRequest, "CONSTRAINT_VIOLATION", err.Error())
	default:
		log.Error().Err(err).Str("request_id", c.GetString("request_id")).Msg("Unhandled error")
		InternalServerError(c, "Internal server error")
	}
}
