// Package response writes the JSON envelope used by every HTTP handler.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shareit-rental/service-booking/internal/platform/apperror"
)

// Envelope is the common response body.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorBody  `json:"error,omitempty"`
	Meta    *PageMeta   `json:"meta,omitempty"`
}

// ErrorBody describes a failed request.
type ErrorBody struct {
	Code    apperror.Code `json:"code"`
	Message string        `json:"message"`
}

// PageMeta describes an offset-paginated list.
type PageMeta struct {
	From  int `json:"from"`
	Size  int `json:"size"`
	Page  int `json:"page"`
	Count int `json:"count"`
}

// Success writes 200 with data.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Envelope{Success: true, Data: data})
}

// Created writes 201 with data.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Envelope{Success: true, Data: data})
}

// NoContent writes 204.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Paginated writes 200 with a page of items and its window.
func Paginated(c *gin.Context, items interface{}, count, from, size int) {
	page := 0
	if size > 0 {
		page = from / size
	}
	c.JSON(http.StatusOK, Envelope{
		Success: true,
		Data:    items,
		Meta:    &PageMeta{From: from, Size: size, Page: page, Count: count},
	})
}

// BadRequest writes 400 for malformed input that never reached the service.
func BadRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, Envelope{
		Error: &ErrorBody{Code: apperror.CodeValidation, Message: message},
	})
}

// Error maps err to its HTTP status and writes it.
func Error(c *gin.Context, err error) {
	code := apperror.CodeOf(err)
	message := err.Error()
	if code == apperror.CodeInternal {
		message = "internal server error"
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(StatusFor(code), Envelope{
		Error: &ErrorBody{Code: code, Message: message},
	})
}

// StatusFor returns the HTTP status for an error code.
func StatusFor(code apperror.Code) int {
	switch code {
	case apperror.CodeNotFound:
		return http.StatusNotFound
	case apperror.CodeForbidden:
		return http.StatusForbidden
	case apperror.CodeValidation:
		return http.StatusBadRequest
	case apperror.CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
