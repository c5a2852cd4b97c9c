package errors

import (
	"net/http"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-gonic/gin"
)

// Error is an API error carrying the HTTP status it should be rendered with.
type Error struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

var (
	ErrBadRequest          = New("bad request", http.StatusBadRequest)
	ErrUnauthorized        = New("unauthorized", http.StatusUnauthorized)
	ErrNotFound            = New("not found", http.StatusNotFound)
	ErrInternalServerError = New("internal server error", http.StatusInternalServerError)
)

func New(message string, status int) *Error {
	return &Error{
		Message: message,
		Status:  status,
	}
}

func (e *Error) Error() string {
	return e.Message
}

// ErrorHandler is handed to the rate limiter middleware.
func ErrorHandler(c *gin.Context, info ratelimit.Info) {
	c.JSON(http.StatusTooManyRequests, gin.H{
		"error": "too many requests, try again later",
	})
	c.Abort()
}
