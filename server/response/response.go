package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// JSON writes the uniform response envelope used by every handler.
func JSON(c *gin.Context, message string, status int, data interface{}, err error) {
	responseData := gin.H{
		"message":   message,
		"data":      data,
		"status":    http.StatusText(status),
		"timestamp": time.Now().Format(time.RFC3339),
	}
	if err != nil {
		responseData["errors"] = err.Error()
	}

	c.JSON(status, responseData)
}
