// Package responses writes the JSON envelope shared by the preview API.
package responses

import (
	"github.com/gin-gonic/gin"

	"pgtypegen/internal/middlewares"
)

const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Envelope wraps every JSON body. RequestID echoes the X-Request-ID header so
// a failed render can be matched to its log line.
type Envelope struct {
	Status    string `json:"status"`
	RequestID string `json:"request_id,omitempty"`
	Data      any    `json:"data,omitempty"`
	Error     string `json:"error,omitempty"`
}

// OK writes a 200 envelope around data.
func OK(c *gin.Context, data any) {
	c.JSON(200, Envelope{
		Status:    StatusOK,
		RequestID: c.GetString(middlewares.RequestIDKey),
		Data:      data,
	})
}

// Error writes statusCode with err's message. The caller decides whether the
// message is safe to expose.
func Error(c *gin.Context, statusCode int, err error) {
	env := Envelope{
		Status:    StatusError,
		RequestID: c.GetString(middlewares.RequestIDKey),
	}
	if err != nil {
		env.Error = err.Error()
	}
	c.AbortWithStatusJSON(statusCode, env)
}
