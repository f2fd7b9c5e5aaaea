package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Envelope is the JSON body for every response. Errors always carry a
// human-readable Detail; validation errors add field-scoped messages.
type Envelope[T any] struct {
	Status    int       `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"request_id,omitempty"`
	Success   bool      `json:"success"`
	Data      T         `json:"data,omitempty"`
	Meta      any       `json:"meta,omitempty"`
	Detail    string    `json:"detail,omitempty"`
	Fields    any       `json:"fields,omitempty"`
}

// OK writes a success envelope.
func OK[T any](c *gin.Context, status int, data T, meta any) {
	if status == 0 {
		status = http.StatusOK
	}
	c.JSON(status, Envelope[T]{
		Status:    status,
		Timestamp: time.Now().UTC(),
		RequestID: c.GetString("request_id"),
		Success:   true,
		Data:      data,
		Meta:      meta,
	})
}

// Fail writes an error envelope with a detail message and optional
// field-scoped messages.
func Fail(c *gin.Context, status int, detail string, fields any) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	c.JSON(status, Envelope[any]{
		Status:    status,
		Timestamp: time.Now().UTC(),
		RequestID: c.GetString("request_id"),
		Success:   false,
		Detail:    detail,
		Fields:    fields,
	})
}

// AbortFail writes an error envelope and stops the handler chain.
func AbortFail(c *gin.Context, status int, detail string, fields any) {
	Fail(c, status, detail, fields)
	c.Abort()
}
