package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/inkwell-app/inkwell-api/pkg/apperr"
)

// APIResponse is the envelope every endpoint returns.
// Success: {success:true, statusCode, message, data}
// Error:   {success:false, statusCode, message, data:null, errors}
type APIResponse[T any] struct {
	Success    bool   `json:"success"`
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Data       T      `json:"data"`
	Errors     any    `json:"errors,omitempty"`
	RequestID  string `json:"requestId,omitempty"`
}

func Success[T any](c *gin.Context, status int, data T, message string) {
	if status == 0 {
		status = http.StatusOK
	}
	c.JSON(status, APIResponse[T]{
		Success:    true,
		StatusCode: status,
		Message:    message,
		Data:       data,
		RequestID:  c.GetString("request_id"),
	})
}

func Error(c *gin.Context, status int, message string, errs any) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	c.JSON(status, APIResponse[any]{
		Success:    false,
		StatusCode: status,
		Message:    message,
		Data:       nil,
		Errors:     errs,
		RequestID:  c.GetString("request_id"),
	})
}

// AbortError is Error followed by c.Abort, for middleware.
func AbortError(c *gin.Context, status int, message string, errs any) {
	Error(c, status, message, errs)
	c.Abort()
}

// WriteError maps a classified service error onto the error envelope.
// This is the single place error kinds become HTTP statuses.
func WriteError(c *gin.Context, err error) {
	WriteErrorDebug(c, err, false)
}

// WriteErrorDebug includes the underlying cause when debug is enabled.
func WriteErrorDebug(c *gin.Context, err error, debug bool) {
	var errs any
	if debug && err != nil {
		errs = err.Error()
	}
	Error(c, apperr.StatusOf(err), apperr.MessageOf(err), errs)
}
