package utils

import "github.com/gin-gonic/gin"

// Error kinds carried in the failure envelope.
const (
	KindUnauthenticated  = "unauthenticated"
	KindForbidden        = "forbidden"
	KindNotFound         = "not_found"
	KindConflict         = "conflict"
	KindValidationFailed = "validation_failed"
	KindInternal         = "internal"
)

// ErrorResponse is the uniform failure envelope.
type ErrorResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	ErrorKind string `json:"errorKind"`
}

// Fail writes the failure envelope with the given status and kind and
// aborts the request.
func Fail(ctx *gin.Context, status int, kind, message string) {
	ctx.AbortWithStatusJSON(status, ErrorResponse{
		Success:   false,
		Message:   message,
		ErrorKind: kind,
	})
}
