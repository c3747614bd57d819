package notify

import (
	"net/http"

	"github.com/easilyhq/easily/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("NOTIFY")

// Error codes
var (
	CodeEnqueueFailed = ErrRegistry.Register("ENQUEUE_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to enqueue email")
	CodeSendFailed    = ErrRegistry.Register("SEND_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to send email")
)

// Helper functions
func ErrEnqueueFailed() *errx.Error {
	return ErrRegistry.New(CodeEnqueueFailed)
}

func ErrSendFailed() *errx.Error {
	return ErrRegistry.New(CodeSendFailed)
}
