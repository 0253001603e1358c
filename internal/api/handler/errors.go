package handler

import (
	"net/http"

	"github.com/maddken/jokerparty/internal/api/apierr"
)

// Re-export from apierr for convenience
type APIError = apierr.APIError
type ErrorResponse = apierr.ErrorResponse

// Re-export error codes
const (
	CodeInvalidRequest      = apierr.CodeInvalidRequest
	CodeGameNotFound        = apierr.CodeGameNotFound
	CodePlayerNotFound      = apierr.CodePlayerNotFound
	CodeNotInGame           = apierr.CodeNotInGame
	CodeGameFull            = apierr.CodeGameFull
	CodeGameAlreadyStarted  = apierr.CodeGameAlreadyStarted
	CodeGameNotStarted      = apierr.CodeGameNotStarted
	CodeInsufficientPlayers = apierr.CodeInsufficientPlayers
	CodeInvalidName         = apierr.CodeInvalidName
	CodeInvalidJokerTarget  = apierr.CodeInvalidJokerTarget
	CodeWrongPassword       = apierr.CodeWrongPassword
	CodeInternalError       = apierr.CodeInternalError
)

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	apierr.WriteError(w, err)
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return apierr.NewInvalidRequestError(message)
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return apierr.NewInternalError()
}
