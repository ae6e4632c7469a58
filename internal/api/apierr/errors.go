package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/borga-dev/borga/internal/catalog"
	"github.com/borga-dev/borga/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest          = "INVALID_REQUEST"
	CodeUnauthorized            = "UNAUTHORIZED"
	CodeUserNotFound            = "USER_NOT_FOUND"
	CodeUsernameExists          = "USERNAME_EXISTS"
	CodeInvalidUsername         = "INVALID_USERNAME"
	CodeGroupNotFound           = "GROUP_NOT_FOUND"
	CodeInvalidGroupName        = "INVALID_GROUP_NAME"
	CodeInvalidGroupDescription = "INVALID_GROUP_DESCRIPTION"
	CodeNotGroupOwner           = "NOT_GROUP_OWNER"
	CodeGroupAlreadyLinked      = "GROUP_ALREADY_LINKED"
	CodeGroupNotLinked          = "GROUP_NOT_LINKED"
	CodeGameAlreadyInGroup      = "GAME_ALREADY_IN_GROUP"
	CodeGameNotInGroup          = "GAME_NOT_IN_GROUP"
	CodeGameNotFound            = "GAME_NOT_FOUND"
	CodeInternalError           = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for pre-built HTTP errors
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrUserNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeUserNotFound, "User not found"}}
	case errors.Is(err, model.ErrUserExists):
		return &httpError{http.StatusConflict, APIError{CodeUsernameExists, "Username already taken"}}
	case errors.Is(err, model.ErrInvalidUsername):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidUsername, "Username must not be empty"}}
	case errors.Is(err, model.ErrUnknownToken):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Invalid or unknown token"}}
	case errors.Is(err, model.ErrGroupNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeGroupNotFound, "Group not found"}}
	case errors.Is(err, model.ErrInvalidGroupName):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidGroupName, "Group name must not be empty"}}
	case errors.Is(err, model.ErrInvalidGroupDescription):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidGroupDescription, "Group description must not be empty"}}
	case errors.Is(err, model.ErrNotGroupOwner):
		return &httpError{http.StatusForbidden, APIError{CodeNotGroupOwner, "Only the group owner can do this"}}
	case errors.Is(err, model.ErrGroupAlreadyLinked):
		return &httpError{http.StatusConflict, APIError{CodeGroupAlreadyLinked, "Group already associated with user"}}
	case errors.Is(err, model.ErrGroupNotLinked):
		return &httpError{http.StatusNotFound, APIError{CodeGroupNotLinked, "Group not associated with user"}}
	case errors.Is(err, model.ErrGameAlreadyInGroup):
		return &httpError{http.StatusConflict, APIError{CodeGameAlreadyInGroup, "Game already in group"}}
	case errors.Is(err, model.ErrGameNotInGroup):
		return &httpError{http.StatusNotFound, APIError{CodeGameNotInGroup, "Game not in group"}}

	// Map catalog errors
	case errors.Is(err, catalog.ErrGameNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeGameNotFound, "Game not found in catalog"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
