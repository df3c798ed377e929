package common

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the wire shape for every error. The UI surfaces the
// message verbatim, so messages must stay user-safe.
type ErrorResponse struct {
	Message string `json:"message"`
}

// AuthenticationError maps to 401.
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string { return e.Message }

// ValidationError maps to 400.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// ConflictError maps to 409: duplicate unique keys, rooms that are no
// longer available, occupied rooms at delete time.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// NotFoundError maps to 404.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string { return fmt.Sprintf("%s not found", e.Resource) }

// DomainError maps to 409: a valid request that the current state of the
// data refuses, such as unassigning a room with no occupant.
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string { return e.Message }

// SendError maps a service error to its status code and a user-safe JSON
// body. Unclassified errors are logged in full and surfaced as a generic 500.
func SendError(c echo.Context, err error) error {
	var (
		authErr     *AuthenticationError
		validErr    *ValidationError
		conflictErr *ConflictError
		notFoundErr *NotFoundError
		domainErr   *DomainError
	)
	switch {
	case errors.As(err, &authErr):
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Message: authErr.Message})
	case errors.As(err, &validErr):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: validErr.Message})
	case errors.As(err, &conflictErr):
		return c.JSON(http.StatusConflict, ErrorResponse{Message: conflictErr.Message})
	case errors.As(err, &notFoundErr):
		return c.JSON(http.StatusNotFound, ErrorResponse{Message: notFoundErr.Error()})
	case errors.As(err, &domainErr):
		return c.JSON(http.StatusConflict, ErrorResponse{Message: domainErr.Message})
	}

	log.Printf("%s %s: %v", c.Request().Method, c.Request().URL.Path, err)
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "Internal server error"})
}

// SendValidationError sends a 400 without going through a service error.
func SendValidationError(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Message: message})
}

// SendUnauthorizedError sends a 401 for requests with no valid caller identity.
func SendUnauthorizedError(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Authentication required"})
}
