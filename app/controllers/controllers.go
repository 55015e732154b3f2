// Package controllers translates validated HTTP requests into service
// calls and maps the outcomes to status codes and JSON bodies.
package controllers

import (
	"errors"
	"net/http"

	"github.com/freshmart/api/app/services"
	"github.com/freshmart/api/pkg/response"
)

// respondError maps a service error to its status code. Domain errors
// carry their public message; anything unexpected surfaces as a 500 with
// the raw error text.
func respondError(w http.ResponseWriter, err error) {
	var insufficient *services.InsufficientStockError

	switch {
	case errors.Is(err, services.ErrUserExists),
		errors.Is(err, services.ErrWeakPassword),
		errors.Is(err, services.ErrCategoryExists),
		errors.Is(err, services.ErrCategoryTooShort),
		errors.Is(err, services.ErrCategoryTooLong),
		errors.As(err, &insufficient):
		response.Message(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrCategoryNotFound),
		errors.Is(err, services.ErrProductNotFound):
		// Failed logins report 404 rather than 401; the contract
		// predates this implementation.
		response.Message(w, http.StatusNotFound, err.Error())
	default:
		response.Internal(w, err)
	}
}
