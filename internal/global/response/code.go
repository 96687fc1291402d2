package response

import "net/http"

const unexpected = "An unexpected error occurred. Please try again."

var (
	ErrInvalidRequest     = newError(40000, http.StatusBadRequest, "Invalid request", "The request body could not be parsed")
	ErrValidation         = newError(40001, http.StatusBadRequest, "Please fix the following errors:")
	ErrAlreadyExists      = newError(40002, http.StatusBadRequest, "Registration failed")
	ErrInvalidCredentials = newError(40003, http.StatusBadRequest, "Login failed", "Invalid email or password")
	ErrIncorrectPassword  = newError(40004, http.StatusBadRequest, "Update failed", "Current password is incorrect")
	ErrAdminExists        = newError(40005, http.StatusBadRequest, "Setup failed", "Admin already exists. Only one admin is allowed.")
	ErrTokenInvalid       = newError(40100, http.StatusUnauthorized, "Unauthorized", "Please log in to continue")
	ErrForbidden          = newError(40300, http.StatusForbidden, "Forbidden", "You do not have permission to access this resource")
	ErrNotFound           = newError(40400, http.StatusNotFound, "Not found")
	ErrRouteNotFound      = newError(40401, http.StatusNotFound, "Route not found", "The requested endpoint does not exist")
	ErrTooManyAttempts    = newError(42900, http.StatusTooManyRequests, "Login failed", "Too many failed login attempts. Please try again later.")
	ErrServerInternal     = newError(50000, http.StatusInternalServerError, "Server error", unexpected)
	ErrDatabase           = newError(50001, http.StatusInternalServerError, "Server error", unexpected)
)
