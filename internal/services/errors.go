package services

import "errors"

// Business failure taxonomy. Handlers match these with errors.Is and map
// them to HTTP statuses: token errors and bad credentials to 401, forbidden
// to 403, validation to 422, duplicate email to 400. Repository not-found
// errors (repositories.ErrNotFound) map to 404.
var (
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrForbidden          = errors.New("not enough permissions")
	ErrValidation         = errors.New("validation failed")
	ErrEmailTaken         = errors.New("email already registered")
)
