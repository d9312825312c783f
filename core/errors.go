package core

import "errors"

// Authentication Related Errors
var (
	// User errors
	ErrUserExists         = errors.New("user already exists")       // 409 Conflict
	ErrUserNotFound       = errors.New("user not found")            // 404 Not Found
	ErrInvalidCredentials = errors.New("invalid email or password") // 401 Unauthorized
	ErrAccountNotFound    = errors.New("account not found")
)

// Session store errors
var (
	ErrOperationInFlight = errors.New("another session operation is in flight") // 409
	ErrSessionSuperseded = errors.New("session changed while operation was in flight")
	ErrStoreClosed       = errors.New("session store is closed")
	ErrValidatorClosed   = errors.New("credential validator is closed")
)

// Persisted record errors
var (
	ErrRecordNotFound  = errors.New("persisted record not found")
	ErrMalformedRecord = errors.New("persisted record is malformed")
)

// Validation errors (client input)
var (
	ErrEmailRequired    = errors.New("email is required")    // 400
	ErrPasswordRequired = errors.New("password is required") // 400
	ErrInvalidEmail     = errors.New("invalid email format") // 400
)

// Config errors
var (
	ErrStorageRequired     = errors.New("record storage is required")     // 500
	ErrCredentialsRequired = errors.New("credential storage is required") // 500
)
