package domain

import "errors"

// Domain errors represent failures that callers are expected to branch on.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Authentication Errors.

	// ErrAuthRequired indicates no usable credentials are available.
	ErrAuthRequired = errors.New("authentication required")

	// ErrUnsupportedCredentials indicates a credentials file of an unknown kind.
	ErrUnsupportedCredentials = errors.New("unsupported credentials file")

	// ErrAuthorizationInProgress indicates another authorization is already waiting for a callback.
	ErrAuthorizationInProgress = errors.New("authorization already in progress")

	// ErrAuthorizationTimeout indicates the user did not complete the browser flow in time.
	ErrAuthorizationTimeout = errors.New("timed out waiting for authorization callback")

	// ErrStateMismatch indicates the callback state did not match the request.
	ErrStateMismatch = errors.New("oauth state mismatch")

	// ErrMissingCode indicates the callback carried no authorization code.
	ErrMissingCode = errors.New("no authorization code received")

	// Catalog Errors.

	// ErrUnknownSample indicates the sample name is not registered.
	ErrUnknownSample = errors.New("unknown sample")

	// ErrMissingArgument indicates a required sample argument was not supplied.
	ErrMissingArgument = errors.New("missing required argument")
)
