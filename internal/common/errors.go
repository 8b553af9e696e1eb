// Package common defines shared sentinel errors used across the repository,
// service, and transport layers. Callers should use errors.Is to match
// these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEmail = errors.New("email already registered")

	// Pool-level errors. A failed acquire is always reported, never
	// downgraded to an unpooled connection.
	ErrConnectionUnavailable = errors.New("connection unavailable")

	// Service-level errors.
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrInternal           = errors.New("internal error")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrAccountNotFound    = errors.New("account not found")
	ErrTransactionFailure = errors.New("transaction failure")

	// Credential errors. An unrecognized scheme tag is reported to external
	// consumers as a plain authentication failure.
	ErrUnsupportedScheme = errors.New("unsupported credential scheme")
)
