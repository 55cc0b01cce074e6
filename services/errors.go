package services

import "errors"

// Failure taxonomy shared by the capture flow and the record stores. Callers
// classify with errors.Is; none of these are retried automatically.
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrServiceUnavailable = errors.New("service unavailable")
	ErrNoConfidentResult  = errors.New("no confident result")
	ErrAlreadyInProgress  = errors.New("capture already in progress")
	ErrNotFound           = errors.New("not found")
	ErrStoreUnavailable   = errors.New("store unavailable")
)
