package model

import "errors"

// Sentinel errors compared with errors.Is throughout the service. The HTTP
// layer maps them onto status codes: invalid input and missing fields to 400,
// lookup misses to 404, storage write failures to 500.
var (
	// ErrNotFound covers both a missing note record and a missing blob entry.
	ErrNotFound = errors.New("not found")
	// ErrInvalidID marks a malformed identifier, rejected before any store
	// lookup happens.
	ErrInvalidID = errors.New("invalid identifier")
	// ErrMissingFile is returned when a file-bearing note arrives without a
	// payload (or with an empty one).
	ErrMissingFile = errors.New("no file uploaded")
	// ErrInvalidInput marks a missing or malformed required field.
	ErrInvalidInput = errors.New("invalid input")
	// ErrStorageWrite wraps underlying store rejections; a create that hits
	// it persists nothing visible to the caller.
	ErrStorageWrite = errors.New("storage write failed")

	ErrUserExists     = errors.New("username already exists")
	ErrUnknownUser    = errors.New("user not found")
	ErrBadCredentials = errors.New("invalid password")
)
