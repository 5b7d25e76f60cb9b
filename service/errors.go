package service

import "errors"

// Sentinel errors the HTTP layer maps onto status codes.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrDuplicate    = errors.New("already exists")
)
