package profile

import "errors"

var (
	ErrValidation = errors.New("invalid input")
	ErrForbidden  = errors.New("not allowed")
	ErrNotFound   = errors.New("profile not found")
)
