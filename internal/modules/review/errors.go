package review

import "errors"

var (
	ErrValidation      = errors.New("invalid input")
	ErrForbidden       = errors.New("not a party to this request")
	ErrNotFound        = errors.New("not found")
	ErrInvalidState    = errors.New("request is not completed")
	ErrAlreadyReviewed = errors.New("review already submitted")
)
