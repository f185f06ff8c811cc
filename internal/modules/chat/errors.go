package chat

import "errors"

var (
	ErrValidation   = errors.New("invalid input")
	ErrForbidden    = errors.New("not a party to this request")
	ErrNotFound     = errors.New("request not found")
	ErrInvalidState = errors.New("chat is not open for this request")
)
