package apperrors

import "errors"

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
	ErrParse      = errors.New("malformed backup document")
	ErrStorage    = errors.New("storage failure")
)
