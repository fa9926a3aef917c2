package billing

import "errors"

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("document not found")
)
