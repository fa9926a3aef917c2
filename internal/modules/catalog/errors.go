package catalog

import "errors"

var (
	ErrValidation       = errors.New("validation error")
	ErrNotFound         = errors.New("not found")
	ErrAssetNotFound    = errors.New("asset not found")
	ErrDuplicateKitItem = errors.New("asset appears more than once in kit")
)
