package reservation

import "errors"

var (
	ErrValidation              = errors.New("validation error")
	ErrEmptySelection          = errors.New("nothing to reserve")
	ErrAssetNotFound           = errors.New("asset not found")
	ErrAssetNotReservable      = errors.New("asset not reservable")
	ErrKitNotFound             = errors.New("kit not found")
	ErrNotFound                = errors.New("reservation not found")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
)
