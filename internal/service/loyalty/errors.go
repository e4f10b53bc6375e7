package loyalty

import "errors"

var (
	ErrInvalidPoints      = errors.New("loyalty: points must be positive")
	ErrInsufficientPoints = errors.New("loyalty: insufficient points balance")
	ErrUserNotFound       = errors.New("loyalty: user not found")
	ErrInternal           = errors.New("loyalty: internal error")
)
