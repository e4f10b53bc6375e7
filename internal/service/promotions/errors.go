package promotions

import "errors"

var (
	ErrAccessDenied         = errors.New("promotions: access denied")
	ErrEmptyCode            = errors.New("promotions: code must not be empty")
	ErrDuplicateCode        = errors.New("promotions: code already exists")
	ErrInvalidDiscountType  = errors.New("promotions: unknown discount type")
	ErrInvalidDiscountValue = errors.New("promotions: discount value out of range")
	ErrInvalidWindow        = errors.New("promotions: start date must not be after end date")
	ErrInvalidUsageLimit    = errors.New("promotions: usage limit must be positive")
	ErrInternal             = errors.New("promotions: internal error")
)
