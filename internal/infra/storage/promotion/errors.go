package promotion

import "errors"

var (
	// ErrPromotionNotFound is returned when no promotion matches
	ErrPromotionNotFound = errors.New("promotion.repository: promotion not found")

	// ErrUsageExhausted is returned when the usage limit leaves no headroom
	// for another application
	ErrUsageExhausted = errors.New("promotion.repository: usage limit exhausted")

	// ErrDuplicateCode is returned when a promotion code already exists
	ErrDuplicateCode = errors.New("promotion.repository: code already exists")

	// ErrBuildQuery is returned when the SQL query cannot be built
	ErrBuildQuery = errors.New("promotion.repository: failed to build query")

	// ErrExecQuery is returned when the SQL query fails to execute
	ErrExecQuery = errors.New("promotion.repository: failed to execute query")

	// ErrScanRow is returned when a result row cannot be scanned
	ErrScanRow = errors.New("promotion.repository: failed to scan row")
)
