package payment

import "errors"

var (
	// ErrPaymentNotFound is returned when the payment does not exist
	ErrPaymentNotFound = errors.New("payment.repository: payment not found")

	// ErrBuildQuery is returned when the SQL query cannot be built
	ErrBuildQuery = errors.New("payment.repository: failed to build query")

	// ErrExecQuery is returned when the SQL query fails to execute
	ErrExecQuery = errors.New("payment.repository: failed to execute query")

	// ErrScanRow is returned when a result row cannot be scanned
	ErrScanRow = errors.New("payment.repository: failed to scan row")
)
