package submit

import "errors"

var (
	// ErrInvalidItemData marks item data that cannot be submitted:
	// empty, mixed forms, inconsistent keys, or inconsistent lengths.
	ErrInvalidItemData = errors.New("invalid item data")

	// ErrUninitializedTransaction marks a submit attempted outside an
	// open transaction window.
	ErrUninitializedTransaction = errors.New("transaction not open")
)
