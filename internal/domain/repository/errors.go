package repository

import "errors"

// Storage-level outcomes every implementation maps onto. Flows translate
// these into their own failure taxonomy.
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)
