package memory

import "errors"

var (
	// ErrPathRequired indicates a store was requested without a log file
	// location.
	ErrPathRequired = errors.New("memory file path is required")
)
