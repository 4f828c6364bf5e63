package export

import "errors"

var (
	// ErrInvalidImport indicates a backup that does not match the task schema.
	ErrInvalidImport = errors.New("invalid import")

	// ErrUnsupportedFile indicates a file extension with no known encoding.
	ErrUnsupportedFile = errors.New("unsupported file type")
)
