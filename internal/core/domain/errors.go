package domain

import "errors"

// Error kinds surfaced by ingestion, optimization and the supporting services.
// Call sites wrap them with context; callers match with errors.Is.
var (
	ErrConfiguration     = errors.New("configuration error")
	ErrConnectivity      = errors.New("connectivity error")
	ErrDataFormat        = errors.New("data format error")
	ErrValidation        = errors.New("validation error")
	ErrEmptyResult       = errors.New("no usable points")
	ErrNotFound          = errors.New("not found")
	ErrUnsupportedFormat = errors.New("unsupported format")
)
