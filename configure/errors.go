package configure

import "errors"

// ErrResourceNotFound is wrapped by readers when the requested resource does not exist.
// Load reports it as LoadNotFound instead of returning it.
var ErrResourceNotFound = errors.New("resource not found")

// ErrReaderNotConfigured is returned by Load when no reader is registered under the requested name.
var ErrReaderNotConfigured = errors.New("reader not configured")

// ErrInvalidPath is returned when a path is empty or contains an empty segment.
var ErrInvalidPath = errors.New("invalid path")

// ErrNilValue is returned when writing nil. Absence is expressed by deleting the key.
var ErrNilValue = errors.New("value must not be nil")

// ErrClosed is returned by mutating operations after Close.
var ErrClosed = errors.New("store closed")

// ErrEmptyReaderName is returned when registering a reader without a name.
var ErrEmptyReaderName = errors.New("reader name must not be empty")

// ErrNilReader is returned when registering a nil reader.
var ErrNilReader = errors.New("reader must not be nil")
