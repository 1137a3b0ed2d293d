package configure

import (
	"fmt"

	"github.com/0xalexb/hjarta-configure/hash"
)

// DefaultReader is the reader name used by Load when none is given.
const DefaultReader = "default"

// Reader turns a symbolic resource key into a configuration tree.
// Implementations wrap ErrResourceNotFound when the resource does not exist.
type Reader interface {
	ReadResource(key string) (map[string]any, error)
}

// ReaderFunc adapts a function to the Reader interface.
type ReaderFunc func(key string) (map[string]any, error)

// ReadResource calls f(key).
func (f ReaderFunc) ReadResource(key string) (map[string]any, error) {
	return f(key)
}

// MapReader serves resources from memory. Each key maps to a whole tree.
type MapReader map[string]map[string]any

// ReadResource returns a copy of the tree stored under key.
func (m MapReader) ReadResource(key string) (map[string]any, error) {
	tree, exists := m[key]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrResourceNotFound, key)
	}

	return hash.NormalizeTree(tree), nil
}
