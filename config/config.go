package config

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/0xalexb/hjarta-configure/configure"
	"github.com/0xalexb/hjarta-configure/hash"
)

// ErrPathNotFound is returned by Provider when the store holds nothing at the path.
var ErrPathNotFound = errors.New("path not found")

// Parser defines an interface for parsing raw resource data into a configuration tree.
type Parser interface {
	Parse(data []byte) (map[string]any, error)
}

// DataFetcher defines an interface for reading the raw data of a named resource.
// Implementations wrap configure.ErrResourceNotFound when the resource does not exist.
type DataFetcher interface {
	Fetch(key string) ([]byte, error)
}

// Decoder defines an interface for converting a configuration value into a typed target.
type Decoder interface {
	Decode(value any, target any) error
}

// Validator defines an interface for validating configuration structures.
type Validator interface {
	Validate() error
}

// Defaulter defines an interface for setting default values in configuration structures.
type Defaulter interface {
	SetDefaults() (changed bool)
}

// NewReader returns a configure.Reader that fetches a resource and parses it.
//
//nolint:ireturn // the store consumes readers through the interface
func NewReader(fetcher DataFetcher, parser Parser) configure.Reader {
	return configure.ReaderFunc(func(key string) (map[string]any, error) {
		data, err := fetcher.Fetch(key)
		if err != nil {
			return nil, fmt.Errorf("reading data error: %w", err)
		}

		tree, err := parser.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("parsing error: %w", err)
		}

		return hash.NormalizeTree(tree), nil
	})
}

// Provider returns a function that reads path from the store, decodes it into
// target, sets defaults, and validates it. The empty path decodes the whole tree.
func Provider[T any](target *T, path string) func(Decoder, *configure.Store) (*T, error) {
	return func(decoder Decoder, store *configure.Store) (*T, error) {
		value, found := store.Read(path)
		if !found {
			return nil, fmt.Errorf("%w: %s", ErrPathNotFound, path)
		}

		err := decoder.Decode(value, target)
		if err != nil {
			return nil, fmt.Errorf("decoding error: %w", err)
		}

		targetDefaulter, isDefaulter := any(target).(Defaulter)
		if isDefaulter {
			changed := targetDefaulter.SetDefaults()
			if changed {
				slog.Info("defaults applied", slog.String("path", path))
			}
		}

		targetValidatable, isValidatable := any(target).(Validator)
		if isValidatable {
			err := targetValidatable.Validate()
			if err != nil {
				return nil, fmt.Errorf("validating error: %w", err)
			}
		}

		return target, nil
	}
}
