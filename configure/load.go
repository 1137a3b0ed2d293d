package configure

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/0xalexb/hjarta-configure/hash"
)

// LoadStatus is the outcome of Load.
type LoadStatus uint8

const (
	// LoadLoaded means the resource was read and written to the store.
	LoadLoaded LoadStatus = iota + 1
	// LoadNotFound means the reader has no such resource. The store is unchanged.
	LoadNotFound
)

// String returns a human-readable name for the status.
func (s LoadStatus) String() string {
	switch s {
	case LoadLoaded:
		return "loaded"
	case LoadNotFound:
		return "not found"
	default:
		return "unknown"
	}
}

// LoadResult describes a completed Load.
type LoadResult struct {
	Status LoadStatus
	// Tree is a copy of what was written, after merging. Nil for LoadNotFound.
	Tree map[string]any
}

// LoadOption defines a function type for configuring a single Load call.
type LoadOption func(*loadOptions)

type loadOptions struct {
	reader string
	merge  bool
}

// FromReader selects the registered reader used to read the resource.
func FromReader(name string) LoadOption {
	return func(opts *loadOptions) {
		opts.reader = name
	}
}

// WithoutMerge makes loaded top-level keys replace the stored values instead of
// being deep-merged into them.
func WithoutMerge() LoadOption {
	return func(opts *loadOptions) {
		opts.merge = false
	}
}

// Load reads the resource key with the selected reader (DefaultReader unless
// FromReader is given) and writes it to the store.
//
// With merging enabled, every top-level key whose loaded and stored values are
// both mappings is deep-merged, the loaded side taking precedence. Every other
// key is written as loaded. The merge and the write happen atomically with
// respect to readers. A missing resource yields LoadNotFound and a nil error.
func (s *Store) Load(key string, opts ...LoadOption) (LoadResult, error) {
	options := loadOptions{reader: DefaultReader, merge: true}

	for _, apply := range opts {
		apply(&options)
	}

	reader, err := s.reader(options.reader)
	if err != nil {
		return LoadResult{}, err
	}

	loaded, err := reader.ReadResource(key)
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			s.log().Debug("configuration resource not found",
				slog.String("key", key), slog.String("reader", options.reader))

			return LoadResult{Status: LoadNotFound, Tree: nil}, nil
		}

		return LoadResult{}, fmt.Errorf("reading resource %q with reader %q: %w", key, options.reader, err)
	}

	values := hash.NormalizeTree(loaded)

	err = validateValues(values)
	if err != nil {
		return LoadResult{}, fmt.Errorf("resource %q: %w", key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return LoadResult{}, ErrClosed
	}

	if options.merge {
		s.mergeLocked(values)
	}

	s.applyLocked(values)

	s.log().Info("configuration resource loaded",
		slog.String("key", key),
		slog.String("reader", options.reader),
		slog.Bool("merge", options.merge),
		slog.Int("keys", len(values)))

	return LoadResult{Status: LoadLoaded, Tree: hash.CloneTree(values)}, nil
}

// mergeLocked replaces each loaded mapping with its merge over the stored mapping
// at the same path.
func (s *Store) mergeLocked(values map[string]any) {
	for path, value := range values {
		incoming, incomingIsMapping := value.(map[string]any)
		if !incomingIsMapping {
			continue
		}

		current, found := hash.Get(s.values, path)
		if !found {
			continue
		}

		currentLevel, currentIsMapping := current.(map[string]any)
		if !currentIsMapping {
			continue
		}

		values[path] = hash.Merge(currentLevel, incoming)
	}
}

func (s *Store) reader(name string) (Reader, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrClosed
	}

	reader, exists := s.readers[name]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrReaderNotConfigured, name)
	}

	return reader, nil
}
