package configure

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/0xalexb/hjarta-configure/hash"
)

// Store holds one configuration tree shared by the whole process.
type Store struct {
	mu      sync.RWMutex
	values  map[string]any
	readers map[string]Reader
	toggle  DisplayToggle
	logger  *slog.Logger
	closed  bool
}

// Option defines a function type for configuring a Store.
type Option func(*Store)

// WithReader registers a resource reader under name.
func WithReader(name string, reader Reader) Option {
	return func(s *Store) {
		if name != "" && reader != nil {
			s.readers[name] = reader
		}
	}
}

// WithDisplayToggle sets the toggle notified when the debug key is written.
func WithDisplayToggle(toggle DisplayToggle) Option {
	return func(s *Store) {
		s.toggle = toggle
	}
}

// WithLogger sets the logger used by the store. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// New creates a Store holding the default tree {"debug": 0}.
func New(opts ...Option) *Store {
	store := &Store{
		values:  map[string]any{DebugKey: 0},
		readers: make(map[string]Reader),
	}

	for _, apply := range opts {
		apply(store)
	}

	return store
}

// Write stores value at path, creating intermediate levels and keeping siblings.
func (s *Store) Write(path string, value any) error {
	return s.WriteMap(map[string]any{path: value})
}

// WriteMap stores every path/value pair of values. Pairs are validated before
// any of them is applied, then applied in sorted path order.
func (s *Store) WriteMap(values map[string]any) error {
	normalized := normalizeValues(values)

	err := validateValues(normalized)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	s.applyLocked(normalized)

	return nil
}

// Read returns a copy of the value at path. The empty path returns a copy of the
// whole tree.
func (s *Store) Read(path string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, found := hash.Get(s.values, path)
	if !found {
		return nil, false
	}

	return hash.Clone(value), true
}

// Snapshot returns a copy of the whole tree.
func (s *Store) Snapshot() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return hash.CloneTree(s.values)
}

// Check reports whether path holds a value.
func (s *Store) Check(path string) bool {
	if path == "" {
		return false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return hash.Check(s.values, path)
}

// Delete removes the value at path and reports whether it existed.
func (s *Store) Delete(path string) (bool, error) {
	err := validatePath(path)
	if err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false, ErrClosed
	}

	removed := hash.Remove(s.values, path)
	if removed && path == DebugKey {
		s.applyDebugLocked()
	}

	return removed, nil
}

// Configure registers reader under name, replacing any previous reader.
func (s *Store) Configure(name string, reader Reader) error {
	if name == "" {
		return ErrEmptyReaderName
	}

	if reader == nil {
		return ErrNilReader
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	s.readers[name] = reader

	return nil
}

// Drop unregisters the reader called name and reports whether it was registered.
func (s *Store) Drop(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.readers[name]; !exists {
		return false
	}

	delete(s.readers, name)

	return true
}

// Configured returns the sorted names of the registered readers.
func (s *Store) Configured() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Sorted(maps.Keys(s.readers))
}

// Close drops every reader and rejects further mutations. Reads keep serving the
// last tree. Calling Close more than once is a no-op.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true
	s.readers = make(map[string]Reader)

	s.log().Debug("configuration store closed")

	return nil
}

// ReadAs reads path and asserts the value to T.
func ReadAs[T any](s *Store, path string) (T, bool) {
	var zero T

	value, found := s.Read(path)
	if !found {
		return zero, false
	}

	typed, ok := value.(T)
	if !ok {
		return zero, false
	}

	return typed, true
}

// applyLocked inserts values into the tree. Callers hold the write lock and have
// normalized and validated values.
func (s *Store) applyLocked(values map[string]any) {
	for _, path := range slices.Sorted(maps.Keys(values)) {
		s.values = hash.Insert(s.values, path, values[path])

		s.log().Debug("configuration written", slog.String("path", path))
	}

	if _, touched := values[DebugKey]; touched {
		s.applyDebugLocked()
	}
}

func (s *Store) applyDebugLocked() {
	if s.toggle == nil {
		return
	}

	enabled := Truthy(s.values[DebugKey])
	s.toggle.SetErrorDisplay(enabled)

	s.log().Debug("error display toggled", slog.Bool("enabled", enabled))
}

func (s *Store) log() *slog.Logger {
	if s.logger != nil {
		return s.logger
	}

	return slog.Default()
}

// normalizeValues copies values into canonical tree variants so the caller keeps
// no reference into the stored tree.
func normalizeValues(values map[string]any) map[string]any {
	normalized := make(map[string]any, len(values))
	for path, value := range values {
		normalized[path] = hash.Normalize(value)
	}

	return normalized
}

func validateValues(values map[string]any) error {
	for path, value := range values {
		err := validatePath(path)
		if err != nil {
			return err
		}

		if value == nil {
			return fmt.Errorf("%w: %s", ErrNilValue, path)
		}
	}

	return nil
}

func validatePath(path string) error {
	if path == "" {
		return fmt.Errorf("%w: empty path", ErrInvalidPath)
	}

	if slices.Contains(strings.Split(path, hash.Separator), "") {
		return fmt.Errorf("%w: empty segment in %q", ErrInvalidPath, path)
	}

	return nil
}
