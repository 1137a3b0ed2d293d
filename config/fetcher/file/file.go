package file

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/0xalexb/hjarta-configure/configure"
)

// ErrPathIsDirectory is returned when a resource key resolves to a directory instead of a file.
var ErrPathIsDirectory = errors.New("path is a directory, not a file")

// ErrPathIsNotDirectory is returned when the Fetcher root is not a directory.
var ErrPathIsNotDirectory = errors.New("path is not a directory")

// ErrInvalidKey is returned when a resource key is empty or escapes the Fetcher root.
var ErrInvalidKey = errors.New("invalid resource key")

// Fetcher implements config.DataFetcher interface for file-based configuration.
// A resource key names a file inside the root directory, without its extension.
type Fetcher struct {
	dir       string
	extension string
}

// NewFetcher returns a constructor function that creates a new file-based Fetcher
// serving files from dir with the given extension (e.g. ".yaml").
// This pattern is Fx-friendly, allowing the DI container to control when instantiation happens.
// Returns an error if dir cannot be read or is not a directory.
func NewFetcher(dir, extension string) func() (*Fetcher, error) {
	return func() (*Fetcher, error) {
		cleanDir := filepath.Clean(dir)

		stat, err := os.Stat(cleanDir)
		if err != nil {
			return nil, fmt.Errorf("stat directory %q: %w", cleanDir, err)
		}

		if !stat.IsDir() {
			return nil, fmt.Errorf("path %q: %w", cleanDir, ErrPathIsNotDirectory)
		}

		return &Fetcher{
			dir:       cleanDir,
			extension: extension,
		}, nil
	}
}

// Path returns the file path a resource key resolves to.
func (f *Fetcher) Path(key string) (string, error) {
	name := key + f.extension
	if key == "" || !filepath.IsLocal(name) {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}

	return filepath.Join(f.dir, name), nil
}

// Fetch reads the file named by key. A missing file wraps configure.ErrResourceNotFound.
func (f *Fetcher) Fetch(key string) ([]byte, error) {
	path, err := f.Path(key)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", configure.ErrResourceNotFound, path)
		}

		return nil, fmt.Errorf("stat file %q: %w", path, err)
	}

	if stat.IsDir() {
		return nil, fmt.Errorf("path %q: %w", path, ErrPathIsDirectory)
	}

	data, err := os.ReadFile(path) // #nosec G304 -- key is checked to stay inside dir
	if err != nil {
		return nil, fmt.Errorf("reading file %q: %w", path, err)
	}

	return data, nil
}
