// Package config connects configuration resources and typed settings to a
// configure.Store.
//
// The package uses an interface-based design with five extension points:
//   - DataFetcher: retrieves the raw data of a named resource (file, ...)
//   - Parser: turns raw data into a configuration tree
//   - Decoder: converts a subtree of the store into a typed struct
//   - Validator: validates config after decoding
//   - Defaulter: applies default values before validation
//
// # Readers
//
// NewReader combines a DataFetcher and a Parser into a configure.Reader that can
// be registered on a store:
//
//	fetcher, err := filefetcher.NewFetcher("config", ".yaml")()
//	...
//	reader := config.NewReader(fetcher, yamlparser.NewParser())
//	store := configure.New(configure.WithReader(configure.DefaultReader, reader))
//	_, err = store.Load("database")
//
// NewFileReader does the same for a directory and a format name ("yaml", "json"
// or "toml").
//
// # Typed Sections
//
// Provider reads a dot-separated path from the store and decodes it:
//
//	"Db"                   -> store["Db"]
//	"Db.connection"        -> store["Db"]["connection"]
//	""                     -> entire tree
//
// A typical usage pattern:
//
//	type DBConfig struct {
//	    Host string `yaml:"host"`
//	    Port int    `yaml:"port"`
//	}
//
//	provider := config.Provider(&DBConfig{}, "Db")
//	cfg, err := provider(yamlparser.NewParser(), store)
package config
