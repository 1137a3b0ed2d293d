// Package yaml provides a YAML parser implementation for the config package.
//
// This package uses github.com/goccy/go-yaml for YAML parsing. A Parser turns a
// document into a configuration tree, and can be limited to one section of the
// document with WithRoot, which is resolved through goccy/go-yaml PathString.
// The same Parser decodes store values into yaml-tagged structs for
// config.Provider.
//
// Usage:
//
//	parser := yaml.NewParser(yaml.WithRoot("services.api"))
//	tree, err := parser.Parse(data)
//
// Path Conversion:
//   - No root -> unmarshal entire document
//   - Single key "key" -> "$.key"
//   - Nested path "api.permissions" -> "$.api.permissions"
package yaml
