package yaml

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// ErrPathNotFound is returned when the configured root path is not found in the YAML document.
var ErrPathNotFound = errors.New("path not found")

// Parser implements config.Parser and config.Decoder for YAML data.
// It uses goccy/go-yaml PathString to navigate to an optional root section.
type Parser struct {
	root string
}

// Option defines a function type for configuring a Parser.
type Option func(*Parser)

// WithRoot makes the parser return only the section at the dot-separated path,
// e.g. "services.api". The section must be a mapping.
func WithRoot(path string) Option {
	return func(p *Parser) {
		p.root = path
	}
}

// NewParser creates a new YAML parser instance.
func NewParser(opts ...Option) *Parser {
	parser := &Parser{}

	for _, apply := range opts {
		apply(parser)
	}

	return parser
}

// Parse parses a YAML document into a configuration tree.
// Empty documents produce an empty tree.
func (p *Parser) Parse(data []byte) (map[string]any, error) {
	tree := make(map[string]any)

	if len(bytes.TrimSpace(data)) == 0 {
		return tree, nil
	}

	if p.root == "" {
		err := yaml.Unmarshal(data, &tree)
		if err != nil {
			return nil, fmt.Errorf("unmarshal error: %w", err)
		}

		return tree, nil
	}

	pathObj, err := yaml.PathString(toYAMLPath(p.root))
	if err != nil {
		return nil, fmt.Errorf("invalid path %q: %w", p.root, err)
	}

	err = pathObj.Read(bytes.NewReader(data), &tree)
	if err != nil {
		if yaml.IsNotFoundNodeError(err) {
			return nil, fmt.Errorf("%w: %s", ErrPathNotFound, p.root)
		}

		return nil, fmt.Errorf("reading path %q: %w", p.root, err)
	}

	return tree, nil
}

// Decode converts a configuration value into target using its yaml struct tags.
func (p *Parser) Decode(value any, target any) error {
	data, err := yaml.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal error: %w", err)
	}

	err = yaml.Unmarshal(data, target)
	if err != nil {
		return fmt.Errorf("unmarshal error: %w", err)
	}

	return nil
}

// Encode renders a configuration value as YAML.
func (p *Parser) Encode(value any) ([]byte, error) {
	data, err := yaml.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("marshal error: %w", err)
	}

	return data, nil
}

// toYAMLPath converts a dot-separated path to goccy/go-yaml PathString format.
// Examples:
//   - "key" -> "$.key"
//   - "api.permissions" -> "$.api.permissions"
func toYAMLPath(path string) string {
	return "$." + path
}
