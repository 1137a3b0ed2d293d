// Package toml provides a TOML parser implementation for the config package,
// built on github.com/pelletier/go-toml/v2.
package toml

import (
	"errors"
	"fmt"

	"github.com/pelletier/go-toml/v2"
)

// ErrParse is wrapped by every TOML syntax or decoding error.
var ErrParse = errors.New("toml parse error")

// Parser implements config.Parser for TOML data.
type Parser struct{}

// NewParser creates a new TOML parser instance.
func NewParser() *Parser {
	return &Parser{}
}

// Parse parses a TOML document into a configuration tree. Tables become
// mappings, arrays become sequences, and integers are decoded as int64.
func (p *Parser) Parse(data []byte) (map[string]any, error) {
	tree := make(map[string]any)

	err := toml.Unmarshal(data, &tree)
	if err != nil {
		var decodeErr *toml.DecodeError
		if errors.As(err, &decodeErr) {
			row, column := decodeErr.Position()

			return nil, fmt.Errorf("%w at line %d, column %d: %w", ErrParse, row, column, err)
		}

		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	return tree, nil
}
