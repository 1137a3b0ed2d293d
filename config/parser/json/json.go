package json

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// ErrInvalidJSON is returned when the data is not valid JSON.
var ErrInvalidJSON = errors.New("invalid JSON")

// ErrNotObject is returned when the document, or its root section, is not a JSON object.
var ErrNotObject = errors.New("not a JSON object")

// ErrPathNotFound is returned when the configured root path is not found in the document.
var ErrPathNotFound = errors.New("path not found")

// Parser implements config.Parser for JSON data using tidwall/gjson.
type Parser struct {
	root string
}

// Option defines a function type for configuring a Parser.
type Option func(*Parser)

// WithRoot makes the parser return only the object at the gjson path, e.g. "services.api".
func WithRoot(path string) Option {
	return func(p *Parser) {
		p.root = path
	}
}

// NewParser creates a new JSON parser instance.
func NewParser(opts ...Option) *Parser {
	parser := &Parser{}

	for _, apply := range opts {
		apply(parser)
	}

	return parser
}

// Parse parses a JSON object into a configuration tree.
// Empty documents produce an empty tree. Integral numbers are decoded as int64
// (uint64 when larger), other numbers as float64.
func (p *Parser) Parse(data []byte) (map[string]any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return make(map[string]any), nil
	}

	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidJSON
	}

	result := gjson.ParseBytes(data)

	if p.root != "" {
		result = result.Get(p.root)
		if !result.Exists() {
			return nil, fmt.Errorf("%w: %s", ErrPathNotFound, p.root)
		}
	}

	if !result.IsObject() {
		return nil, fmt.Errorf("%w: got %s", ErrNotObject, result.Type)
	}

	tree, isMapping := toValue(result).(map[string]any)
	if !isMapping {
		return nil, ErrNotObject
	}

	return tree, nil
}

// toValue converts a gjson result into tree variants. Integral numbers keep
// their exact value as int64, or uint64 above the int64 range.
func toValue(result gjson.Result) any {
	switch {
	case result.IsObject():
		mapping := make(map[string]any)

		result.ForEach(func(key, value gjson.Result) bool {
			mapping[key.String()] = toValue(value)

			return true
		})

		return mapping
	case result.IsArray():
		sequence := make([]any, 0)

		result.ForEach(func(_, value gjson.Result) bool {
			sequence = append(sequence, toValue(value))

			return true
		})

		return sequence
	}

	switch result.Type {
	case gjson.Number:
		return toNumber(result)
	case gjson.String:
		return result.Str
	case gjson.True:
		return true
	case gjson.False:
		return false
	default:
		return nil
	}
}

func toNumber(result gjson.Result) any {
	if strings.ContainsAny(result.Raw, ".eE") {
		return result.Float()
	}

	if integer, err := strconv.ParseInt(result.Raw, 10, 64); err == nil {
		return integer
	}

	if unsigned, err := strconv.ParseUint(result.Raw, 10, 64); err == nil {
		return unsigned
	}

	return result.Float()
}
