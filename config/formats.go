package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/0xalexb/hjarta-configure/config/fetcher/file"
	jsonparser "github.com/0xalexb/hjarta-configure/config/parser/json"
	tomlparser "github.com/0xalexb/hjarta-configure/config/parser/toml"
	yamlparser "github.com/0xalexb/hjarta-configure/config/parser/yaml"
	"github.com/0xalexb/hjarta-configure/configure"
)

// Supported resource formats.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
	FormatTOML = "toml"
)

// ErrUnknownFormat is returned for a format name without a parser.
var ErrUnknownFormat = errors.New("unknown format")

// Formats lists the supported format names.
func Formats() []string {
	return []string{FormatYAML, FormatJSON, FormatTOML}
}

// ParserFor returns the parser and file extension for format. Matching is case
// insensitive and "yml" is accepted for YAML.
//
//nolint:ireturn // callers only need the Parser behaviour
func ParserFor(format string) (Parser, string, error) {
	switch strings.ToLower(format) {
	case FormatYAML, "yml":
		return yamlparser.NewParser(), ".yaml", nil
	case FormatJSON:
		return jsonparser.NewParser(), ".json", nil
	case FormatTOML:
		return tomlparser.NewParser(), ".toml", nil
	default:
		return nil, "", fmt.Errorf("%w: %q (want one of %s)", ErrUnknownFormat, format, strings.Join(Formats(), ", "))
	}
}

// NewFileReader returns a reader loading <dir>/<key>.<ext> files of the given format.
//
//nolint:ireturn // the store consumes readers through the interface
func NewFileReader(dir, format string) (configure.Reader, error) {
	parser, ext, err := ParserFor(format)
	if err != nil {
		return nil, err
	}

	fetcher, err := file.NewFetcher(dir, ext)()
	if err != nil {
		return nil, fmt.Errorf("creating fetcher: %w", err)
	}

	return NewReader(fetcher, parser), nil
}
