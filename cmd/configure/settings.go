package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"dario.cat/mergo"
	"github.com/caarlos0/env/v11"

	"github.com/0xalexb/hjarta-configure/config"
	"github.com/0xalexb/hjarta-configure/listener"
)

// envPrefix is prepended to every environment variable name read by the tool.
const envPrefix = "CONFIGURE_"

var errUsage = errors.New("usage error")

// settings configure the tool itself. Flags win over the environment, which
// wins over defaults.
type settings struct {
	Dir      string   `env:"DIR"`
	Format   string   `env:"FORMAT"`
	Load     []string `env:"LOAD"      envSeparator:","`
	Addr     string   `env:"ADDR"`
	LogLevel string   `env:"LOG_LEVEL"`
	NoMerge  bool     `env:"NO_MERGE"`
}

// invocation is a command with its positional arguments.
type invocation struct {
	command string
	args    []string
}

func defaultSettings() *settings {
	return &settings{
		Dir:      ".",
		Format:   config.FormatYAML,
		Addr:     listener.DefaultAddress,
		LogLevel: "info",
	}
}

type settingsBuilder struct {
	layers []*settings
	call   invocation
	err    error
}

func (b *settingsBuilder) withFlags(args []string, output io.Writer) *settingsBuilder {
	parsed, call, err := parseFlags(args, output)
	if err != nil {
		b.err = errors.Join(b.err, err)

		return b
	}

	b.layers = append(b.layers, parsed)
	b.call = call

	return b
}

func (b *settingsBuilder) withEnv(environ map[string]string) *settingsBuilder {
	parsed := &settings{}

	err := env.ParseWithOptions(parsed, env.Options{Prefix: envPrefix, Environment: environ})
	if err != nil {
		b.err = errors.Join(b.err, fmt.Errorf("parsing environment: %w", err))

		return b
	}

	b.layers = append(b.layers, parsed)

	return b
}

func (b *settingsBuilder) withDefaults() *settingsBuilder {
	b.layers = append(b.layers, defaultSettings())

	return b
}

// build merges the layers, earlier ones taking precedence.
func (b *settingsBuilder) build() (*settings, invocation, error) {
	if b.err != nil {
		return nil, invocation{}, b.err
	}

	merged := &settings{}

	for _, layer := range b.layers {
		err := mergo.Merge(merged, layer)
		if err != nil {
			return nil, invocation{}, fmt.Errorf("merging settings: %w", err)
		}
	}

	_, _, err := config.ParserFor(merged.Format)
	if err != nil {
		return nil, invocation{}, fmt.Errorf("%w: %w", errUsage, err)
	}

	return merged, b.call, b.call.validate()
}

func (c invocation) validate() error {
	switch c.command {
	case "read":
		if len(c.args) > 1 {
			return fmt.Errorf("%w: read takes at most one path", errUsage)
		}
	case "dump", "serve":
		if len(c.args) > 0 {
			return fmt.Errorf("%w: %s takes no arguments", errUsage, c.command)
		}
	case "":
		return fmt.Errorf("%w: missing command (read, dump or serve)", errUsage)
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, c.command)
	}

	return nil
}

func parseFlags(args []string, output io.Writer) (*settings, invocation, error) {
	flags := flag.NewFlagSet("configure", flag.ContinueOnError)
	flags.SetOutput(output)

	parsed := &settings{}

	var load string

	flags.StringVar(&parsed.Dir, "dir", "", "directory holding configuration resources")
	flags.StringVar(&parsed.Format, "format", "", "resource format: "+strings.Join(config.Formats(), ", "))
	flags.StringVar(&load, "load", "", "comma separated resource keys to load, in order")
	flags.StringVar(&parsed.Addr, "addr", "", "inspection listener address for serve")
	flags.StringVar(&parsed.LogLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.BoolVar(&parsed.NoMerge, "no-merge", false, "replace top-level values on load instead of merging")

	flags.Usage = func() {
		_, _ = fmt.Fprintln(output, "usage: configure [flags] read [path] | dump | serve")
		flags.PrintDefaults()
	}

	err := flags.Parse(args)
	if err != nil {
		return nil, invocation{}, fmt.Errorf("%w: %w", errUsage, err)
	}

	parsed.Load = splitKeys(load)

	var call invocation

	if rest := flags.Args(); len(rest) > 0 {
		call = invocation{command: rest[0], args: rest[1:]}
	}

	return parsed, call, nil
}

func splitKeys(value string) []string {
	var keys []string

	for key := range strings.SplitSeq(value, ",") {
		if key = strings.TrimSpace(key); key != "" {
			keys = append(keys, key)
		}
	}

	return keys
}
