// Command configure loads configuration resources into a store and prints or
// serves the resulting tree.
//
//	configure -dir ./config -load app,local read Db.host
//	configure -dir ./config -format toml -load server dump
//	configure -load app -addr 127.0.0.1:8087 serve
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	di "github.com/0xalexb/hjarta-configure"
	"github.com/0xalexb/hjarta-configure/config"
	yamlparser "github.com/0xalexb/hjarta-configure/config/parser/yaml"
	"github.com/0xalexb/hjarta-configure/configure"
	"github.com/0xalexb/hjarta-configure/listener"

	"go.uber.org/fx"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
	inspectName = "inspect"
)

var errNotFound = errors.New("not found")

func main() {
	os.Exit(run(os.Args[1:], environ(), os.Stdout, os.Stderr))
}

func run(args []string, env map[string]string, stdout, stderr io.Writer) int {
	builder := &settingsBuilder{}

	cfg, call, err := builder.withFlags(args, stderr).withEnv(env).withDefaults().build()
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)

		if errors.Is(err, errUsage) {
			return exitUsage
		}

		return exitFailure
	}

	reader, err := config.NewFileReader(cfg.Dir, cfg.Format)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)

		return exitFailure
	}

	if call.command == "serve" {
		return serve(cfg, reader)
	}

	logger := di.NewLogger(cfg.LogLevel, stderr)
	store := configure.New(
		configure.WithReader(configure.DefaultReader, reader),
		configure.WithLogger(logger),
	)

	defer func() { _ = store.Close() }()

	err = loadAll(store, cfg, logger)
	if err == nil {
		err = printValue(store, call, stdout)
	}

	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)

		return exitFailure
	}

	return exitOK
}

// loadAll loads the configured resources in order. Missing resources are logged and skipped.
func loadAll(store *configure.Store, cfg *settings, logger *slog.Logger) error {
	var opts []configure.LoadOption

	if cfg.NoMerge {
		opts = append(opts, configure.WithoutMerge())
	}

	for _, key := range cfg.Load {
		result, err := store.Load(key, opts...)
		if err != nil {
			return fmt.Errorf("load %q: %w", key, err)
		}

		if result.Status == configure.LoadNotFound {
			logger.Warn("configuration resource not found", slog.String("key", key), slog.String("dir", cfg.Dir))
		}
	}

	return nil
}

func printValue(store *configure.Store, call invocation, stdout io.Writer) error {
	var path string

	if call.command == "read" && len(call.args) == 1 {
		path = call.args[0]
	}

	value, found := store.Read(path)
	if !found {
		return fmt.Errorf("%w: %s", errNotFound, path)
	}

	data, err := yamlparser.NewParser().Encode(value)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}

	_, err = stdout.Write(data)

	return err //nolint:wrapcheck
}

func serve(cfg *settings, reader configure.Reader) int {
	app := di.NewApp(
		di.WithLogLevel(cfg.LogLevel),
		di.WithConfigure(nil, configure.WithReader(configure.DefaultReader, reader)),
		di.WithModules(fx.Module("preload", fx.Invoke(func(store *configure.Store, logger *slog.Logger) error {
			return loadAll(store, cfg, logger)
		}))),
		di.WithInspectListener(inspectName, listener.WithAddress(cfg.Addr)),
	)

	err := app.Err()
	if err != nil {
		slog.Error("failed to build app", slog.Any("error", err))

		return exitFailure
	}

	app.Run()

	return exitOK
}

func environ() map[string]string {
	env := make(map[string]string)

	for _, pair := range os.Environ() {
		key, value, ok := strings.Cut(pair, "=")
		if ok {
			env[key] = value
		}
	}

	return env
}
