package di

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/0xalexb/hjarta-configure/config"
	yamlparser "github.com/0xalexb/hjarta-configure/config/parser/yaml"
	"github.com/0xalexb/hjarta-configure/configure"
	"github.com/0xalexb/hjarta-configure/inspect"
	"github.com/0xalexb/hjarta-configure/listener"
	"github.com/0xalexb/hjarta-configure/listener/middleware"

	"go.uber.org/fx"
)

// Options holds configuration settings for the application.
type Options struct {
	Modules  []fx.Option
	LogLevel string
	Output   io.Writer
}

// Option defines a function type for applying configuration options.
type Option func(*Options)

// WithModules adds Fx modules to the application.
func WithModules(modules ...fx.Option) Option {
	return func(opts *Options) {
		opts.Modules = append(opts.Modules, modules...)
	}
}

// WithConfigure adds the configuration store module. The resources in preload are
// loaded with the default reader when the app starts.
func WithConfigure(preload []string, opts ...configure.Option) Option {
	return func(o *Options) {
		o.Modules = append(o.Modules, configure.NewModule(preload, opts...))
	}
}

// WithHTTPListener adds a named HTTP listener module to the application.
// The name is used as both the Fx module name and the DI named tag for http.Handler and Config.
// When options are provided (e.g., WithAddress), Config is supplied to DI automatically.
// Call multiple times with different names to create multiple listeners.
func WithHTTPListener(name string, opts ...listener.Option) Option {
	return func(o *Options) {
		o.Modules = append(o.Modules, listener.NewModule(name, opts...))
	}
}

// WithInspectListener adds a named listener serving the read-only inspection
// handler of the configuration store. It requires WithConfigure.
func WithInspectListener(name string, opts ...listener.Option) Option {
	return func(o *Options) {
		o.Modules = append(o.Modules,
			fx.Provide(fx.Annotate(
				newInspectHandler,
				fx.ResultTags(fmt.Sprintf(`name:"%s"`, name)),
			)),
			listener.NewModule(name, opts...),
		)
	}
}

// WithListenerConfig supplies the Config of the named listener from the store,
// decoding the subtree at path. Use it instead of listener options.
func WithListenerConfig(name, path string) Option {
	return func(o *Options) {
		o.Modules = append(o.Modules, fx.Provide(fx.Annotate(
			func(store *configure.Store) (listener.Config, error) {
				cfg, err := config.Provider(&listener.Config{}, path)(yamlparser.NewParser(), store)
				if err != nil {
					return listener.Config{}, fmt.Errorf("listener %q: %w", name, err)
				}

				return *cfg, nil
			},
			fx.ResultTags(fmt.Sprintf(`name:"%s"`, name)),
		)))
	}
}

// WithLogLevel sets the log level for the application.
// Valid levels are: "debug", "info", "warn", "error".
// If not set or invalid, defaults to "info".
func WithLogLevel(level string) Option {
	return func(opts *Options) {
		opts.LogLevel = level
	}
}

// WithOutput sets the log destination. Defaults to os.Stderr.
func WithOutput(w io.Writer) Option {
	return func(opts *Options) {
		opts.Output = w
	}
}

func newInspectHandler(store *configure.Store, logger *slog.Logger) http.Handler {
	return middleware.Chain(inspect.NewHandler(store, logger),
		middleware.RequestID(),
		middleware.Logging(logger),
		middleware.Recovery(logger),
		middleware.Compress(),
		middleware.Timeout(middleware.DefaultTimeout, logger),
	)
}
