package listener

import (
	"fmt"
	"log/slog"
	"net/http"

	"go.uber.org/fx"
)

// NewModule creates an Fx module for a named HTTP listener.
// The name is used as the module name and as the DI named tag for the http.Handler
// and Config it consumes and the *Server it provides.
// If any options are passed, the module supplies Config to DI from those options.
// Otherwise, Config must be provided externally (e.g., via config.Provider).
//
//nolint:ireturn // fx.Option is the standard return type for Fx modules
func NewModule(name string, opts ...Option) fx.Option {
	if name == "" {
		return fx.Error(ErrEmptyName)
	}

	tag := fmt.Sprintf(`name:"%s"`, name)

	var moduleOpts []fx.Option

	if len(opts) > 0 {
		var cfg Config

		for _, apply := range opts {
			apply(&cfg)
		}

		moduleOpts = append(moduleOpts, fx.Supply(fx.Annotate(cfg, fx.ResultTags(tag))))
	}

	moduleOpts = append(moduleOpts,
		fx.Provide(fx.Annotate(
			func(shutdowner fx.Shutdowner, handler http.Handler, listenerCfg Config) (*Server, error) {
				return NewServer(name, handler, listenerCfg, func() {
					shutdownErr := shutdowner.Shutdown()
					if shutdownErr != nil {
						slog.Error("failed to trigger shutdown", "listener", name, "error", shutdownErr)
					}
				})
			},
			fx.ParamTags("", tag, tag),
			fx.ResultTags(tag),
		)),
		fx.Invoke(fx.Annotate(
			func(lifecycle fx.Lifecycle, srv *Server) {
				lifecycle.Append(fx.Hook{
					OnStart: srv.Start,
					OnStop:  srv.Stop,
				})
			},
			fx.ParamTags("", tag),
		)),
	)

	return fx.Module(name, moduleOpts...)
}
