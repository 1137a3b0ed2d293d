package configure

import (
	"context"
	"fmt"
	"log/slog"

	"go.uber.org/fx"
)

// ModuleName is the Fx module name used by NewModule.
const ModuleName = "configure"

// ModuleParams are the optional dependencies of the store built by NewModule.
type ModuleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Toggle    DisplayToggle `optional:"true"`
	Logger    *slog.Logger  `optional:"true"`
}

// NewModule creates an Fx module providing a *Store. A DisplayToggle and a
// *slog.Logger are picked up from the container when present. The resources in
// preload are loaded with the default reader on start, in order, and the store is
// closed on stop.
//
//nolint:ireturn // fx.Option is the standard return type for Fx modules
func NewModule(preload []string, opts ...Option) fx.Option {
	return fx.Module(ModuleName,
		fx.Provide(func(params ModuleParams) *Store {
			storeOpts := make([]Option, 0, len(opts)+2)

			if params.Toggle != nil {
				storeOpts = append(storeOpts, WithDisplayToggle(params.Toggle))
			}

			if params.Logger != nil {
				storeOpts = append(storeOpts, WithLogger(params.Logger))
			}

			store := New(append(storeOpts, opts...)...)

			params.Lifecycle.Append(fx.Hook{
				OnStart: func(context.Context) error {
					return preloadResources(store, preload)
				},
				OnStop: func(context.Context) error {
					return store.Close()
				},
			})

			return store
		}),
	)
}

func preloadResources(store *Store, keys []string) error {
	for _, key := range keys {
		result, err := store.Load(key)
		if err != nil {
			return fmt.Errorf("preloading %q: %w", key, err)
		}

		if result.Status == LoadNotFound {
			store.log().Warn("preloaded configuration resource not found", slog.String("key", key))
		}
	}

	return nil
}
