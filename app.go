package di

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/0xalexb/hjarta-configure/configure"
	"github.com/0xalexb/hjarta-configure/logging"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

var errAppNotInitialized = errors.New("app not initialized")

// App is a configured starting point for application using Fx.
type App struct {
	app *fx.App
}

// NewApp creates a new instance of App with Fx configured.
func NewApp(opts ...Option) *App {
	var options Options

	for _, apply := range opts {
		apply(&options)
	}

	return &App{
		app: newFxApp(&options),
	}
}

// newFxApp builds the container. The logger level is wired to a logging.Toggle
// supplied as the configure.DisplayToggle, so writing "debug" to the store
// switches the whole application to DEBUG output.
func newFxApp(options *Options) *fx.App {
	output := options.Output
	if output == nil {
		output = os.Stderr
	}

	config := logging.LoggerConfig{Level: options.LogLevel}
	logger, toggle := logging.NewToggledLogger(config, output)
	slog.SetDefault(logger)

	return fx.New(
		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.SlogLogger{Logger: logger}
		}),
		fx.Supply(config),
		fx.Supply(logger),
		fx.Supply(toggle),
		fx.Provide(func(toggle *logging.Toggle) configure.DisplayToggle { return toggle }),
		fx.Options(options.Modules...),
	)
}

// NewLogger returns the JSON logger NewApp would build for level, writing to w.
func NewLogger(level string, w io.Writer) *slog.Logger {
	return logging.NewLogger(logging.LoggerConfig{Level: level}, w)
}

// Start starts the Fx application.
func (app *App) Start() error {
	if app != nil && app.app != nil {
		err := app.app.Start(context.Background())
		if err != nil {
			return fmt.Errorf("failed to start app: %w", err)
		}

		return nil
	}

	return errAppNotInitialized
}

// Run starts the application and blocks until an OS signal is received, then shuts down gracefully.
func (app *App) Run() {
	if app == nil || app.app == nil {
		slog.Error("attempted to run an uninitialized app")

		return
	}

	app.app.Run()
}

// Stop stops the Fx application gracefully.
func (app *App) Stop() error {
	if app != nil && app.app != nil {
		err := app.app.Stop(context.Background())
		if err != nil {
			return fmt.Errorf("failed to stop app: %w", err)
		}

		return nil
	}

	return errAppNotInitialized
}

// Err returns the error, if any, that occurred while building the container.
func (app *App) Err() error {
	if app == nil || app.app == nil {
		return errAppNotInitialized
	}

	return app.app.Err() //nolint:wrapcheck
}
