// Package logging provides structured logging using Go's standard library log/slog.
// It outputs logs in JSON format and integrates with Uber's Fx dependency injection framework.
// A Toggle lets the configuration store flip debug output at runtime.
package logging
