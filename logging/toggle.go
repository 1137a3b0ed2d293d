package logging

import (
	"log/slog"
)

// Toggle switches a logger between its configured level and DEBUG.
// It implements configure.DisplayToggle, so writing the "debug" configuration
// key turns debug output on and off.
type Toggle struct {
	level *slog.LevelVar
	base  slog.Level
}

// NewToggle creates a Toggle starting at base.
func NewToggle(base slog.Level) *Toggle {
	level := new(slog.LevelVar)
	level.Set(base)

	return &Toggle{
		level: level,
		base:  base,
	}
}

// SetErrorDisplay lowers the level to DEBUG when enabled, and restores the base level otherwise.
func (t *Toggle) SetErrorDisplay(enabled bool) {
	if enabled {
		t.level.Set(min(t.base, slog.LevelDebug))

		return
	}

	t.level.Set(t.base)
}

// Level returns the current level.
func (t *Toggle) Level() slog.Level {
	return t.level.Level()
}
