package main

import (
	"github.com/dshills/marksmith/internal/engine"
	"github.com/dshills/marksmith/internal/store"
)

// autosave writes every change of e back to path in the file's own line
// ending, after the configured autosave delay. Closing the returned saver
// writes whatever is still pending.
func (a *app) autosave(e *engine.Engine, path string) *store.Saver {
	saver := store.NewSaver(path, a.cfg.AutosaveDelay, store.WithLogger(a.logger))
	le := e.LineEnding()
	e.OnChange(func(text string) {
		saver.Schedule(le.Restore(text))
	})
	return saver
}
