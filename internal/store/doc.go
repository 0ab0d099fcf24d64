// Package store moves documents between the engine and the file system.
//
// Saver writes a document back after a quiet period, coalescing bursts of
// edits into one write; Watcher reports external changes to a document
// file, also debounced.
//
//	saver := store.NewSaver(path, time.Second)
//	defer saver.Close() // writes anything still pending
//	e.OnChange(saver.Schedule)
package store
