// Package history provides undo/redo for transactions applied to a document.
//
// Every transaction recorded here is paired with its inverse, computed
// against the document snapshot the transaction was applied to:
//
//	entry := history.Record("strong", doc, tx, before)
//	h.Push(entry)
//
//	// Later, apply the inverse to step back.
//	h.Undo(func(e history.Entry) error { return apply(e.Inverse) })
//
// Undo moves the entry onto the redo stack; Redo applies Forward again and
// moves it back. Pushing a new entry clears the redo stack.
package history
