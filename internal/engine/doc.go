// Package engine is the live document behind an editing session.
//
// An Engine owns the text of one Markdown document and its selection set.
// Every change arrives as a txn.Transaction computed against the current
// text; the engine validates it, applies it atomically, records its inverse
// for undo and notifies change listeners with the new text.
//
//	e := engine.New(engine.WithContent("hello world"),
//	    engine.WithSelection(selection.Single(selection.New(0, 5))))
//
//	tx := format.ToggleStrong(e.Text(), e.Selection())
//	if err := e.Dispatch(tx); err != nil {
//	    return err
//	}
//	// e.Text() == "**hello** world"
//
//	e.Undo() // "hello world"
//
// Engine satisfies command.Surface, so registered commands and key bindings
// can drive it directly.
//
// # Tables
//
// Segments parses the current text into table and non-table segments.
// EditTable runs a structural mutation through a table.Synchronizer and
// applies the rewritten document as a single undoable change.
//
// # Thread Safety
//
// All Engine methods are safe for concurrent use. Change listeners run after
// the engine lock is released, in registration order.
package engine
