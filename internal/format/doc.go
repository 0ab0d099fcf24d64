// Package format computes Markdown formatting edits for one or more
// selection ranges.
//
// Every function is pure: it reads the document and selection set it is
// given and returns a txn.Transaction for the caller to apply. Nothing in
// this package holds state between calls.
//
// Inline commands wrap or unwrap each range in a marker pair:
//
//	tx := format.ToggleStrong("Hello", selection.NewSet(selection.NewCursor(5)))
//	// tx inserts "****" at 5 and leaves the caret at 7
//
// Block commands rewrite the line containing each range's start. Existing
// block markers (headings, quotes, list and task items) are recognized by
// ParseBlockMarker and replaced rather than stacked:
//
//	tx := format.SetHeading("# Title", selection.NewSet(), 2)
//	// "# Title" -> "## Title"
//
// InsertBlock drops a template (table skeleton, fenced code, math fence,
// horizontal rule) below the current line, or onto it when it is blank.
package format
