// Package selection provides selection ranges and ordered selection sets
// for multi-range editing.
//
// Selection Model:
//
// Selections use an anchor/head model where:
//   - Anchor: The position where the selection started
//   - Head: The current cursor position (where typing would occur)
//
// When Anchor == Head, the selection is a caret with no selected text.
//
// Selection Sets:
//
// A Set is the list of ranges a command operates on. It is always:
//   - Sorted ascending by start offset
//   - Free of overlapping ranges (overlaps are merged on construction)
//   - Free of duplicate carets
//
// Ranges that merely touch ([0,2) and [2,4)) stay distinct, so inline
// commands can wrap adjacent words independently.
//
// Sets are immutable values. Map transforms every range through an edit
// and returns a new Set:
//
//	set := selection.NewSet(selection.NewCursor(5), selection.New(10, 20))
//	set = set.Map(buffer.NewInsert(0, "**"))
package selection
