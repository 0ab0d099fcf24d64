package selection

import "github.com/dshills/marksmith/internal/engine/buffer"

// Edit is an alias for buffer.Edit for convenience.
type Edit = buffer.Edit

// TransformOffset updates an offset after an edit.
// Returns the new offset position.
//
// Transformation rules:
//   - If edit is entirely before offset: adjust offset by the edit's delta
//   - If edit starts at or after offset: offset unchanged
//   - If edit spans offset: move offset to end of new text
func TransformOffset(offset ByteOffset, edit Edit) ByteOffset {
	// Edit is entirely before offset: adjust by delta
	if edit.Range.End <= offset {
		return offset + edit.Delta()
	}

	// Edit starts at or after offset: no change needed
	if edit.Range.Start >= offset {
		return offset
	}

	// Edit spans offset: move to end of new text
	return edit.Range.Start + ByteOffset(len(edit.NewText))
}

// TransformSelection updates a selection after an edit.
// Both anchor and head are transformed independently.
func TransformSelection(sel Selection, edit Edit) Selection {
	return Selection{
		Anchor: TransformOffset(sel.Anchor, edit),
		Head:   TransformOffset(sel.Head, edit),
	}
}

// TransformRange updates a range after an edit, keeping Start <= End.
func TransformRange(r Range, edit Edit) Range {
	start := TransformOffset(r.Start, edit)
	end := TransformOffset(r.End, edit)
	if start > end {
		start, end = end, start
	}
	return Range{Start: start, End: end}
}

// TransformSet updates a set after edits given in ascending order against
// one original document. Edits are mapped from the last to the first so
// each one is applied to offsets it has not yet shifted.
func TransformSet(s Set, edits []Edit) Set {
	for i := len(edits) - 1; i >= 0; i-- {
		s = s.Map(edits[i])
	}
	return s
}
