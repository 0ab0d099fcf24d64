package format

import (
	"github.com/dshills/marksmith/internal/engine/buffer"
	"github.com/dshills/marksmith/internal/engine/selection"
	"github.com/dshills/marksmith/internal/engine/txn"
)

// MaxHeadingLevel is the deepest heading Markdown supports.
const MaxHeadingLevel = 6

// LineFunc computes the new text of a line. Returning false leaves the line
// and its selection range untouched.
type LineFunc func(line string) (string, bool)

// TransformLines rewrites the line containing the start of every range.
// A multi-line selection only affects its first line. Several ranges on
// the same line rewrite it once. Each rewritten range collapses to a caret
// at the end of the new line text.
func TransformLines(doc string, set selection.Set, fn LineFunc) txn.Transaction {
	done := make(map[buffer.ByteOffset]bool)

	return txn.ChangeByRange(doc, set, func(sel selection.Selection) txn.RangeChange {
		line := buffer.LineAt(doc, sel.Start())

		if done[line.Start] {
			// Already rewritten by an earlier range; the caret lands at the
			// original line end, which the earlier edit's delta re-bases.
			return txn.RangeChange{Range: selection.NewCursor(line.End)}
		}

		text, ok := fn(line.Text)
		if !ok {
			return txn.Keep(sel)
		}
		done[line.Start] = true

		caret := selection.NewCursor(line.Start + buffer.ByteOffset(len(text)))
		if text == line.Text {
			return txn.RangeChange{Range: caret}
		}
		return txn.RangeChange{
			Edits: []buffer.Edit{buffer.NewEdit(line.Range(), text)},
			Range: caret,
		}
	})
}

// SetLinePrefix replaces the block markers of each affected line with
// prefix. Applying the same prefix twice leaves the text unchanged.
func SetLinePrefix(doc string, set selection.Set, prefix string) txn.Transaction {
	return TransformLines(doc, set, func(line string) (string, bool) {
		return prefix + StripBlockMarkers(line), true
	})
}

// SetBlockMarker replaces the block markers of each affected line with m.
func SetBlockMarker(doc string, set selection.Set, m BlockMarker) txn.Transaction {
	return SetLinePrefix(doc, set, m.Prefix())
}

// ClearBlockMarkers strips every block marker from each affected line.
func ClearBlockMarkers(doc string, set selection.Set) txn.Transaction {
	return TransformLines(doc, set, func(line string) (string, bool) {
		return StripBlockMarkers(line), true
	})
}

// SetHeading makes each affected line a heading of the given level.
// Level 0 clears all block formatting. Levels outside 0..6 are clamped.
func SetHeading(doc string, set selection.Set, level int) txn.Transaction {
	if level <= 0 {
		return ClearBlockMarkers(doc, set)
	}
	if level > MaxHeadingLevel {
		level = MaxHeadingLevel
	}
	return SetBlockMarker(doc, set, Heading(level))
}

// ToggleBlockquote prefixes each affected line with "> ".
func ToggleBlockquote(doc string, set selection.Set) txn.Transaction {
	return SetBlockMarker(doc, set, Quote)
}

// ToggleUnorderedList prefixes each affected line with "- ".
func ToggleUnorderedList(doc string, set selection.Set) txn.Transaction {
	return SetBlockMarker(doc, set, Unordered)
}

// ToggleOrderedList prefixes each affected line with "1. ".
func ToggleOrderedList(doc string, set selection.Set) txn.Transaction {
	return SetBlockMarker(doc, set, Ordered)
}

// ToggleTaskList prefixes each affected line with "- [ ] ".
func ToggleTaskList(doc string, set selection.Set) txn.Transaction {
	return SetBlockMarker(doc, set, Task)
}
