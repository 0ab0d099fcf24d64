package format

import (
	"strings"

	"github.com/dshills/marksmith/internal/engine/buffer"
	"github.com/dshills/marksmith/internal/engine/selection"
	"github.com/dshills/marksmith/internal/engine/txn"
)

// Inline markers.
const (
	MarkerStrong        = "**"
	MarkerEmphasis      = "*"
	MarkerUnderline     = "<u>"
	MarkerUnderlineEnd  = "</u>"
	MarkerStrikethrough = "~~"
	MarkerCode          = "`"
)

// LinkPlaceholder is the destination written by InsertLink and InsertImage.
const LinkPlaceholder = "url"

// ToggleInline wraps or unwraps every range of set in marker/endMarker.
// An empty endMarker means endMarker == marker.
//
// A range whose text starts with marker and ends with endMarker is
// unwrapped in place. Anything else is wrapped, including a range that
// merely sits between markers; a caret receives marker+endMarker and ends
// up between them.
func ToggleInline(doc string, set selection.Set, marker, endMarker string) txn.Transaction {
	if endMarker == "" {
		endMarker = marker
	}
	m := buffer.ByteOffset(len(marker))
	e := buffer.ByteOffset(len(endMarker))

	return txn.ChangeByRange(doc, set, func(sel selection.Selection) txn.RangeChange {
		from, to := sel.Start(), sel.End()
		text := sel.Text(doc)

		if marker == "" {
			return txn.Keep(sel)
		}

		if isWrapped(text, marker, endMarker) {
			return txn.RangeChange{
				Edits: []buffer.Edit{
					buffer.NewDelete(from, from+m),
					buffer.NewDelete(to-e, to),
				},
				Range: selection.New(from, to-m-e),
			}
		}

		if sel.IsEmpty() {
			return txn.RangeChange{
				Edits: []buffer.Edit{buffer.NewInsert(from, marker+endMarker)},
				Range: selection.NewCursor(from + m),
			}
		}

		return txn.RangeChange{
			Edits: []buffer.Edit{
				buffer.NewInsert(from, marker),
				buffer.NewInsert(to, endMarker),
			},
			Range: selection.New(from+m, to+m),
		}
	})
}

// isWrapped reports whether text begins with marker and ends with
// endMarker without the two overlapping.
func isWrapped(text, marker, endMarker string) bool {
	return len(text) >= len(marker)+len(endMarker) &&
		strings.HasPrefix(text, marker) &&
		strings.HasSuffix(text, endMarker)
}

// ToggleStrong toggles **strong** text.
func ToggleStrong(doc string, set selection.Set) txn.Transaction {
	return ToggleInline(doc, set, MarkerStrong, "")
}

// ToggleEmphasis toggles *emphasized* text.
func ToggleEmphasis(doc string, set selection.Set) txn.Transaction {
	return ToggleInline(doc, set, MarkerEmphasis, "")
}

// ToggleUnderline toggles <u>underlined</u> text.
func ToggleUnderline(doc string, set selection.Set) txn.Transaction {
	return ToggleInline(doc, set, MarkerUnderline, MarkerUnderlineEnd)
}

// ToggleStrikethrough toggles ~~struck~~ text.
func ToggleStrikethrough(doc string, set selection.Set) txn.Transaction {
	return ToggleInline(doc, set, MarkerStrikethrough, "")
}

// ToggleCode toggles `code` spans.
func ToggleCode(doc string, set selection.Set) txn.Transaction {
	return ToggleInline(doc, set, MarkerCode, "")
}

// InsertLink turns every range into [text](url), keeping the link text
// selected.
func InsertLink(doc string, set selection.Set) txn.Transaction {
	return insertReference(doc, set, "[")
}

// InsertImage turns every range into ![text](url), keeping the alt text
// selected.
func InsertImage(doc string, set selection.Set) txn.Transaction {
	return insertReference(doc, set, "![")
}

func insertReference(doc string, set selection.Set, open string) txn.Transaction {
	shift := buffer.ByteOffset(len(open))
	return txn.ChangeByRange(doc, set, func(sel selection.Selection) txn.RangeChange {
		from, to := sel.Start(), sel.End()
		return txn.RangeChange{
			Edits: []buffer.Edit{
				buffer.NewInsert(from, open),
				buffer.NewInsert(to, "]("+LinkPlaceholder+")"),
			},
			Range: selection.New(from+shift, to+shift),
		}
	})
}
