// Package txn builds atomic, multi-range edit transactions.
//
// A Transaction is computed against one immutable document snapshot: its
// edits are ascending, non-overlapping spans of that snapshot, and its
// selection is expressed in the coordinates of the document after every
// edit has been applied.
package txn

import (
	"sort"
	"strings"

	"github.com/dshills/marksmith/internal/engine/buffer"
	"github.com/dshills/marksmith/internal/engine/selection"
)

// Transaction is one atomic batch of edits plus the resulting selection.
type Transaction struct {
	Edits     []buffer.Edit // Ascending, in original document coordinates
	Selection selection.Set // Post-edit coordinates
}

// RangeChange is the contribution of a single selection range.
//
// Edits are expressed against the original document. Range is the new
// selection for that range, expressed as if only its own Edits had been
// applied; ChangeByRange re-bases it over the edits of earlier ranges.
type RangeChange struct {
	Edits []buffer.Edit
	Range selection.Selection
}

// Keep returns a RangeChange that leaves sel untouched.
func Keep(sel selection.Selection) RangeChange {
	return RangeChange{Range: sel}
}

// New creates a transaction from ascending edits and a post-edit selection.
func New(edits []buffer.Edit, sel selection.Set) Transaction {
	return Transaction{Edits: edits, Selection: sel}
}

// ChangeByRange calls fn for every range of set against the original
// document and combines the results into one transaction.
//
// Ranges are visited in ascending order. Each resulting range is shifted by
// the total length change of the edits contributed before it. A range whose
// edits would overlap an edit already collected contributes nothing; its
// original selection is mapped through the collected edits instead, so the
// transaction always stays expressible as non-overlapping spans of doc.
func ChangeByRange(doc string, set selection.Set, fn func(sel selection.Selection) RangeChange) Transaction {
	var (
		edits    []buffer.Edit
		ranges   []selection.Selection
		rejected []int
		delta    buffer.ByteOffset
		maxEnd   buffer.ByteOffset = -1
	)
	docLen := buffer.ByteOffset(len(doc))

	for _, sel := range set.All() {
		change := fn(sel)

		own := make([]buffer.Edit, 0, len(change.Edits))
		for _, edit := range change.Edits {
			if !edit.IsNoOp() {
				own = append(own, edit)
			}
		}
		sort.SliceStable(own, func(i, j int) bool {
			return own[i].Range.Start < own[j].Range.Start
		})

		if !fits(own, maxEnd, docLen) {
			rejected = append(rejected, len(ranges))
			ranges = append(ranges, sel)
			continue
		}

		ranges = append(ranges, change.Range.Shift(delta))
		for _, edit := range own {
			edits = append(edits, edit)
			delta += edit.Delta()
			if edit.Range.End > maxEnd {
				maxEnd = edit.Range.End
			}
		}
	}

	for _, i := range rejected {
		ranges[i] = selection.TransformSet(selection.Single(ranges[i]), edits).Primary()
	}

	return Transaction{
		Edits:     edits,
		Selection: selection.NewSet(ranges...).Clamp(docLen + delta),
	}
}

// fits reports whether ascending edits stay inside [0, docLen], start at or
// after maxEnd and do not overlap each other.
func fits(edits []buffer.Edit, maxEnd, docLen buffer.ByteOffset) bool {
	for _, edit := range edits {
		if !edit.Range.IsValid() || edit.Range.Start < 0 || edit.Range.End > docLen {
			return false
		}
		if edit.Range.Start < maxEnd {
			return false
		}
		maxEnd = edit.Range.End
	}
	return true
}

// IsEmpty reports whether the transaction changes no text.
func (t Transaction) IsEmpty() bool {
	return len(t.Edits) == 0
}

// Reversed returns the edits in descending order, the order
// buffer.ApplyEdits expects.
func (t Transaction) Reversed() []buffer.Edit {
	out := make([]buffer.Edit, len(t.Edits))
	for i, edit := range t.Edits {
		out[len(t.Edits)-1-i] = edit
	}
	return out
}

// Delta returns the total change in document length.
func (t Transaction) Delta() buffer.ByteOffset {
	var delta buffer.ByteOffset
	for _, edit := range t.Edits {
		delta += edit.Delta()
	}
	return delta
}

// Apply applies the transaction to doc and returns the new document.
func (t Transaction) Apply(doc string) (string, error) {
	return buffer.ApplyEdits(doc, t.Reversed())
}

// String returns a human-readable representation of the transaction.
func (t Transaction) String() string {
	parts := make([]string, len(t.Edits))
	for i, edit := range t.Edits {
		parts[i] = edit.String()
	}
	return "Transaction[" + strings.Join(parts, ", ") + "] -> " + t.Selection.String()
}
