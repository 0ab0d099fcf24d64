package selection

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// Set is an ordered list of non-overlapping selections.
// The first selection is the primary one.
type Set struct {
	ranges []Selection
}

// NewSet creates a normalized set from the given selections.
// An empty argument list yields a set with a single caret at 0.
func NewSet(sels ...Selection) Set {
	if len(sels) == 0 {
		return Set{ranges: []Selection{NewCursor(0)}}
	}
	ranges := make([]Selection, len(sels))
	copy(ranges, sels)
	return Set{ranges: normalize(ranges)}
}

// Single creates a set holding one selection.
func Single(sel Selection) Set {
	return Set{ranges: []Selection{sel}}
}

// Primary returns the primary (first) selection.
func (s Set) Primary() Selection {
	if len(s.ranges) == 0 {
		return NewCursor(0)
	}
	return s.ranges[0]
}

// All returns a copy of all selections.
func (s Set) All() []Selection {
	if len(s.ranges) == 0 {
		return []Selection{NewCursor(0)}
	}
	out := make([]Selection, len(s.ranges))
	copy(out, s.ranges)
	return out
}

// Len returns the number of selections.
func (s Set) Len() int {
	if len(s.ranges) == 0 {
		return 1
	}
	return len(s.ranges)
}

// Ranges returns all selection ranges (always Start <= End).
func (s Set) Ranges() []Range {
	all := s.All()
	out := make([]Range, len(all))
	for i, sel := range all {
		out[i] = sel.Range()
	}
	return out
}

// Valid reports whether the set is sorted, non-overlapping and within
// [0, docLen].
func (s Set) Valid(docLen ByteOffset) bool {
	all := s.All()
	for i, sel := range all {
		if sel.Start() < 0 || sel.End() > docLen {
			return false
		}
		if i > 0 {
			prev := all[i-1]
			if sel.Start() < prev.End() || sel.Overlaps(prev) {
				return false
			}
		}
	}
	return true
}

// ValidIn is Valid for doc that also requires every anchor and head to sit
// on a character boundary: a caret may not split a multi-byte UTF-8
// sequence.
func (s Set) ValidIn(doc string) bool {
	if !s.Valid(ByteOffset(len(doc))) {
		return false
	}
	for _, sel := range s.All() {
		if !runeBoundary(doc, sel.Anchor) || !runeBoundary(doc, sel.Head) {
			return false
		}
	}
	return true
}

// ClampIn clamps the set to doc and moves offsets that fall inside a
// multi-byte character back to the start of that character.
func (s Set) ClampIn(doc string) Set {
	all := s.All()
	for i, sel := range all {
		sel = sel.Clamp(ByteOffset(len(doc)))
		all[i] = New(runeStart(doc, sel.Anchor), runeStart(doc, sel.Head))
	}
	return Set{ranges: normalize(all)}
}

func runeBoundary(doc string, off ByteOffset) bool {
	return off == ByteOffset(len(doc)) || utf8.RuneStart(doc[off])
}

func runeStart(doc string, off ByteOffset) ByteOffset {
	for off > 0 && !runeBoundary(doc, off) {
		off--
	}
	return off
}

// Clamp returns the set with every selection clamped to [0, docLen].
func (s Set) Clamp(docLen ByteOffset) Set {
	all := s.All()
	for i, sel := range all {
		all[i] = sel.Clamp(docLen)
	}
	return Set{ranges: normalize(all)}
}

// Map transforms every selection through an edit.
func (s Set) Map(edit Edit) Set {
	all := s.All()
	for i, sel := range all {
		all[i] = TransformSelection(sel, edit)
	}
	return Set{ranges: normalize(all)}
}

// Equals returns true if two sets have the same selections.
func (s Set) Equals(other Set) bool {
	a, b := s.All(), other.All()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// String returns a string representation of the set.
func (s Set) String() string {
	parts := make([]string, 0, s.Len())
	for _, sel := range s.All() {
		parts = append(parts, sel.String())
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// normalize sorts selections and merges overlapping ones.
func normalize(sels []Selection) []Selection {
	if len(sels) <= 1 {
		return sels
	}

	// Sort by start position
	sort.SliceStable(sels, func(i, j int) bool {
		si, sj := sels[i].Start(), sels[j].Start()
		if si != sj {
			return si < sj
		}
		// Carets sort before ranges starting at the same offset
		return sels[i].End() < sels[j].End()
	})

	merged := sels[:1]
	for _, sel := range sels[1:] {
		last := &merged[len(merged)-1]
		if sel.Overlaps(*last) {
			*last = last.Merge(sel)
		} else {
			merged = append(merged, sel)
		}
	}
	return merged
}
