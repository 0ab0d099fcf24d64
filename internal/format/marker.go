package format

import (
	"fmt"
	"strings"
)

// MarkerKind identifies the block-level role a line prefix expresses.
type MarkerKind uint8

const (
	MarkerNone      MarkerKind = iota // Plain paragraph text
	MarkerHeading                     // "#".."######"
	MarkerQuote                       // ">"
	MarkerUnordered                   // "-", "*" or "+"
	MarkerOrdered                     // "1." or "1)"
	MarkerTask                        // "- [ ]" or "- [x]"
)

// String returns the marker kind name.
func (k MarkerKind) String() string {
	switch k {
	case MarkerNone:
		return "none"
	case MarkerHeading:
		return "heading"
	case MarkerQuote:
		return "quote"
	case MarkerUnordered:
		return "unordered"
	case MarkerOrdered:
		return "ordered"
	case MarkerTask:
		return "task"
	default:
		return "unknown"
	}
}

// BlockMarker is one leading block marker of a line.
type BlockMarker struct {
	Kind MarkerKind

	// Level is the heading level (1..6) or the ordered list number.
	Level int

	// Checked is set on completed task items.
	Checked bool
}

// Heading returns a heading marker of the given level.
func Heading(level int) BlockMarker {
	return BlockMarker{Kind: MarkerHeading, Level: level}
}

// Common markers written by the block commands.
var (
	Quote     = BlockMarker{Kind: MarkerQuote}
	Unordered = BlockMarker{Kind: MarkerUnordered}
	Ordered   = BlockMarker{Kind: MarkerOrdered, Level: 1}
	Task      = BlockMarker{Kind: MarkerTask}
)

// Prefix renders the marker as the text written at the start of a line.
func (b BlockMarker) Prefix() string {
	switch b.Kind {
	case MarkerHeading:
		return strings.Repeat("#", b.Level) + " "
	case MarkerQuote:
		return "> "
	case MarkerUnordered:
		return "- "
	case MarkerOrdered:
		return fmt.Sprintf("%d. ", b.Level)
	case MarkerTask:
		if b.Checked {
			return "- [x] "
		}
		return "- [ ] "
	default:
		return ""
	}
}

// String returns a human-readable representation of the marker.
func (b BlockMarker) String() string {
	switch b.Kind {
	case MarkerHeading, MarkerOrdered:
		return fmt.Sprintf("%s(%d)", b.Kind, b.Level)
	default:
		return b.Kind.String()
	}
}

// ParseBlockMarker recognizes the first block marker of line.
// Leading spaces and tabs are allowed. It returns the marker and the text
// after it with the separating whitespace removed. When no marker is
// present it returns MarkerNone and line unchanged.
func ParseBlockMarker(line string) (BlockMarker, string) {
	s := strings.TrimLeft(line, " \t")
	if s == "" {
		return BlockMarker{}, line
	}

	switch c := s[0]; {
	case c == '#':
		n := len(s) - len(strings.TrimLeft(s, "#"))
		if n <= 6 && separated(s, n) {
			return Heading(n), trimSep(s[n:])
		}

	case c == '>':
		return Quote, trimSep(s[1:])

	case c == '-' || c == '*' || c == '+':
		if !separated(s, 1) {
			break
		}
		if task, rest, ok := parseTaskBox(trimSep(s[1:])); ok {
			return task, rest
		}
		return Unordered, trimSep(s[1:])

	case c >= '0' && c <= '9':
		n := len(s) - len(strings.TrimLeft(s, "0123456789"))
		if n > 9 || n >= len(s) || (s[n] != '.' && s[n] != ')') || !separated(s, n+1) {
			break
		}
		level := 0
		for _, d := range s[:n] {
			level = level*10 + int(d-'0')
		}
		return BlockMarker{Kind: MarkerOrdered, Level: level}, trimSep(s[n+1:])
	}

	return BlockMarker{}, line
}

// parseTaskBox recognizes "[ ]", "[x]" or "[X]" followed by whitespace or
// the end of the line.
func parseTaskBox(s string) (BlockMarker, string, bool) {
	if len(s) < 3 || s[0] != '[' || s[2] != ']' || !separated(s, 3) {
		return BlockMarker{}, "", false
	}
	switch s[1] {
	case ' ':
		return Task, trimSep(s[3:]), true
	case 'x', 'X':
		return BlockMarker{Kind: MarkerTask, Checked: true}, trimSep(s[3:]), true
	}
	return BlockMarker{}, "", false
}

// separated reports whether s[:n] is followed by whitespace or the end.
func separated(s string, n int) bool {
	return n == len(s) || s[n] == ' ' || s[n] == '\t'
}

func trimSep(s string) string {
	return strings.TrimLeft(s, " \t")
}

// StripBlockMarkers removes every leading block marker of line, so
// "> - [ ] item" becomes "item". Leading indentation is removed as well.
func StripBlockMarkers(line string) string {
	s := line
	for {
		marker, rest := ParseBlockMarker(s)
		if marker.Kind == MarkerNone {
			return strings.TrimLeft(s, " \t")
		}
		s = rest
	}
}

// BlockMarkers returns the chain of leading markers of line, outermost
// first.
func BlockMarkers(line string) []BlockMarker {
	var markers []BlockMarker
	s := line
	for {
		marker, rest := ParseBlockMarker(s)
		if marker.Kind == MarkerNone {
			return markers
		}
		markers = append(markers, marker)
		s = rest
	}
}
