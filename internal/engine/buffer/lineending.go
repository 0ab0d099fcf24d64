package buffer

import "strings"

// LineEnding specifies the line ending style of a document's source.
type LineEnding uint8

const (
	LineEndingLF   LineEnding = iota // Unix: \n
	LineEndingCRLF                   // Windows: \r\n
)

// String returns the string representation of the line ending.
func (le LineEnding) String() string {
	switch le {
	case LineEndingCRLF:
		return "\\r\\n"
	default:
		return "\\n"
	}
}

// Sequence returns the actual line ending characters.
func (le LineEnding) Sequence() string {
	switch le {
	case LineEndingCRLF:
		return "\r\n"
	default:
		return "\n"
	}
}

// Restore converts LF-terminated text back to le.
func (le LineEnding) Restore(text string) string {
	if le == LineEndingLF {
		return text
	}
	return strings.ReplaceAll(text, "\n", le.Sequence())
}

// DetectLineEnding returns LineEndingCRLF when CRLF terminators outnumber
// bare LF ones, and LineEndingLF otherwise.
func DetectLineEnding(text string) LineEnding {
	var lfCount, crlfCount int

	for i := 0; i < len(text); i++ {
		if text[i] != '\n' {
			continue
		}
		if i > 0 && text[i-1] == '\r' {
			crlfCount++
		} else {
			lfCount++
		}
	}

	if crlfCount > lfCount {
		return LineEndingCRLF
	}
	return LineEndingLF
}

// NormalizeLineEndings converts CRLF terminators to LF.
func NormalizeLineEndings(text string) string {
	return strings.ReplaceAll(text, "\r\n", "\n")
}
