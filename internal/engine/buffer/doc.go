// Package buffer provides the text primitives shared by the editing engine:
// byte ranges, edits, line lookup and a thread-safe string buffer that
// applies batches of edits atomically.
//
// A Buffer always holds LF-terminated text. DetectLineEnding records the
// source style before NewBuffer normalizes it, and LineEnding.Restore
// converts back on export.
//
// # Offsets
//
// All positions are byte offsets into UTF-8 text. Ranges are half-open,
// [Start, End). RuneToByte and ByteToRune convert between byte offsets and
// character (rune) offsets for callers that count characters.
//
// # Edits
//
// An Edit replaces a Range with new text:
//
//	e := buffer.NewInsert(5, "**")   // insert at offset 5
//	d := buffer.NewDelete(0, 2)      // remove [0, 2)
//	r := buffer.NewEdit(buffer.NewRange(0, 5), "Hi")
//
// Multiple edits against one document are applied with ApplyEdits, which
// expects them in reverse order (highest offset first) so that earlier
// offsets stay valid while later ones are rewritten.
//
// # Lines
//
// LineAt returns the line containing an offset without its terminator:
//
//	line := buffer.LineAt("# Title\nbody", 9)
//	// line.Number == 1, line.Start == 8, line.Text == "body"
package buffer
