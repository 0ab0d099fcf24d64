package table

import (
	"testing"

	"github.com/dshills/marksmith/internal/engine/buffer"
)

const twoTables = "| x |\n| --- |\n| 1 |\n\nmiddle\n\n| x |\n| --- |\n| 1 |\n"

func TestPatchReplacesOnlyRequestedOccurrence(t *testing.T) {
	raw := "| x |\n| --- |\n| 1 |"

	got := Patch(twoTables, raw, 1, []string{"x"}, [][]string{{"2"}})
	want := "| x |\n| --- |\n| 1 |\n\nmiddle\n\n| x |\n| --- |\n| 2 |\n"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}

	got = Patch(twoTables, raw, 0, []string{"y"}, [][]string{{"1"}})
	want = "| y |\n| --- |\n| 1 |\n\nmiddle\n\n| x |\n| --- |\n| 1 |\n"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestPatchStaleAnchorIsNoOp(t *testing.T) {
	doc := "intro\n\n| a |\n| --- |\n| 1 |"
	raw := "| a |\n| --- |\n| 1 |"

	for _, occurrence := range []int{1, 2, -1} {
		if got := Patch(doc, raw, occurrence, []string{"b"}, [][]string{{"2"}}); got != doc {
			t.Errorf("occurrence %d: expected unchanged document, got %q", occurrence, got)
		}
	}
	if got := Patch(doc, "| gone |", 0, []string{"b"}, nil); got != doc {
		t.Errorf("expected unchanged document, got %q", got)
	}
	if got := Patch(doc, "", 0, []string{"b"}, nil); got != doc {
		t.Errorf("expected unchanged document for empty raw, got %q", got)
	}
}

func TestFindAndOccurrenceAt(t *testing.T) {
	doc := "aaXaaXaa"

	span, ok := Find(doc, "aa", 2)
	if !ok || span != buffer.NewRange(6, 8) {
		t.Errorf("expected [6:8), got %s %v", span, ok)
	}
	if _, ok := Find(doc, "aa", 3); ok {
		t.Error("expected no fourth occurrence")
	}
	// Matches do not overlap.
	if _, ok := Find("aaa", "aa", 1); ok {
		t.Error("expected overlapping match to be skipped")
	}

	if n := OccurrenceAt(doc, "aa", 6); n != 2 {
		t.Errorf("expected 2 matches before 6, got %d", n)
	}
	if n := OccurrenceAt(doc, "aa", 0); n != 0 {
		t.Errorf("expected 0 matches before 0, got %d", n)
	}
}

func TestPatchSpan(t *testing.T) {
	raw := "| x |\n| --- |\n| 1 |"
	second := buffer.NewRange(29, 29+buffer.ByteOffset(len(raw)))
	if second.Slice(twoTables) != raw {
		t.Fatalf("bad fixture span %s", second)
	}

	out, written, ok := PatchSpan(twoTables, second, raw, 0, "T")
	if !ok {
		t.Fatal("expected table to be found")
	}
	if out != "| x |\n| --- |\n| 1 |\n\nmiddle\n\nT\n" {
		t.Errorf("span should win over occurrence, got %q", out)
	}
	if written != buffer.NewRange(29, 30) {
		t.Errorf("unexpected written span %s", written)
	}

	// A moved document falls back to the occurrence.
	moved := "new text\n" + twoTables
	out, _, ok = PatchSpan(moved, second, raw, 1, "T")
	if !ok || out != "new text\n| x |\n| --- |\n| 1 |\n\nmiddle\n\nT\n" {
		t.Errorf("expected fallback to occurrence 1, got %q %v", out, ok)
	}

	if out, _, ok := PatchSpan("nothing", second, raw, 0, "T"); ok || out != "nothing" {
		t.Errorf("expected no-op, got %q %v", out, ok)
	}
}
