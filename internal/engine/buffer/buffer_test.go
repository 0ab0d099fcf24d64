package buffer

import (
	"errors"
	"sync"
	"testing"
)

func TestNewBuffer(t *testing.T) {
	b := NewBuffer("")

	if !b.IsEmpty() {
		t.Error("new buffer should be empty")
	}

	if b.Len() != 0 {
		t.Errorf("expected length 0, got %d", b.Len())
	}

	if b.LineCount() != 1 {
		t.Errorf("expected 1 line, got %d", b.LineCount())
	}
}

func TestNewBufferNormalizesCRLF(t *testing.T) {
	b := NewBuffer("| a |\r\n| --- |")

	if b.Text() != "| a |\n| --- |" {
		t.Errorf("expected %q, got %q", "| a |\n| --- |", b.Text())
	}
	if b.LineCount() != 2 {
		t.Errorf("expected 2 lines, got %d", b.LineCount())
	}
	if got := b.TextRange(6, 100); got != "| --- |" {
		t.Errorf("TextRange = %q", got)
	}
}

func TestBufferApplyEdits(t *testing.T) {
	b := NewBuffer("one two three")
	rev := b.RevisionID()

	err := b.ApplyEdits([]Edit{
		NewInsert(13, "**"),
		NewInsert(8, "**"),
		NewDelete(0, 4),
	})
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if b.Text() != "two **three**" {
		t.Errorf("unexpected text %q", b.Text())
	}
	if b.RevisionID() == rev {
		t.Error("revision should change after apply")
	}
}

func TestBufferApplyEditsAtomic(t *testing.T) {
	b := NewBuffer("abc")
	rev := b.RevisionID()

	err := b.ApplyEdits([]Edit{
		NewInsert(3, "x"),
		NewEdit(NewRange(1, 5), "y"),
	})
	if !errors.Is(err, ErrRangeInvalid) {
		t.Fatalf("expected ErrRangeInvalid, got %v", err)
	}
	if b.Text() != "abc" || b.RevisionID() != rev {
		t.Error("failed batch must leave the buffer untouched")
	}
}

func TestApplyEditsOrdering(t *testing.T) {
	tests := []struct {
		name  string
		edits []Edit
		want  string
		err   error
	}{
		{
			name:  "reverse order",
			edits: []Edit{NewInsert(2, "]"), NewInsert(0, "[")},
			want:  "[ab]",
		},
		{
			name:  "same offset inserts keep list order reversed",
			edits: []Edit{NewInsert(1, "B"), NewInsert(1, "A")},
			want:  "aABb",
		},
		{
			name:  "ascending order rejected",
			edits: []Edit{NewInsert(0, "["), NewInsert(2, "]")},
			err:   ErrEditsOverlap,
		},
		{
			name:  "overlap rejected",
			edits: []Edit{NewDelete(1, 2), NewDelete(0, 2)},
			err:   ErrEditsOverlap,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ApplyEdits("ab", tt.edits)
			if tt.err != nil {
				if !errors.Is(err, tt.err) {
					t.Fatalf("expected %v, got %v", tt.err, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestBufferConcurrentReads(t *testing.T) {
	b := NewBuffer("line 1\nline 2\nline 3")

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = b.Text()
			_ = b.TextRange(0, 6)
			_ = b.Len()
		}()
	}
	wg.Wait()
}

func TestDetectLineEnding(t *testing.T) {
	tests := []struct {
		text string
		want LineEnding
	}{
		{"", LineEndingLF},
		{"a\nb\n", LineEndingLF},
		{"a\r\nb\r\n", LineEndingCRLF},
		{"a\r\nb\r\nc\n", LineEndingCRLF},
		{"a\r\nb\nc\n", LineEndingLF},
		{"a\rb", LineEndingLF},
	}
	for _, tt := range tests {
		if got := DetectLineEnding(tt.text); got != tt.want {
			t.Errorf("DetectLineEnding(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestLineEndingRestore(t *testing.T) {
	text := NormalizeLineEndings("# T\r\n\r\nbody\r\n")
	if text != "# T\n\nbody\n" {
		t.Fatalf("NormalizeLineEndings = %q", text)
	}
	if got := LineEndingCRLF.Restore(text); got != "# T\r\n\r\nbody\r\n" {
		t.Errorf("CRLF Restore = %q", got)
	}
	if got := LineEndingLF.Restore(text); got != text {
		t.Errorf("LF Restore = %q", got)
	}
	if LineEndingCRLF.Sequence() != "\r\n" || LineEndingLF.String() != "\\n" {
		t.Errorf("Sequence = %q, String = %q", LineEndingCRLF.Sequence(), LineEndingLF.String())
	}
}
