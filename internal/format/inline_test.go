package format

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/marksmith/internal/engine/buffer"
	"github.com/dshills/marksmith/internal/engine/selection"
	"github.com/dshills/marksmith/internal/engine/txn"
)

type toggleFunc func(doc string, set selection.Set) txn.Transaction

func TestToggleStrongCaret(t *testing.T) {
	tx := ToggleStrong("Hello", carets(5))

	want := []buffer.Edit{buffer.NewInsert(5, "****")}
	if diff := cmp.Diff(want, tx.Edits); diff != "" {
		t.Errorf("edits mismatch (-want +got):\n%s", diff)
	}

	got := apply(t, "Hello", tx)
	if got != "Hello****" {
		t.Errorf("expected %q, got %q", "Hello****", got)
	}
	if tx.Selection.Primary() != selection.NewCursor(7) {
		t.Errorf("expected caret at 7, got %s", tx.Selection.Primary())
	}
}

func TestToggleInline(t *testing.T) {
	tests := []struct {
		name    string
		toggle  toggleFunc
		doc     string
		sel     selection.Selection
		want    string
		wantSel selection.Selection
	}{
		{
			name:    "wrap emphasis",
			toggle:  ToggleEmphasis,
			doc:     "say hello",
			sel:     selection.New(4, 9),
			want:    "say *hello*",
			wantSel: selection.New(5, 10),
		},
		{
			name:    "backward selection wraps",
			toggle:  ToggleCode,
			doc:     "x := 1",
			sel:     selection.New(6, 0),
			want:    "`x := 1`",
			wantSel: selection.New(1, 7),
		},
		{
			name:    "unwrap strong inside selection",
			toggle:  ToggleStrong,
			doc:     "a **b** c",
			sel:     selection.New(2, 7),
			want:    "a b c",
			wantSel: selection.New(2, 3),
		},
		{
			name:    "underline uses distinct end marker",
			toggle:  ToggleUnderline,
			doc:     "text",
			sel:     selection.New(0, 4),
			want:    "<u>text</u>",
			wantSel: selection.New(3, 7),
		},
		{
			name:    "markers outside the selection are not inspected",
			toggle:  ToggleStrikethrough,
			doc:     "a ~~b~~ c",
			sel:     selection.New(4, 5),
			want:    "a ~~~~b~~~~ c",
			wantSel: selection.New(6, 7),
		},
		{
			name:    "bare marker pair is wrapped",
			toggle:  ToggleStrong,
			doc:     "**",
			sel:     selection.New(0, 2),
			want:    "******",
			wantSel: selection.New(2, 4),
		},
		{
			name:    "emphasis inside strong wraps again",
			toggle:  ToggleEmphasis,
			doc:     "**b**",
			sel:     selection.New(2, 3),
			want:    "***b***",
			wantSel: selection.New(3, 4),
		},
		{
			name:    "caret between markers wraps",
			toggle:  ToggleStrong,
			doc:     "Hello****",
			sel:     selection.NewCursor(7),
			want:    "Hello********",
			wantSel: selection.NewCursor(9),
		},
		{
			name:    "selected empty strong pair unwraps to a caret",
			toggle:  ToggleStrong,
			doc:     "Hello****",
			sel:     selection.New(5, 9),
			want:    "Hello",
			wantSel: selection.NewCursor(5),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := tt.toggle(tt.doc, selection.Single(tt.sel))
			got := apply(t, tt.doc, tx)
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
			if sel := tx.Selection.Primary(); sel != tt.wantSel {
				t.Errorf("expected selection %s, got %s", tt.wantSel, sel)
			}
		})
	}
}

func TestToggleInlineMultipleRanges(t *testing.T) {
	doc := "one two three"
	set := selection.NewSet(selection.New(0, 3), selection.NewCursor(7), selection.New(8, 13))

	tx := ToggleEmphasis(doc, set)
	got := apply(t, doc, tx)
	if got != "*one* two** *three*" {
		t.Errorf("unexpected text %q", got)
	}

	want := []selection.Selection{
		selection.New(1, 4),
		selection.NewCursor(10),
		selection.New(13, 18),
	}
	if diff := cmp.Diff(want, tx.Selection.All()); diff != "" {
		t.Errorf("selection mismatch (-want +got):\n%s", diff)
	}
}

func TestToggleInlineTwiceRestores(t *testing.T) {
	toggles := map[string]toggleFunc{
		"strong":        ToggleStrong,
		"emphasis":      ToggleEmphasis,
		"underline":     ToggleUnderline,
		"strikethrough": ToggleStrikethrough,
		"code":          ToggleCode,
	}
	rng := rand.New(rand.NewSource(7))

	for name, toggle := range toggles {
		t.Run(name, func(t *testing.T) {
			for i := 0; i < 200; i++ {
				doc := randomText(rng, "ab c\n", 12)
				sel := randomSelection(rng, len(doc))

				first := toggle(doc, selection.Single(sel))
				mid := apply(t, doc, first)

				// Select the wrapped text, markers included, and toggle again.
				added := buffer.ByteOffset(len(mid) - len(doc))
				wrapped := selection.New(sel.Start(), sel.End()+added)
				second := toggle(mid, selection.Single(wrapped))
				got := apply(t, mid, second)

				if got != doc {
					t.Fatalf("%q %s: expected %q after two toggles, got %q", doc, sel, doc, got)
				}
				if second.Selection.Primary().Range() != sel.Range() {
					t.Fatalf("%q: expected selection %s, got %s", doc, sel, second.Selection.Primary())
				}
			}
		})
	}
}

func TestToggleInlineSelectionValidity(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	toggles := []toggleFunc{ToggleStrong, ToggleEmphasis, ToggleUnderline, ToggleCode}

	for i := 0; i < 500; i++ {
		doc := randomText(rng, "ab*~`<u> \n", 16)
		set := randomSet(rng, len(doc))
		toggle := toggles[rng.Intn(len(toggles))]

		// apply checks sortedness, overlap and bounds.
		apply(t, doc, toggle(doc, set))
	}
}

func TestInsertLink(t *testing.T) {
	tests := []struct {
		name    string
		insert  toggleFunc
		doc     string
		sel     selection.Selection
		want    string
		wantSel selection.Selection
	}{
		{"link around text", InsertLink, "see docs", selection.New(4, 8), "see [docs](url)", selection.New(5, 9)},
		{"link at caret", InsertLink, "x", selection.NewCursor(1), "x[](url)", selection.NewCursor(2)},
		{"image around text", InsertImage, "logo", selection.New(0, 4), "![logo](url)", selection.New(2, 6)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := tt.insert(tt.doc, selection.Single(tt.sel))
			got := apply(t, tt.doc, tx)
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
			if sel := tx.Selection.Primary(); sel != tt.wantSel {
				t.Errorf("expected selection %s, got %s", tt.wantSel, sel)
			}
		})
	}
}

func randomText(rng *rand.Rand, alphabet string, maxLen int) string {
	n := rng.Intn(maxLen + 1)
	b := make([]byte, n)
	for i := range b {
		b[i] = alphabet[rng.Intn(len(alphabet))]
	}
	return string(b)
}

func randomSelection(rng *rand.Rand, docLen int) selection.Selection {
	a := buffer.ByteOffset(rng.Intn(docLen + 1))
	h := buffer.ByteOffset(rng.Intn(docLen + 1))
	return selection.New(a, h)
}

func randomSet(rng *rand.Rand, docLen int) selection.Set {
	n := 1 + rng.Intn(4)
	sels := make([]selection.Selection, n)
	for i := range sels {
		sels[i] = randomSelection(rng, docLen)
	}
	return selection.NewSet(sels...)
}
