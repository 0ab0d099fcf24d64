package format

import (
	"testing"

	"github.com/dshills/marksmith/internal/engine/buffer"
	"github.com/dshills/marksmith/internal/engine/selection"
)

func TestInsertBlock(t *testing.T) {
	tests := []struct {
		name  string
		doc   string
		caret buffer.ByteOffset
		want  string
		at    buffer.ByteOffset
	}{
		{"after content line", "Hello\nworld", 2, "Hello\n\n---\n\nworld", 11},
		{"at blank line start", "a\n   \nb", 3, "a\n---\n   \nb", 6},
		{"empty document", "", 0, "---\n", 4},
		{"end of document", "text", 4, "text\n\n---\n", 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := InsertBlock(tt.doc, tt.caret, TemplateHorizontalRule)
			got := apply(t, tt.doc, tx)
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
			if tx.Selection.Primary() != selection.NewCursor(tt.at) {
				t.Errorf("expected caret at %d, got %s", tt.at, tx.Selection.Primary())
			}
		})
	}
}

func TestTemplatesUsePrimarySelection(t *testing.T) {
	tpl := DefaultTemplates()
	doc := "one\ntwo"
	set := selection.NewSet(selection.New(4, 7), selection.NewCursor(0))

	got := apply(t, doc, tpl.InsertCodeBlock(doc, set))
	if want := "one\n\n```\n\n```\ntwo"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestInsertTable(t *testing.T) {
	tx := DefaultTemplates().InsertTable("", carets(0))
	got := apply(t, "", tx)

	if got != TemplateTable {
		t.Errorf("expected table template, got %q", got)
	}
	if tx.Selection.Primary().Head != buffer.ByteOffset(len(TemplateTable)) {
		t.Errorf("expected caret at end of template, got %s", tx.Selection.Primary())
	}
}

func TestTemplatesMerge(t *testing.T) {
	custom := Templates{MathBlock: "\\[\n\n\\]"}.Merge(DefaultTemplates())

	if custom.MathBlock != "\\[\n\n\\]" {
		t.Errorf("custom template overwritten: %q", custom.MathBlock)
	}
	if custom.Table != TemplateTable || custom.CodeBlock != TemplateCodeBlock ||
		custom.HorizontalRule != TemplateHorizontalRule {
		t.Errorf("defaults not filled: %+v", custom)
	}
}
