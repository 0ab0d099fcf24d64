package format

import (
	"github.com/dshills/marksmith/internal/engine/buffer"
	"github.com/dshills/marksmith/internal/engine/selection"
	"github.com/dshills/marksmith/internal/engine/txn"
)

// Default block templates.
const (
	TemplateTable = "| Column 1 | Column 2 | Column 3 |\n" +
		"| --- | --- | --- |\n" +
		"| Row 1 | | |\n" +
		"| Row 2 | | |"
	TemplateCodeBlock      = "```\n\n```"
	TemplateMathBlock      = "$$\n\n$$"
	TemplateHorizontalRule = "---\n"
)

// Templates holds the text inserted by the block insertion commands.
type Templates struct {
	Table          string
	CodeBlock      string
	MathBlock      string
	HorizontalRule string
}

// DefaultTemplates returns the built-in templates.
func DefaultTemplates() Templates {
	return Templates{
		Table:          TemplateTable,
		CodeBlock:      TemplateCodeBlock,
		MathBlock:      TemplateMathBlock,
		HorizontalRule: TemplateHorizontalRule,
	}
}

// Merge returns t with empty fields filled from the defaults.
func (t Templates) Merge(defaults Templates) Templates {
	if t.Table == "" {
		t.Table = defaults.Table
	}
	if t.CodeBlock == "" {
		t.CodeBlock = defaults.CodeBlock
	}
	if t.MathBlock == "" {
		t.MathBlock = defaults.MathBlock
	}
	if t.HorizontalRule == "" {
		t.HorizontalRule = defaults.HorizontalRule
	}
	return t
}

// InsertBlock inserts template relative to the line containing caret.
// If that line has content, "\n\n"+template goes after its end; otherwise
// template goes at its start. The caret ends after the inserted text.
func InsertBlock(doc string, caret buffer.ByteOffset, template string) txn.Transaction {
	line := buffer.LineAt(doc, caret)

	pos, text := line.Start, template
	if !line.IsBlank() {
		pos, text = line.End, "\n\n"+template
	}

	return txn.New(
		[]buffer.Edit{buffer.NewInsert(pos, text)},
		selection.Single(selection.NewCursor(pos+buffer.ByteOffset(len(text)))),
	)
}

// InsertTable inserts the table template at the primary selection.
func (t Templates) InsertTable(doc string, set selection.Set) txn.Transaction {
	return InsertBlock(doc, set.Primary().Start(), t.Table)
}

// InsertCodeBlock inserts the fenced code template at the primary selection.
func (t Templates) InsertCodeBlock(doc string, set selection.Set) txn.Transaction {
	return InsertBlock(doc, set.Primary().Start(), t.CodeBlock)
}

// InsertMathBlock inserts the math fence template at the primary selection.
func (t Templates) InsertMathBlock(doc string, set selection.Set) txn.Transaction {
	return InsertBlock(doc, set.Primary().Start(), t.MathBlock)
}

// InsertHorizontalRule inserts the horizontal rule template at the primary
// selection.
func (t Templates) InsertHorizontalRule(doc string, set selection.Set) txn.Transaction {
	return InsertBlock(doc, set.Primary().Start(), t.HorizontalRule)
}
