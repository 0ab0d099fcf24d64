package format

import (
	"testing"

	"github.com/dshills/marksmith/internal/engine/buffer"
	"github.com/dshills/marksmith/internal/engine/selection"
	"github.com/dshills/marksmith/internal/engine/txn"
)

// apply applies tx to doc and checks the resulting selection invariants.
func apply(t *testing.T, doc string, tx txn.Transaction) string {
	t.Helper()

	got, err := tx.Apply(doc)
	if err != nil {
		t.Fatalf("apply %s: %v", tx, err)
	}
	if !tx.Selection.Valid(buffer.ByteOffset(len(got))) {
		t.Fatalf("selection %s invalid for %q", tx.Selection, got)
	}
	return got
}

func carets(offsets ...buffer.ByteOffset) selection.Set {
	sels := make([]selection.Selection, len(offsets))
	for i, off := range offsets {
		sels[i] = selection.NewCursor(off)
	}
	return selection.NewSet(sels...)
}
