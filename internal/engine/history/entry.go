package history

import (
	"time"

	"github.com/dshills/marksmith/internal/engine/buffer"
	"github.com/dshills/marksmith/internal/engine/selection"
	"github.com/dshills/marksmith/internal/engine/txn"
)

// Entry is one undoable unit.
type Entry struct {
	Name      string
	Forward   txn.Transaction
	Inverse   txn.Transaction
	Timestamp time.Time
}

// Record pairs tx with the transaction that reverts it. doc is the text tx
// applies to and before the selection prior to tx.
func Record(name, doc string, tx txn.Transaction, before selection.Set) Entry {
	return Entry{
		Name:      name,
		Forward:   tx,
		Inverse:   Invert(doc, tx, before),
		Timestamp: time.Now(),
	}
}

// Invert returns the transaction that turns the result of tx back into doc
// and restores before as the selection.
func Invert(doc string, tx txn.Transaction, before selection.Set) txn.Transaction {
	edits := make([]buffer.Edit, 0, len(tx.Edits))
	var delta buffer.ByteOffset
	for _, edit := range tx.Edits {
		start := edit.Range.Start + delta
		edits = append(edits, buffer.Edit{
			Range:   buffer.Range{Start: start, End: start + buffer.ByteOffset(len(edit.NewText))},
			NewText: edit.Range.Slice(doc),
		})
		delta += edit.Delta()
	}
	return txn.New(edits, before)
}

// OperationInfo describes an entry without exposing its edits.
type OperationInfo struct {
	Description string
	Timestamp   time.Time
}

func (e Entry) info() OperationInfo {
	return OperationInfo{Description: e.Name, Timestamp: e.Timestamp}
}
