package history

import (
	"errors"
	"testing"

	"github.com/dshills/marksmith/internal/engine/buffer"
	"github.com/dshills/marksmith/internal/engine/selection"
	"github.com/dshills/marksmith/internal/engine/txn"
)

func mustApply(t *testing.T, doc string, tx txn.Transaction) string {
	t.Helper()
	out, err := tx.Apply(doc)
	if err != nil {
		t.Fatalf("Apply(%q): %v", doc, err)
	}
	return out
}

func TestInvertRestoresDocument(t *testing.T) {
	doc := "alpha beta gamma"
	before := selection.NewSet(selection.New(0, 5), selection.New(11, 16))
	tx := txn.New([]buffer.Edit{
		buffer.NewEdit(buffer.Range{Start: 0, End: 0}, "**"),
		buffer.NewEdit(buffer.Range{Start: 5, End: 5}, "**"),
		buffer.NewEdit(buffer.Range{Start: 6, End: 10}, ""),
		buffer.NewEdit(buffer.Range{Start: 11, End: 16}, "GAMMA!"),
	}, selection.NewSet(selection.New(2, 7)))

	after := mustApply(t, doc, tx)
	if after != "**alpha**  GAMMA!" {
		t.Fatalf("forward = %q", after)
	}

	inv := Invert(doc, tx, before)
	if got := mustApply(t, after, inv); got != doc {
		t.Errorf("inverse = %q, want %q", got, doc)
	}
	if !inv.Selection.Equals(before) {
		t.Errorf("inverse selection = %v, want %v", inv.Selection, before)
	}
}

func TestHistoryUndoRedo(t *testing.T) {
	h := NewHistory(0)
	if h.MaxEntries() != DefaultMaxEntries {
		t.Errorf("MaxEntries = %d", h.MaxEntries())
	}
	if err := h.Undo(func(Entry) error { return nil }); !errors.Is(err, ErrNothingToUndo) {
		t.Errorf("Undo on empty = %v", err)
	}

	h.Push(Entry{Name: "one"})
	h.Push(Entry{Name: "two"})

	var applied []string
	record := func(e Entry) error {
		applied = append(applied, e.Name)
		return nil
	}
	if err := h.Undo(record); err != nil {
		t.Fatal(err)
	}
	if info, ok := h.PeekRedo(); !ok || info.Description != "two" {
		t.Errorf("PeekRedo = %v, %v", info, ok)
	}
	if err := h.Redo(record); err != nil {
		t.Fatal(err)
	}
	if err := h.Redo(record); !errors.Is(err, ErrNothingToRedo) {
		t.Errorf("second Redo = %v", err)
	}
	if len(applied) != 2 || applied[0] != "two" || applied[1] != "two" {
		t.Errorf("applied = %v", applied)
	}
	if h.UndoCount() != 2 || h.RedoCount() != 0 {
		t.Errorf("counts = %d/%d", h.UndoCount(), h.RedoCount())
	}
}

func TestHistoryPushClearsRedo(t *testing.T) {
	h := NewHistory(10)
	h.Push(Entry{Name: "one"})
	_ = h.Undo(func(Entry) error { return nil })
	if !h.CanRedo() {
		t.Fatal("expected redo")
	}
	h.Push(Entry{Name: "two"})
	if h.CanRedo() {
		t.Error("push should clear redo")
	}
}

func TestHistoryRestoresOnFailure(t *testing.T) {
	h := NewHistory(10)
	h.Push(Entry{Name: "one"})
	boom := errors.New("boom")
	if err := h.Undo(func(Entry) error { return boom }); !errors.Is(err, boom) {
		t.Fatalf("Undo = %v", err)
	}
	if !h.CanUndo() || h.CanRedo() {
		t.Error("failed undo should leave stacks unchanged")
	}
}

func TestHistoryMaxEntries(t *testing.T) {
	h := NewHistory(2)
	for _, name := range []string{"a", "b", "c"} {
		h.Push(Entry{Name: name})
	}
	if h.UndoCount() != 2 {
		t.Fatalf("UndoCount = %d", h.UndoCount())
	}
	if info, _ := h.PeekUndo(); info.Description != "c" {
		t.Errorf("PeekUndo = %q", info.Description)
	}
	h.Clear()
	if h.CanUndo() {
		t.Error("Clear left entries")
	}
}
