package engine

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/rivo/uniseg"

	"github.com/dshills/marksmith/internal/engine/buffer"
	"github.com/dshills/marksmith/internal/engine/history"
	"github.com/dshills/marksmith/internal/engine/selection"
	"github.com/dshills/marksmith/internal/engine/txn"
	"github.com/dshills/marksmith/internal/logging"
	"github.com/dshills/marksmith/internal/markdown"
	"github.com/dshills/marksmith/internal/table"
)

// Re-export commonly used types for convenience.
type (
	ByteOffset = buffer.ByteOffset
	Range      = buffer.Range
	Edit       = buffer.Edit
	RevisionID = buffer.RevisionID
)

// ChangeFunc receives the document after every applied change.
type ChangeFunc func(text string)

// Engine is the live document of one editing session.
// All methods are thread-safe.
type Engine struct {
	mu sync.RWMutex

	buf        *buffer.Buffer
	lineEnding buffer.LineEnding
	selection  selection.Set
	history   *history.History
	parser    *markdown.Parser
	logger    *logging.Logger
	listeners []ChangeFunc

	readOnly         bool
	maxUndoEntries   int
	initialContent   string
	initialSelection *selection.Set
}

// New creates a new engine with the given options.
func New(opts ...Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}

	e.lineEnding = buffer.DetectLineEnding(e.initialContent)
	e.buf = buffer.NewBuffer(e.initialContent)
	e.history = history.NewHistory(e.maxUndoEntries)
	if e.parser == nil {
		e.parser = markdown.NewParser()
	}
	e.logger = logging.For(e.logger, logging.ComponentEngine)

	if e.initialSelection != nil {
		e.selection = e.initialSelection.ClampIn(e.buf.Text())
	} else {
		e.selection = selection.Single(selection.NewCursor(0))
	}
	e.initialContent = ""
	e.initialSelection = nil
	return e
}

// Text returns the current document. Lines always end in LF.
func (e *Engine) Text() string {
	return e.buf.Text()
}

// LineEnding returns the terminator style detected in the initial content.
func (e *Engine) LineEnding() buffer.LineEnding {
	return e.lineEnding
}

// Export returns the current document with the detected line ending
// restored.
func (e *Engine) Export() string {
	return e.lineEnding.Restore(e.buf.Text())
}

// TextRange returns the text in [start, end).
func (e *Engine) TextRange(start, end ByteOffset) string {
	return e.buf.TextRange(start, end)
}

// Len returns the document length in bytes.
func (e *Engine) Len() ByteOffset {
	return e.buf.Len()
}

// LineCount returns the number of lines.
func (e *Engine) LineCount() int {
	return e.buf.LineCount()
}

// IsEmpty reports whether the document is empty.
func (e *Engine) IsEmpty() bool {
	return e.buf.IsEmpty()
}

// RevisionID identifies the current document revision.
func (e *Engine) RevisionID() RevisionID {
	return e.buf.RevisionID()
}

// IsReadOnly reports whether text changes are rejected.
func (e *Engine) IsReadOnly() bool {
	return e.readOnly
}

// Selection returns the current selection set.
func (e *Engine) Selection() selection.Set {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.selection
}

// SetSelection replaces the selection set. Every offset must lie within the
// document on a character boundary.
func (e *Engine) SetSelection(set selection.Set) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !set.ValidIn(e.buf.Text()) {
		return ErrInvalidSelection
	}
	e.selection = set
	return nil
}

// OnChange registers fn to be called with the new text after every change.
func (e *Engine) OnChange(fn ChangeFunc) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.listeners = append(e.listeners, fn)
}

// Dispatch applies tx, which must have been computed against Text.
// A transaction without edits only updates the selection and is allowed on a
// read-only engine.
func (e *Engine) Dispatch(tx txn.Transaction) error {
	return e.DispatchNamed("", tx)
}

// DispatchNamed is Dispatch with a name recorded in the undo history.
func (e *Engine) DispatchNamed(name string, tx txn.Transaction) error {
	return e.dispatch(name, nil, tx)
}

// dispatch applies tx. If base is not nil the document must still equal it.
func (e *Engine) dispatch(name string, base *string, tx txn.Transaction) error {
	e.mu.Lock()
	doc := e.buf.Text()
	if base != nil && doc != *base {
		e.mu.Unlock()
		return ErrConcurrentEdit
	}
	if tx.IsEmpty() {
		e.selection = tx.Selection.ClampIn(doc)
		e.mu.Unlock()
		return nil
	}
	if e.readOnly {
		e.mu.Unlock()
		return ErrReadOnly
	}

	before := e.selection
	if err := e.applyLocked(tx); err != nil {
		e.mu.Unlock()
		e.logger.WithCommand(name).Debug("rejected: %v", err)
		return err
	}
	e.history.Push(history.Record(name, doc, tx, before))
	text, listeners := e.buf.Text(), e.listeners
	e.mu.Unlock()

	e.logger.WithCommand(name).Debug("applied %d edits, delta %d", len(tx.Edits), tx.Delta())
	notify(listeners, text)
	return nil
}

// applyLocked validates and applies tx. e.mu must be held.
func (e *Engine) applyLocked(tx txn.Transaction) error {
	for _, edit := range tx.Edits {
		if strings.Contains(edit.NewText, "\r") {
			return ErrCarriageReturn
		}
	}
	if err := e.buf.ApplyEdits(tx.Reversed()); err != nil {
		return fmt.Errorf("apply transaction: %w", err)
	}
	e.selection = tx.Selection.ClampIn(e.buf.Text())
	return nil
}

// ReplaceAll sets the document to text. Only the differing middle is
// replaced, so selections before and after it keep their positions.
func (e *Engine) ReplaceAll(text string) error {
	e.mu.RLock()
	doc, set := e.buf.Text(), e.selection
	e.mu.RUnlock()

	text = buffer.NormalizeLineEndings(text)
	tx, ok := diff(doc, text, set)
	if !ok {
		return nil
	}
	return e.dispatch("replace-all", &doc, tx)
}

// diff returns the single edit turning doc into text, with set mapped
// through it. The edit starts and ends on grapheme cluster boundaries of
// both documents. ok is false when the documents are equal.
func diff(doc, text string, set selection.Set) (tx txn.Transaction, ok bool) {
	if doc == text {
		return txn.Transaction{}, false
	}
	docBounds, textBounds := graphemeBounds(doc), graphemeBounds(text)

	prefix := 0
	for prefix < len(doc) && prefix < len(text) && doc[prefix] == text[prefix] {
		prefix++
	}
	for prefix > 0 && !(isBound(docBounds, prefix) && isBound(textBounds, prefix)) {
		prefix--
	}

	suffix := 0
	for suffix < len(doc)-prefix && suffix < len(text)-prefix &&
		doc[len(doc)-1-suffix] == text[len(text)-1-suffix] {
		suffix++
	}
	for suffix > 0 && !(isBound(docBounds, len(doc)-suffix) && isBound(textBounds, len(text)-suffix)) {
		suffix--
	}

	edit := buffer.NewEdit(
		Range{Start: ByteOffset(prefix), End: ByteOffset(len(doc) - suffix)},
		text[prefix:len(text)-suffix],
	)
	edits := []buffer.Edit{edit}
	return txn.New(edits, selection.TransformSet(set, edits)), true
}

// graphemeBounds returns the ascending byte offsets at which grapheme
// clusters of s start, plus len(s).
func graphemeBounds(s string) []int {
	bounds := []int{0}
	state := -1
	for rest, off := s, 0; rest != ""; {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		off += len(cluster)
		bounds = append(bounds, off)
	}
	return bounds
}

func isBound(bounds []int, off int) bool {
	i := sort.SearchInts(bounds, off)
	return i < len(bounds) && bounds[i] == off
}

// Undo reverts the most recent change.
func (e *Engine) Undo() error {
	return e.step(e.history.Undo, func(en history.Entry) txn.Transaction { return en.Inverse })
}

// Redo reapplies the most recently undone change.
func (e *Engine) Redo() error {
	return e.step(e.history.Redo, func(en history.Entry) txn.Transaction { return en.Forward })
}

func (e *Engine) step(pop func(history.ApplyFunc) error, side func(history.Entry) txn.Transaction) error {
	if e.readOnly {
		return ErrReadOnly
	}

	var (
		text      string
		listeners []ChangeFunc
	)
	err := pop(func(en history.Entry) error {
		e.mu.Lock()
		defer e.mu.Unlock()
		if err := e.applyLocked(side(en)); err != nil {
			return err
		}
		text, listeners = e.buf.Text(), e.listeners
		return nil
	})
	if err != nil {
		return err
	}
	notify(listeners, text)
	return nil
}

// CanUndo reports whether Undo has anything to revert.
func (e *Engine) CanUndo() bool { return e.history.CanUndo() }

// CanRedo reports whether Redo has anything to reapply.
func (e *Engine) CanRedo() bool { return e.history.CanRedo() }

// UndoCount returns the number of undo entries.
func (e *Engine) UndoCount() int { return e.history.UndoCount() }

// ClearHistory drops all undo and redo entries.
func (e *Engine) ClearHistory() { e.history.Clear() }

// Segments parses the current document into table and non-table segments.
func (e *Engine) Segments() []markdown.Segment {
	segs := e.parser.Parse(e.Text())
	e.logger.Debug("parsed %d segments", len(segs))
	return segs
}

// Tables returns the table segments of the current document.
func (e *Engine) Tables() []markdown.TableSegment {
	return markdown.Tables(e.Segments())
}

// EditTable applies mutate to the table behind h and writes the result into
// the document as one undoable change. It reports whether the document
// changed. s only records the edit once it is in the document, so a
// failed dispatch leaves h usable.
func (e *Engine) EditTable(s *table.Synchronizer, h table.Handle, mutate table.MutateFunc) (bool, error) {
	if e.readOnly {
		return false, ErrReadOnly
	}
	doc := e.Text()
	c, ok := s.Prepare(doc, h, mutate)
	if !ok {
		return false, nil
	}

	e.mu.RLock()
	set := e.selection
	e.mu.RUnlock()
	tx, changed := diff(doc, c.Doc, set)
	if !changed {
		return false, c.Commit()
	}
	if err := e.dispatch("table", &doc, tx); err != nil {
		return false, err
	}
	if err := c.Commit(); err != nil {
		return true, fmt.Errorf("table %s: %w", h, err)
	}
	return true, nil
}

func notify(listeners []ChangeFunc, text string) {
	for _, fn := range listeners {
		fn(text)
	}
}
