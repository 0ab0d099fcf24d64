package table

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/dshills/marksmith/internal/engine/buffer"
	"github.com/dshills/marksmith/internal/logging"
	"github.com/dshills/marksmith/internal/markdown"
)

// ErrStaleChange is returned by Change.Commit when another change was
// committed after it was prepared.
var ErrStaleChange = errors.New("table changed since the edit was prepared")

// Handle identifies a table opened in a Synchronizer.
type Handle string

// ChangeFunc is called after a table was written back. raw and occurrence
// identify the table as it was before the edit.
type ChangeFunc func(raw string, occurrence int, header []string, rows [][]string)

// MutateFunc edits a model and reports whether it changed anything.
type MutateFunc func(m *Model) bool

// anchor records where an open table was last seen.
type anchor struct {
	span       buffer.Range
	raw        string
	occurrence int
	model      *Model
}

// Synchronizer keeps open table models bound to their place in a document.
//
// Each model is addressed by a Handle instead of by its source text. After
// a table is written back, the anchors of the other open tables are moved
// so that later edits still find them. A Synchronizer is safe for
// concurrent use.
type Synchronizer struct {
	mu            sync.Mutex
	anchors       map[Handle]*anchor
	onChange      []ChangeFunc
	preserveAlign bool
	logger        *logging.Logger
	version       uint64 // committed changes
}

// Option configures a Synchronizer.
type Option func(*Synchronizer)

// WithPreserveAlign keeps column alignments in the delimiter row when
// tables are written back.
func WithPreserveAlign(preserve bool) Option {
	return func(s *Synchronizer) {
		s.preserveAlign = preserve
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(s *Synchronizer) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewSynchronizer creates an empty synchronizer.
func NewSynchronizer(opts ...Option) *Synchronizer {
	s := &Synchronizer{
		anchors: make(map[Handle]*anchor),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = logging.For(s.logger, logging.ComponentTable)
	return s
}

// Open starts tracking seg and returns its handle.
func (s *Synchronizer) Open(seg markdown.TableSegment) Handle {
	h := Handle(uuid.New().String())

	s.mu.Lock()
	defer s.mu.Unlock()
	s.anchors[h] = &anchor{
		span:       seg.Span,
		raw:        seg.Raw,
		occurrence: seg.Occurrence,
		model:      FromSegment(seg),
	}
	s.logger.WithTable(string(h)).Debug("opened table %d at %s", seg.ID, seg.Span)
	return h
}

// OpenAll opens every table of segs, in document order.
func (s *Synchronizer) OpenAll(segs []markdown.Segment) []Handle {
	var handles []Handle
	for _, t := range markdown.Tables(segs) {
		handles = append(handles, s.Open(t))
	}
	return handles
}

// Close stops tracking h.
func (s *Synchronizer) Close(h Handle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.anchors, h)
}

// Reset closes every open table.
func (s *Synchronizer) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.anchors = make(map[Handle]*anchor)
}

// Len returns the number of open tables.
func (s *Synchronizer) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.anchors)
}

// Model returns a copy of the model of h.
func (s *Synchronizer) Model(h Handle) (*Model, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.anchors[h]
	if !ok {
		return nil, false
	}
	return a.model.Clone(), true
}

// Span returns the last known span of h.
func (s *Synchronizer) Span(h Handle) (buffer.Range, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.anchors[h]
	if !ok {
		return buffer.Range{}, false
	}
	return a.span, true
}

// OnChange registers fn to be called after every committed change.
func (s *Synchronizer) OnChange(fn ChangeFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = append(s.onChange, fn)
}

// Apply runs mutate on the model of h and writes the result into doc.
//
// It returns doc unchanged and false when h is unknown, when mutate
// refuses the edit, or when the table can no longer be found in doc.
func (s *Synchronizer) Apply(doc string, h Handle, mutate MutateFunc) (string, bool) {
	c, ok := s.Prepare(doc, h, mutate)
	if !ok {
		return doc, false
	}
	if err := c.Commit(); err != nil {
		s.logger.WithTable(string(h)).Debug("%v", err)
		return doc, false
	}
	return c.Doc, true
}

// Change is a table edit computed by Prepare. The synchronizer is not
// updated until Commit, so a change the caller fails to write can simply
// be dropped.
type Change struct {
	// Doc is the document with the table rewritten.
	Doc string

	s             *Synchronizer
	h             Handle
	version       uint64
	at, written   buffer.Range
	text          string
	model         *Model
	oldRaw        string
	oldOccurrence int
}

// Prepare runs mutate on a copy of the model of h and computes the
// rewritten document without recording it.
//
// It returns false when h is unknown, when mutate refuses the edit, or
// when the table can no longer be found in doc.
func (s *Synchronizer) Prepare(doc string, h Handle, mutate MutateFunc) (*Change, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.anchors[h]
	if !ok {
		s.logger.WithTable(string(h)).Debug("unknown handle")
		return nil, false
	}

	model := a.model.Clone()
	if !mutate(model) {
		return nil, false
	}

	text := model.Markdown(s.preserveAlign)
	at, found := Locate(doc, a.span, a.raw, a.occurrence)
	if !found {
		s.logger.WithTable(string(h)).Debug("not found at %s (occurrence %d)", a.span, a.occurrence)
		return nil, false
	}
	out, written := Replace(doc, at, text)
	return &Change{
		Doc:           out,
		s:             s,
		h:             h,
		version:       s.version,
		at:            at,
		written:       written,
		text:          text,
		model:         model,
		oldRaw:        a.raw,
		oldOccurrence: a.occurrence,
	}, true
}

// Commit records c: the model and anchor of its table are replaced and
// the anchors of tables after it are moved. It fails with ErrStaleChange
// when another change was committed since c was prepared.
func (c *Change) Commit() error {
	s := c.s
	s.mu.Lock()
	if s.version != c.version {
		s.mu.Unlock()
		return ErrStaleChange
	}
	s.version++

	delta := c.written.Len() - c.at.Len()
	if a, ok := s.anchors[c.h]; ok {
		a.span, a.raw, a.model = c.written, c.text, c.model
	}
	for other, b := range s.anchors {
		if other != c.h && b.span.Start >= c.at.End {
			b.span = b.span.Shift(delta)
		}
	}
	for _, b := range s.anchors {
		if b.span.Slice(c.Doc) == b.raw {
			b.occurrence = OccurrenceAt(c.Doc, b.raw, b.span.Start)
		}
	}

	callbacks := append([]ChangeFunc(nil), s.onChange...)
	header := append([]string(nil), c.model.Header...)
	rows := c.model.Clone().Rows
	s.mu.Unlock()

	s.logger.WithTable(string(c.h)).Debug("patched at %s", c.written)
	for _, fn := range callbacks {
		fn(c.oldRaw, c.oldOccurrence, header, rows)
	}
	return nil
}

// Edit applies mutate to seg and patches doc by source text and
// occurrence, without tracking the table.
func Edit(doc string, seg markdown.TableSegment, mutate MutateFunc) string {
	m := FromSegment(seg)
	if !mutate(m) {
		return doc
	}
	return Patch(doc, seg.Raw, seg.Occurrence, m.Header, m.Rows)
}
