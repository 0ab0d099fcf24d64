package store

import (
	"errors"
	"sync"
	"time"

	"github.com/dshills/marksmith/internal/logging"
)

// ErrSaverClosed is returned by Flush after Close.
var ErrSaverClosed = errors.New("saver is closed")

// DefaultDelay is the autosave quiet period.
const DefaultDelay = time.Second

// WriteFunc persists a document.
type WriteFunc func(path, text string) error

// Saver writes the latest scheduled text to a file once no new text has been
// scheduled for the configured delay.
type Saver struct {
	path   string
	delay  time.Duration
	write  WriteFunc
	logger *logging.Logger

	mu      sync.Mutex
	timer   *time.Timer
	pending string
	dirty   bool
	closed  bool
	lastErr error
	saves   int
}

// SaverOption configures a Saver.
type SaverOption func(*Saver)

// WithWriteFunc replaces WriteFile as the persistence step.
func WithWriteFunc(fn WriteFunc) SaverOption {
	return func(s *Saver) {
		s.write = fn
	}
}

// WithLogger sets the logger for write results.
func WithLogger(l *logging.Logger) SaverOption {
	return func(s *Saver) {
		s.logger = l
	}
}

// NewSaver creates a saver for path. A non-positive delay uses DefaultDelay.
func NewSaver(path string, delay time.Duration, opts ...SaverOption) *Saver {
	if delay <= 0 {
		delay = DefaultDelay
	}
	s := &Saver{
		path:  path,
		delay: delay,
		write: WriteFile,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = logging.For(s.logger, logging.ComponentSaver).WithPath(path)
	return s
}

// Schedule records text as the document to save and restarts the delay.
// It has the signature of an engine change listener.
func (s *Saver) Schedule(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.pending, s.dirty = text, true
	if s.timer != nil {
		s.timer.Reset(s.delay)
		return
	}
	s.timer = time.AfterFunc(s.delay, func() {
		_ = s.Flush()
	})
}

// Flush writes pending text immediately. It returns the write error, if any;
// a failed write keeps the text pending.
func (s *Saver) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSaverClosed
	}
	return s.flushLocked()
}

func (s *Saver) flushLocked() error {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if !s.dirty {
		return nil
	}
	if err := s.write(s.path, s.pending); err != nil {
		s.lastErr = err
		s.logger.Error("autosave: %v", err)
		return err
	}
	s.dirty, s.lastErr = false, nil
	s.saves++
	s.logger.Debug("saved %d bytes", len(s.pending))
	return nil
}

// Pending reports whether scheduled text has not been written yet.
func (s *Saver) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// Saves returns the number of successful writes.
func (s *Saver) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

// Err returns the error of the last failed write, cleared by a later success.
func (s *Saver) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Close flushes pending text and stops the saver.
func (s *Saver) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	err := s.flushLocked()
	s.closed = true
	return err
}
