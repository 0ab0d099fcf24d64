package engine

import (
	"errors"

	"github.com/dshills/marksmith/internal/engine/buffer"
	"github.com/dshills/marksmith/internal/engine/history"
)

// Common errors returned by the engine.
var (
	// ErrReadOnly indicates a write was attempted on a read-only engine.
	ErrReadOnly = errors.New("engine is read-only")

	// ErrInvalidSelection indicates a selection set reaching outside the
	// document or splitting a multi-byte character.
	ErrInvalidSelection = errors.New("selection outside document or inside a character")

	// ErrCarriageReturn indicates an edit inserting "\r". The engine keeps
	// LF line endings, so such edits would shift every later offset.
	ErrCarriageReturn = errors.New("edit inserts carriage return")

	// ErrConcurrentEdit indicates the document changed while a derived
	// edit was being computed.
	ErrConcurrentEdit = errors.New("document changed concurrently")

	// ErrNothingToUndo indicates there is nothing to undo.
	ErrNothingToUndo = history.ErrNothingToUndo

	// ErrNothingToRedo indicates there is nothing to redo.
	ErrNothingToRedo = history.ErrNothingToRedo

	// Re-exported buffer errors.
	ErrRangeInvalid = buffer.ErrRangeInvalid
	ErrEditsOverlap = buffer.ErrEditsOverlap
)
