package command

import "errors"

// Errors returned by command operations.
var (
	// ErrNoSurface indicates there is no active editing surface.
	ErrNoSurface = errors.New("no active editing surface")

	// ErrUnknownCommand indicates the command name is not registered.
	ErrUnknownCommand = errors.New("unknown command")

	// ErrInvalidCommand indicates a command without a name or function.
	ErrInvalidCommand = errors.New("invalid command")

	// ErrInvalidChord indicates a key chord could not be parsed.
	ErrInvalidChord = errors.New("invalid key chord")
)
