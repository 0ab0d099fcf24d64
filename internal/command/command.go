package command

import (
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/dshills/marksmith/internal/engine/selection"
	"github.com/dshills/marksmith/internal/engine/txn"
	"github.com/dshills/marksmith/internal/format"
	"github.com/dshills/marksmith/internal/logging"
)

// Surface is the live editing target commands act on.
type Surface interface {
	// Text returns the current document.
	Text() string

	// Selection returns the current selection set.
	Selection() selection.Set

	// Dispatch applies a transaction computed against Text.
	Dispatch(tx txn.Transaction) error
}

// Func computes a transaction for a document and its selections.
type Func func(doc string, set selection.Set) txn.Transaction

// Command is a named formatting operation.
type Command struct {
	Name        string
	Description string
	Run         Func
}

// Built-in command names.
const (
	Strong         = "strong"
	Emphasis       = "emphasis"
	Underline      = "underline"
	Strikethrough  = "strikethrough"
	Code           = "code"
	Link           = "link"
	Image          = "image"
	ClearFormat    = "clear-format"
	Blockquote     = "blockquote"
	UnorderedList  = "unordered-list"
	OrderedList    = "ordered-list"
	TaskList       = "task-list"
	Table          = "table"
	CodeBlock      = "code-block"
	MathBlock      = "math-block"
	HorizontalRule = "horizontal-rule"
)

// Heading returns the name of the heading command for level 0..6.
// Level 0 clears block formatting.
func Heading(level int) string {
	return fmt.Sprintf("heading-%d", level)
}

// Registry holds named commands.
// A Registry is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	commands map[string]Command
	logger   *logging.Logger
}

// Option configures a Registry.
type Option func(*registryOptions)

type registryOptions struct {
	templates format.Templates
	logger    *logging.Logger
}

// WithTemplates sets the templates used by the block insertion commands.
// Empty fields keep their defaults.
func WithTemplates(t format.Templates) Option {
	return func(o *registryOptions) {
		o.templates = t
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(o *registryOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// NewRegistry creates a registry holding the built-in commands.
func NewRegistry(opts ...Option) *Registry {
	o := registryOptions{logger: logging.Nop()}
	for _, opt := range opts {
		opt(&o)
	}

	r := &Registry{
		commands: make(map[string]Command),
		logger:   logging.For(o.logger, logging.ComponentCommand),
	}
	for _, cmd := range builtins(o.templates.Merge(format.DefaultTemplates())) {
		r.commands[cmd.Name] = cmd
	}
	return r
}

func builtins(t format.Templates) []Command {
	cmds := []Command{
		{Strong, "Toggle **strong** text", format.ToggleStrong},
		{Emphasis, "Toggle *emphasized* text", format.ToggleEmphasis},
		{Underline, "Toggle <u>underlined</u> text", format.ToggleUnderline},
		{Strikethrough, "Toggle ~~struck~~ text", format.ToggleStrikethrough},
		{Code, "Toggle `code` spans", format.ToggleCode},
		{Link, "Insert a link around the selection", format.InsertLink},
		{Image, "Insert an image around the selection", format.InsertImage},
		{ClearFormat, "Remove block markers", format.ClearBlockMarkers},
		{Blockquote, "Quote the line", format.ToggleBlockquote},
		{UnorderedList, "Make the line a bullet item", format.ToggleUnorderedList},
		{OrderedList, "Make the line a numbered item", format.ToggleOrderedList},
		{TaskList, "Make the line a task item", format.ToggleTaskList},
		{Table, "Insert a table", t.InsertTable},
		{CodeBlock, "Insert a fenced code block", t.InsertCodeBlock},
		{MathBlock, "Insert a math block", t.InsertMathBlock},
		{HorizontalRule, "Insert a horizontal rule", t.InsertHorizontalRule},
	}
	for level := 0; level <= format.MaxHeadingLevel; level++ {
		level := level // per-iteration copy; go directive is < 1.22
		desc := fmt.Sprintf("Make the line a level %d heading", level)
		if level == 0 {
			desc = "Remove block markers"
		}
		cmds = append(cmds, Command{
			Name:        Heading(level),
			Description: desc,
			Run: func(doc string, set selection.Set) txn.Transaction {
				return format.SetHeading(doc, set, level)
			},
		})
	}
	return cmds
}

// Register adds cmd, replacing any command with the same name.
func (r *Registry) Register(cmd Command) error {
	if cmd.Name == "" || cmd.Run == nil {
		return ErrInvalidCommand
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commands[cmd.Name] = cmd
	return nil
}

// RegisterLineFunc registers a command rewriting the line of each range
// with fn.
func (r *Registry) RegisterLineFunc(name, description string, fn format.LineFunc) error {
	if fn == nil {
		return ErrInvalidCommand
	}
	return r.Register(Command{
		Name:        name,
		Description: description,
		Run: func(doc string, set selection.Set) txn.Transaction {
			return format.TransformLines(doc, set, fn)
		},
	})
}

// Lookup returns the command with the given name.
func (r *Registry) Lookup(name string) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cmd, ok := r.commands[name]
	return cmd, ok
}

// Commands returns all commands sorted by name.
func (r *Registry) Commands() []Command {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		out = append(out, cmd)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Execute runs the named command against s. A nil s, or an s holding a
// nil pointer, is ErrNoSurface.
func (r *Registry) Execute(s Surface, name string) error {
	if noSurface(s) {
		return ErrNoSurface
	}
	cmd, ok := r.Lookup(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}

	tx := cmd.Run(s.Text(), s.Selection())
	r.logger.WithCommand(name).Debug("%s", tx)
	if err := s.Dispatch(tx); err != nil {
		return fmt.Errorf("dispatch %s: %w", name, err)
	}
	return nil
}

func noSurface(s Surface) bool {
	if s == nil {
		return true
	}
	switch v := reflect.ValueOf(s); v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	}
	return false
}

// Run runs the named command against s and reports whether it ran.
func (r *Registry) Run(s Surface, name string) bool {
	if err := r.Execute(s, name); err != nil {
		r.logger.WithCommand(name).Debug("not run: %v", err)
		return false
	}
	return true
}
