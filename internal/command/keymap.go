package command

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
)

// Chord is a single key press with modifiers.
// Printable keys use Key == tcell.KeyRune and a lowercase Rune; shifted
// symbols are stored as Shift plus the unshifted key, so "Shift-5" and
// "%" are the same chord.
type Chord struct {
	Mods tcell.ModMask
	Key  tcell.Key
	Rune rune
}

// String renders the chord in the notation ParseChord accepts, with Ctrl
// spelled out.
func (c Chord) String() string {
	var b strings.Builder
	for _, m := range modOrder {
		if c.Mods&m.mask != 0 {
			b.WriteString(m.name)
			b.WriteByte('-')
		}
	}
	if c.Key == tcell.KeyRune {
		if c.Rune == ' ' {
			b.WriteString("Space")
		} else {
			b.WriteRune(c.Rune)
		}
		return b.String()
	}
	for name, k := range namedKeys {
		if k == c.Key && keyDisplay[name] {
			b.WriteString(name)
			return b.String()
		}
	}
	fmt.Fprintf(&b, "Key(%d)", c.Key)
	return b.String()
}

var modOrder = []struct {
	name string
	mask tcell.ModMask
}{
	{"Ctrl", tcell.ModCtrl},
	{"Alt", tcell.ModAlt},
	{"Shift", tcell.ModShift},
	{"Meta", tcell.ModMeta},
}

var namedKeys = map[string]tcell.Key{
	"Enter":     tcell.KeyEnter,
	"Return":    tcell.KeyEnter,
	"Tab":       tcell.KeyTab,
	"Backspace": tcell.KeyBackspace2,
	"Esc":       tcell.KeyEscape,
	"Escape":    tcell.KeyEscape,
	"Up":        tcell.KeyUp,
	"Down":      tcell.KeyDown,
	"Left":      tcell.KeyLeft,
	"Right":     tcell.KeyRight,
	"Home":      tcell.KeyHome,
	"End":       tcell.KeyEnd,
	"PageUp":    tcell.KeyPgUp,
	"PageDown":  tcell.KeyPgDn,
	"Delete":    tcell.KeyDelete,
	"Insert":    tcell.KeyInsert,
	"F1":        tcell.KeyF1,
	"F2":        tcell.KeyF2,
	"F3":        tcell.KeyF3,
	"F4":        tcell.KeyF4,
	"F5":        tcell.KeyF5,
	"F6":        tcell.KeyF6,
	"F7":        tcell.KeyF7,
	"F8":        tcell.KeyF8,
	"F9":        tcell.KeyF9,
	"F10":       tcell.KeyF10,
	"F11":       tcell.KeyF11,
	"F12":       tcell.KeyF12,
}

// keyDisplay marks the canonical name of keys with aliases.
var keyDisplay = func() map[string]bool {
	m := make(map[string]bool, len(namedKeys))
	for name := range namedKeys {
		m[name] = name != "Return" && name != "Escape"
	}
	return m
}()

// unshifted maps US-layout shifted symbols to their base key.
var unshifted = map[rune]rune{
	'!': '1', '@': '2', '#': '3', '$': '4', '%': '5',
	'^': '6', '&': '7', '*': '8', '(': '9', ')': '0',
	'_': '-', '+': '=', '{': '[', '}': ']', '|': '\\',
	':': ';', '"': '\'', '<': ',', '>': '.', '?': '/',
	'~': '`',
}

// ParseChord parses a chord such as "Mod-b", "Ctrl-Shift-5" or "Mod-Alt--"
// with Mod meaning Ctrl.
func ParseChord(spec string) (Chord, error) {
	return ParseChordMod(spec, tcell.ModCtrl)
}

// ParseChordMod is ParseChord with Mod mapped to mod.
func ParseChordMod(spec string, mod tcell.ModMask) (Chord, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Chord{}, fmt.Errorf("%w: empty", ErrInvalidChord)
	}

	// The key is everything after the last separator; a trailing "-" is
	// itself the key.
	var mods, keyPart string
	switch {
	case spec == "-":
		keyPart = "-"
	case strings.HasSuffix(spec, "--"):
		mods, keyPart = spec[:len(spec)-2], "-"
	default:
		i := strings.LastIndexByte(spec, '-')
		if i == len(spec)-1 {
			return Chord{}, fmt.Errorf("%w: %q", ErrInvalidChord, spec)
		}
		if i >= 0 {
			mods, keyPart = spec[:i], spec[i+1:]
		} else {
			keyPart = spec
		}
	}

	var c Chord
	if mods != "" {
		for _, name := range strings.Split(mods, "-") {
			switch strings.ToLower(name) {
			case "mod":
				c.Mods |= mod
			case "ctrl", "control", "c":
				c.Mods |= tcell.ModCtrl
			case "alt", "option", "a":
				c.Mods |= tcell.ModAlt
			case "shift", "s":
				c.Mods |= tcell.ModShift
			case "meta", "cmd", "m":
				c.Mods |= tcell.ModMeta
			default:
				return Chord{}, fmt.Errorf("%w: unknown modifier %q in %q", ErrInvalidChord, name, spec)
			}
		}
	}

	if utf8.RuneCountInString(keyPart) == 1 {
		r, _ := utf8.DecodeRuneInString(keyPart)
		return normalizeRune(c.Mods, r), nil
	}
	if strings.EqualFold(keyPart, "space") {
		return Chord{Mods: c.Mods, Key: tcell.KeyRune, Rune: ' '}, nil
	}
	for name, k := range namedKeys {
		if strings.EqualFold(name, keyPart) {
			c.Key = k
			return c, nil
		}
	}
	return Chord{}, fmt.Errorf("%w: unknown key %q in %q", ErrInvalidChord, keyPart, spec)
}

func normalizeRune(mods tcell.ModMask, r rune) Chord {
	if base, ok := unshifted[r]; ok {
		r = base
		mods |= tcell.ModShift
	} else if unicode.IsUpper(r) {
		r = unicode.ToLower(r)
		mods |= tcell.ModShift
	}
	return Chord{Mods: mods, Key: tcell.KeyRune, Rune: r}
}

// ChordOf converts a tcell key event to a chord. Control characters
// reported for Ctrl+letter are turned back into the letter.
func ChordOf(ev *tcell.EventKey) Chord {
	k, mods := ev.Key(), ev.Modifiers()

	switch {
	case k == tcell.KeyRune:
		return normalizeRune(mods, ev.Rune())
	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ && mods&tcell.ModCtrl != 0:
		return Chord{Mods: mods, Key: tcell.KeyRune, Rune: 'a' + rune(k-tcell.KeyCtrlA)}
	case k == tcell.KeyCtrlBackslash:
		return Chord{Mods: mods | tcell.ModCtrl, Key: tcell.KeyRune, Rune: '\\'}
	case k == tcell.KeyCtrlRightSq:
		return Chord{Mods: mods | tcell.ModCtrl, Key: tcell.KeyRune, Rune: ']'}
	case k == tcell.KeyCtrlSpace:
		return Chord{Mods: mods | tcell.ModCtrl, Key: tcell.KeyRune, Rune: ' '}
	case k == tcell.KeyBackspace:
		return Chord{Mods: mods, Key: tcell.KeyBackspace2}
	}
	return Chord{Mods: mods, Key: k}
}

// Binding pairs a chord specification with a command name.
type Binding struct {
	Keys    string
	Command string
}

// Keymap maps chords to command names.
// A Keymap is safe for concurrent use.
type Keymap struct {
	mu       sync.RWMutex
	mod      tcell.ModMask
	bindings map[Chord]Binding
}

// KeymapOption configures a Keymap.
type KeymapOption func(*Keymap)

// WithModKey sets the modifier "Mod" stands for. The default is Ctrl.
func WithModKey(mod tcell.ModMask) KeymapOption {
	return func(k *Keymap) {
		k.mod = mod
	}
}

// NewKeymap creates an empty keymap.
func NewKeymap(opts ...KeymapOption) *Keymap {
	k := &Keymap{
		mod:      tcell.ModCtrl,
		bindings: make(map[Chord]Binding),
	}
	for _, opt := range opts {
		opt(k)
	}
	return k
}

// DefaultBindings is the built-in binding table.
var DefaultBindings = []Binding{
	{"Mod-b", Strong},
	{"Mod-i", Emphasis},
	{"Mod-u", Underline},
	{"Mod-Shift-5", Strikethrough},
	{"Mod-Shift-`", Code},
	{"Mod-k", Link},
	{"Mod-Shift-i", Image},
	{"Mod-\\", ClearFormat},

	{"Mod-1", "heading-1"},
	{"Mod-2", "heading-2"},
	{"Mod-3", "heading-3"},
	{"Mod-4", "heading-4"},
	{"Mod-5", "heading-5"},
	{"Mod-6", "heading-6"},
	{"Mod-0", "heading-0"},

	{"Mod-Shift-q", Blockquote},
	{"Mod-Alt-q", Blockquote},
	{"Mod-Shift-]", UnorderedList},
	{"Mod-Alt-u", UnorderedList},
	{"Mod-Shift-[", OrderedList},
	{"Mod-Alt-o", OrderedList},
	{"Mod-Shift-x", TaskList},
	{"Mod-Alt-x", TaskList},

	{"Mod-Shift-k", CodeBlock},
	{"Mod-Alt-c", CodeBlock},
	{"Mod-Shift-m", MathBlock},
	{"Mod-Alt-b", MathBlock},
	{"Mod-t", Table},
	{"Mod-Alt-t", Table},
	{"Mod-Alt--", HorizontalRule},
}

// DefaultKeymap returns a keymap holding DefaultBindings.
func DefaultKeymap(opts ...KeymapOption) *Keymap {
	k := NewKeymap(opts...)
	for _, b := range DefaultBindings {
		if err := k.Bind(b.Keys, b.Command); err != nil {
			panic(fmt.Sprintf("default binding %q: %v", b.Keys, err))
		}
	}
	return k
}

// Bind maps the chord spec to command, replacing an existing binding.
func (k *Keymap) Bind(spec, command string) error {
	c, err := ParseChordMod(spec, k.mod)
	if err != nil {
		return err
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	k.bindings[c] = Binding{Keys: spec, Command: command}
	return nil
}

// Unbind removes the binding of the chord spec.
func (k *Keymap) Unbind(spec string) error {
	c, err := ParseChordMod(spec, k.mod)
	if err != nil {
		return err
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	delete(k.bindings, c)
	return nil
}

// LookupChord returns the command bound to c.
func (k *Keymap) LookupChord(c Chord) (string, bool) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	b, ok := k.bindings[c]
	return b.Command, ok
}

// Lookup returns the command bound to a key event.
func (k *Keymap) Lookup(ev *tcell.EventKey) (string, bool) {
	return k.LookupChord(ChordOf(ev))
}

// Bindings returns all bindings sorted by command name, then by keys.
func (k *Keymap) Bindings() []Binding {
	k.mu.RLock()
	defer k.mu.RUnlock()
	out := make([]Binding, 0, len(k.bindings))
	for _, b := range k.bindings {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Command != out[j].Command {
			return out[i].Command < out[j].Command
		}
		return out[i].Keys < out[j].Keys
	})
	return out
}

// HandleKey runs the command bound to ev against s. It reports false when
// no command is bound or the command did not run.
func (r *Registry) HandleKey(s Surface, k *Keymap, ev *tcell.EventKey) bool {
	name, ok := k.Lookup(ev)
	if !ok {
		return false
	}
	return r.Run(s, name)
}
