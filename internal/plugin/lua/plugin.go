package lua

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/marksmith/internal/command"
	"github.com/dshills/marksmith/internal/format"
	"github.com/dshills/marksmith/internal/logging"
)

// ModuleName is the global table plugins register commands through.
const ModuleName = "marksmith"

// LineCommand is a command registered by a plugin.
type LineCommand struct {
	Name        string
	Description string

	fn *lua.LFunction
}

// Plugin is a loaded Lua file and the commands it registered.
type Plugin struct {
	path   string
	state  *State
	logger *logging.Logger

	mu       sync.Mutex
	commands []LineCommand
}

// Load executes the Lua file at path and collects its line commands.
func Load(path string, opts ...StateOption) (*Plugin, error) {
	p := newPlugin(path, opts...)
	if err := p.state.DoFile(path); err != nil {
		p.state.Close()
		return nil, fmt.Errorf("load plugin %s: %w", path, err)
	}
	p.logger.Debug("loaded %d commands", len(p.commands))
	return p, nil
}

// LoadString is Load for in-memory source. name identifies it in logs.
func LoadString(name, source string, opts ...StateOption) (*Plugin, error) {
	p := newPlugin(name, opts...)
	if err := p.state.DoString(source); err != nil {
		p.state.Close()
		return nil, fmt.Errorf("load plugin %s: %w", name, err)
	}
	return p, nil
}

func newPlugin(path string, opts ...StateOption) *Plugin {
	state := NewState(opts...)
	p := &Plugin{
		path:   path,
		state:  state,
		logger: logging.For(state.logger, logging.ComponentPlugin).WithField(logging.FieldPlugin, filepath.Base(path)),
	}
	state.sandbox.logger = p.logger
	state.RegisterModule(ModuleName, map[string]lua.LGFunction{
		"line_command": p.luaLineCommand,
		"log":          p.luaLog,
	})
	return p
}

// luaLineCommand implements marksmith.line_command(name, fn [, description]).
func (p *Plugin) luaLineCommand(L *lua.LState) int {
	name := strings.TrimSpace(L.CheckString(1))
	fn := L.CheckFunction(2)
	desc := L.OptString(3, "")
	if name == "" {
		L.ArgError(1, "command name is empty")
		return 0
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	for i, c := range p.commands {
		if c.Name == name {
			p.commands[i] = LineCommand{Name: name, Description: desc, fn: fn}
			return 0
		}
	}
	p.commands = append(p.commands, LineCommand{Name: name, Description: desc, fn: fn})
	return 0
}

// luaLog implements marksmith.log(level, message).
func (p *Plugin) luaLog(L *lua.LState) int {
	level, _ := logging.ParseLevel(L.CheckString(1))
	msg := L.CheckString(2)
	switch level {
	case logging.LevelDebug:
		p.logger.Debug("%s", msg)
	case logging.LevelWarn:
		p.logger.Warn("%s", msg)
	case logging.LevelError:
		p.logger.Error("%s", msg)
	default:
		p.logger.Info("%s", msg)
	}
	return 0
}

// Path returns the file the plugin was loaded from.
func (p *Plugin) Path() string {
	return p.path
}

// Commands returns the registered commands in registration order.
func (p *Plugin) Commands() []LineCommand {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]LineCommand(nil), p.commands...)
}

// Call runs the named command on one line.
func (p *Plugin) Call(name, line string) (string, bool, error) {
	cmd, ok := p.lookup(name)
	if !ok {
		return "", false, fmt.Errorf("%w: %s", command.ErrUnknownCommand, name)
	}
	ret, err := p.state.CallFunction(cmd.fn, lua.LString(line))
	if err != nil {
		return "", false, err
	}
	switch v := ret.(type) {
	case lua.LString:
		return string(v), string(v) != line, nil
	default:
		if ret == lua.LNil || ret == lua.LFalse {
			return "", false, nil
		}
		return "", false, fmt.Errorf("%w: got %s", ErrBadReturn, ret.Type())
	}
}

// LineFunc adapts the named command to format.LineFunc. Lua errors are
// logged and leave the line unchanged.
func (p *Plugin) LineFunc(name string) format.LineFunc {
	return func(line string) (string, bool) {
		out, changed, err := p.Call(name, line)
		if err != nil {
			p.logger.Warn("command %s: %v", name, err)
			return "", false
		}
		return out, changed
	}
}

// Register adds every plugin command to r.
func (p *Plugin) Register(r *command.Registry) error {
	for _, c := range p.Commands() {
		if err := r.RegisterLineFunc(c.Name, c.Description, p.LineFunc(c.Name)); err != nil {
			return fmt.Errorf("register %s: %w", c.Name, err)
		}
	}
	return nil
}

func (p *Plugin) lookup(name string) (LineCommand, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, c := range p.commands {
		if c.Name == name {
			return c, true
		}
	}
	return LineCommand{}, false
}

// Close releases the Lua state.
func (p *Plugin) Close() error {
	return p.state.Close()
}
