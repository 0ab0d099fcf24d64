package lua

import (
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/marksmith/internal/logging"
)

// removedGlobals are functions that load code from disk or strings.
var removedGlobals = []string{
	"dofile",
	"loadfile",
	"load",
	"loadstring",
	"require",
	"module",
}

// Sandbox restricts what Lua code can reach.
type Sandbox struct {
	L      *lua.LState
	logger *logging.Logger
}

// NewSandbox creates a new sandbox for the Lua state.
func NewSandbox(L *lua.LState, logger *logging.Logger) *Sandbox {
	return &Sandbox{L: L, logger: logger}
}

// Install removes code-loading globals and redirects print.
func (s *Sandbox) Install() {
	for _, name := range removedGlobals {
		s.L.SetGlobal(name, lua.LNil)
	}
	s.installPrint()
}

// installPrint routes print to the logger at info level.
func (s *Sandbox) installPrint() {
	s.L.SetGlobal("print", s.L.NewFunction(func(L *lua.LState) int {
		n := L.GetTop()
		parts := make([]string, n)
		for i := 1; i <= n; i++ {
			parts[i-1] = L.ToStringMeta(L.Get(i)).String()
		}
		s.logger.Info("%s", strings.Join(parts, "\t"))
		return 0
	}))
}
