// Package lua runs user line commands written in Lua.
//
// A plugin is a Lua file executed in a sandboxed State. It registers
// commands through the marksmith module:
//
//	marksmith.line_command("shout", function(line)
//	    if line == "" then return nil end
//	    return string.upper(line)
//	end, "Upper-case the line")
//
// Each function receives the text of one line (without its newline) and
// returns the replacement, or nil to leave the line alone. Registered
// commands become format.LineFunc values:
//
//	p, err := lua.Load("shout.lua", lua.WithLogger(logger))
//	if err != nil {
//	    return err
//	}
//	defer p.Close()
//	p.Register(registry) // "shout" is now a command
//
// # Sandbox
//
// Only the base, string, table and math libraries are opened. dofile,
// loadfile, load, loadstring and require are removed, and print writes to
// the plugin logger. Every call runs under a timeout.
package lua
