// Package command names the formatting operations and binds them to keys.
//
// A Registry maps command names such as "strong" or "heading-2" to pure
// formatting functions and runs them against a Surface, the live editing
// target that owns the document and its selections. A Keymap maps key
// chords written in CodeMirror notation ("Mod-b", "Mod-Shift-5") to
// command names and resolves tcell key events against them.
//
// Running a command without a surface is not an error: Run reports false
// and the caller decides what to do.
package command
