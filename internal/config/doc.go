// Package config loads marksmith settings.
//
// Settings come from three layers, later layers overriding earlier ones:
//
//  1. built-in defaults (Default)
//  2. a TOML or YAML file, chosen by extension
//  3. MARKSMITH_* environment variables
//
// Example marksmith.toml:
//
//	log_level = "debug"
//	autosave_delay = "1s"
//	plugins = ["~/.config/marksmith/shout.lua"]
//
//	[table]
//	preserve_align = true
//
//	[templates]
//	horizontal_rule = "***\n"
//
//	[keymap]
//	"Mod-Shift-h" = "heading-2"
//
// A file may pull in others with include = "base.toml" (or a list); the
// including file wins on conflicts.
package config
