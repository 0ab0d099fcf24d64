// Package main is the entry point for the marksmith command.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dshills/marksmith/internal/command"
	"github.com/dshills/marksmith/internal/config"
	"github.com/dshills/marksmith/internal/logging"
	"github.com/dshills/marksmith/internal/plugin/lua"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// errUsage marks errors already explained by a usage message.
var errUsage = errors.New("usage")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// app carries what every subcommand needs.
type app struct {
	cfg    *config.Config
	logger *logging.Logger
	stdout io.Writer
	stderr io.Writer
}

type subcommand struct {
	name    string
	summary string
	run     func(a *app, args []string) error
}

var subcommands = []subcommand{
	{"segments", "dump the table and text segments of a file", (*app).segments},
	{"format", "run a formatting command on a file", (*app).format},
	{"table", "apply a structural edit to a table", (*app).table},
	{"keys", "print the key bindings", (*app).keys},
	{"watch", "re-segment a file whenever it changes", (*app).watch},
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("marksmith", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var configPath, logLevel string
	var showVersion bool
	fs.StringVar(&configPath, "config", defaultConfigPath(), "Path to configuration file (TOML or YAML)")
	fs.StringVar(&configPath, "c", defaultConfigPath(), "Path to configuration file (shorthand)")
	fs.StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); overrides the config file")
	fs.BoolVar(&showVersion, "version", false, "Show version information")
	fs.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "marksmith - structured Markdown editing\n\n")
		fmt.Fprintf(stderr, "Usage: marksmith [options] <command> [arguments]\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nCommands:\n")
		for _, sc := range subcommands {
			fmt.Fprintf(stderr, "  %-10s %s\n", sc.name, sc.summary)
		}
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if showVersion {
		fmt.Fprintf(stdout, "marksmith %s\n", version)
		fmt.Fprintf(stdout, "Commit: %s\n", commit)
		fmt.Fprintf(stdout, "Built: %s\n", date)
		return 0
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if logLevel != "" {
		if _, ok := logging.ParseLevel(logLevel); !ok {
			fmt.Fprintf(stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", logLevel)
			return 2
		}
		cfg.LogLevel = logLevel
	}

	a := &app{
		cfg: cfg,
		logger: logging.New(logging.Config{
			Level:  cfg.Level(),
			Output: stderr,
			Prefix: "marksmith",
		}),
		stdout: stdout,
		stderr: stderr,
	}

	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}
	name := fs.Arg(0)
	for _, sc := range subcommands {
		if sc.name != name {
			continue
		}
		if err := sc.run(a, fs.Args()[1:]); err != nil {
			if errors.Is(err, errUsage) {
				return 2
			}
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}
	fmt.Fprintf(stderr, "Error: unknown command %q\n", name)
	fs.Usage()
	return 2
}

// defaultConfigPath is marksmith/config.toml under the user config directory.
// A missing file is fine.
func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "marksmith", "config.toml")
}

// flags returns a flag set for a subcommand that reports errors to stderr.
func (a *app) flags(name, usage string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	fs.Usage = func() {
		fmt.Fprintf(a.stderr, "Usage: marksmith %s %s\n", name, usage)
		fs.PrintDefaults()
	}
	return fs
}

// parse parses args and requires exactly one positional FILE.
func (a *app) parse(fs *flag.FlagSet, args []string) (string, error) {
	if err := fs.Parse(args); err != nil {
		return "", errUsage
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return "", errUsage
	}
	return fs.Arg(0), nil
}

// registry builds the command registry with configured templates and Lua
// plugins. The returned plugins must be closed by the caller.
func (a *app) registry() (*command.Registry, []*lua.Plugin, error) {
	r := command.NewRegistry(
		command.WithTemplates(a.cfg.FormatTemplates()),
		command.WithLogger(a.logger),
	)
	var plugins []*lua.Plugin
	for _, path := range a.cfg.ExpandPlugins() {
		p, err := lua.Load(path, lua.WithLogger(a.logger))
		if err != nil {
			closePlugins(plugins)
			return nil, nil, err
		}
		plugins = append(plugins, p)
		if err := p.Register(r); err != nil {
			closePlugins(plugins)
			return nil, nil, err
		}
	}
	return r, plugins, nil
}

func closePlugins(plugins []*lua.Plugin) {
	for _, p := range plugins {
		_ = p.Close()
	}
}
