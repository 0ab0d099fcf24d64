package config

import (
	"fmt"
	"os"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dshills/marksmith/internal/command"
	"github.com/dshills/marksmith/internal/config/loader"
	"github.com/dshills/marksmith/internal/format"
	"github.com/dshills/marksmith/internal/logging"
)

// DefaultAutosaveDelay is the quiet period before an edited document is
// written back.
const DefaultAutosaveDelay = time.Second

// maxIncludeDepth bounds nested include directives.
const maxIncludeDepth = 8

// Config holds every marksmith setting.
type Config struct {
	LogLevel      string            `yaml:"log_level"`
	AutosaveDelay time.Duration     `yaml:"autosave_delay"`
	Table         TableConfig       `yaml:"table"`
	Templates     TemplatesConfig   `yaml:"templates"`
	Keymap        map[string]string `yaml:"keymap"`
	Plugins       []string          `yaml:"plugins"`
}

// TableConfig controls table rewriting.
type TableConfig struct {
	// PreserveAlign keeps column alignment markers when a table is
	// re-serialized. Off, every column is written as "---".
	PreserveAlign bool `yaml:"preserve_align"`
}

// TemplatesConfig overrides the text inserted by block commands. Empty
// fields fall back to the built-in templates.
type TemplatesConfig struct {
	Table          string `yaml:"table"`
	CodeBlock      string `yaml:"code_block"`
	MathBlock      string `yaml:"math_block"`
	HorizontalRule string `yaml:"horizontal_rule"`
}

// Default returns the built-in settings.
func Default() *Config {
	t := format.DefaultTemplates()
	return &Config{
		LogLevel:      "info",
		AutosaveDelay: DefaultAutosaveDelay,
		Templates: TemplatesConfig{
			Table:          t.Table,
			CodeBlock:      t.CodeBlock,
			MathBlock:      t.MathBlock,
			HorizontalRule: t.HorizontalRule,
		},
		Keymap: map[string]string{},
	}
}

// Load builds a Config from defaults, the file at path and the environment.
// An empty path skips the file layer; a missing file is not an error.
// The result is validated.
func Load(path string) (*Config, error) {
	return load(path, loader.DefaultFS(), loader.NewEnvLoader(loader.DefaultPrefix))
}

func load(path string, fsys loader.FileSystem, env loader.Loader) (*Config, error) {
	merged := make(map[string]any)
	if path != "" {
		fl := loader.NewFileLoaderWithFS(fsys, path)
		file, err := fl.LoadWithIncludes(path, maxIncludeDepth)
		if err != nil {
			return nil, err
		}
		merged = loader.DeepMerge(merged, file)
	}
	if env != nil {
		vars, err := env.Load()
		if err != nil {
			return nil, fmt.Errorf("loading environment: %w", err)
		}
		merged = loader.DeepMerge(merged, vars)
	}

	cfg, err := FromMap(merged)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromMap overlays the settings in m onto Default. Unknown keys are ignored.
func FromMap(m map[string]any) (*Config, error) {
	cfg := Default()
	if len(m) == 0 {
		return cfg, nil
	}
	data, err := yaml.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encoding settings: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, &ParseError{Path: "<settings>", Message: err.Error(), Err: err}
	}
	if cfg.Keymap == nil {
		cfg.Keymap = map[string]string{}
	}
	return cfg, nil
}

// Validate checks every setting and reports all failures at once.
func (c *Config) Validate() error {
	var errs ValidationErrors
	if _, ok := logging.ParseLevel(c.LogLevel); !ok {
		errs = append(errs, &ValidationError{
			Path: "log_level", Value: c.LogLevel,
			Message: "must be debug, info, warn or error",
		})
	}
	if c.AutosaveDelay < 0 {
		errs = append(errs, &ValidationError{
			Path: "autosave_delay", Value: c.AutosaveDelay,
			Message: "must not be negative",
		})
	}
	for _, spec := range sortedKeys(c.Keymap) {
		if _, err := command.ParseChord(spec); err != nil {
			errs = append(errs, &ValidationError{
				Path: "keymap", Value: spec, Message: err.Error(),
			})
		}
		if c.Keymap[spec] == "" {
			errs = append(errs, &ValidationError{
				Path: "keymap." + spec, Value: "", Message: "command name is empty",
			})
		}
	}
	for i, p := range c.Plugins {
		if p == "" {
			errs = append(errs, &ValidationError{
				Path: fmt.Sprintf("plugins[%d]", i), Value: p, Message: "path is empty",
			})
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Level returns the parsed log level.
func (c *Config) Level() logging.Level {
	level, _ := logging.ParseLevel(c.LogLevel)
	return level
}

// FormatTemplates returns the block templates with defaults filled in.
func (c *Config) FormatTemplates() format.Templates {
	return format.Templates{
		Table:          c.Templates.Table,
		CodeBlock:      c.Templates.CodeBlock,
		MathBlock:      c.Templates.MathBlock,
		HorizontalRule: c.Templates.HorizontalRule,
	}.Merge(format.DefaultTemplates())
}

// ApplyKeymap binds every configured chord on k, in chord order.
func (c *Config) ApplyKeymap(k *command.Keymap) error {
	for _, spec := range sortedKeys(c.Keymap) {
		if err := k.Bind(spec, c.Keymap[spec]); err != nil {
			return fmt.Errorf("keymap %q: %w", spec, err)
		}
	}
	return nil
}

// ExpandPlugins returns the plugin paths with environment variables and a
// leading "~/" expanded.
func (c *Config) ExpandPlugins() []string {
	home, _ := os.UserHomeDir()
	out := make([]string, len(c.Plugins))
	for i, p := range c.Plugins {
		p = os.ExpandEnv(p)
		if home != "" && len(p) > 1 && p[0] == '~' && p[1] == '/' {
			p = home + p[1:]
		}
		out[i] = p
	}
	return out
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
