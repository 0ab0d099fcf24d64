package loader

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func envLoader(env ...string) *EnvLoader {
	l := NewEnvLoader(DefaultPrefix)
	l.lookup = func() []string { return env }
	return l
}

func TestEnvLoaderLoad(t *testing.T) {
	l := envLoader(
		"MARKSMITH_LOG_LEVEL=debug",
		"MARKSMITH_AUTOSAVE_DELAY=250ms",
		"MARKSMITH_TABLE_PRESERVE_ALIGN=yes",
		"MARKSMITH_TEMPLATES_TABLE=| x |",
		"HOME=/root",
	)
	config, err := l.Load()
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]any{
		"log_level":      "debug",
		"autosave_delay": "250ms",
		"table":          map[string]any{"preserve_align": true},
		"templates":      map[string]any{"table": "| x |"},
	}
	if diff := cmp.Diff(want, config); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestEnvLoaderCustomMapping(t *testing.T) {
	l := envLoader("MARKSMITH_QUIET=on")
	l.AddMapping("MARKSMITH_QUIET", "output.quiet")
	config, _ := l.Load()
	if v, ok := getByPath(config, "output.quiet"); !ok || v != true {
		t.Errorf("output.quiet = %v", v)
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{"", ""},
		{"true", true},
		{"Off", false},
		{"42", int64(42)},
		{"1.5", 1.5},
		{"1m30s", "1m30s"},
		{"plain", "plain"},
	}
	for _, tt := range tests {
		if got := parseValue(tt.in); got != tt.want {
			t.Errorf("parseValue(%q) = %v (%T), want %v", tt.in, got, got, tt.want)
		}
	}
}
