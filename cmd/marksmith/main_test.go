package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/marksmith/internal/config"
	"github.com/dshills/marksmith/internal/logging"
)

const tableDoc = "| a | b |\n| --- | --- |\n| 1 | 2 |\n"

// runCLI runs the command with an isolated config directory.
func runCLI(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	var out, errOut bytes.Buffer
	code = run(args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestVersion(t *testing.T) {
	code, out, _ := runCLI(t, "-version")
	if code != 0 || !strings.HasPrefix(out, "marksmith dev") {
		t.Errorf("code = %d, out = %q", code, out)
	}
}

func TestUsageErrors(t *testing.T) {
	tests := [][]string{
		{},
		{"nope"},
		{"format", "x.md"},
		{"table", "-op", "explode", "x.md"},
		{"-log-level", "loud", "keys"},
	}
	for _, args := range tests {
		if code, _, _ := runCLI(t, args...); code != 2 {
			t.Errorf("run(%q) = %d, want 2", args, code)
		}
	}
}

func TestSegmentsText(t *testing.T) {
	path := writeTemp(t, "doc.md", "intro\n\n"+tableDoc)
	code, out, errOut := runCLI(t, "segments", path)
	if code != 0 {
		t.Fatalf("code = %d, stderr = %s", code, errOut)
	}
	for _, want := range []string{`other`, `"intro`, `table 0`, `header: "a" "b"`, `row 0: "1" "2"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestSegmentsJSON(t *testing.T) {
	path := writeTemp(t, "doc.md", "intro\n\n"+tableDoc)
	code, out, errOut := runCLI(t, "segments", "-o", "json", path)
	if code != 0 {
		t.Fatalf("code = %d, stderr = %s", code, errOut)
	}
	var dump []segmentDump
	if err := json.Unmarshal([]byte(out), &dump); err != nil {
		t.Fatal(err)
	}
	var kinds []string
	for _, d := range dump {
		kinds = append(kinds, d.Kind)
	}
	if diff := cmp.Diff([]string{"other", "table"}, kinds); diff != "" {
		t.Errorf("kinds mismatch (-want +got):\n%s", diff)
	}
	if dump[1].Table == nil || dump[1].Table.Raw != strings.TrimSuffix(tableDoc, "\n") {
		t.Errorf("table = %+v", dump[1].Table)
	}
}

func TestSegmentsYAML(t *testing.T) {
	path := writeTemp(t, "doc.md", tableDoc)
	code, out, _ := runCLI(t, "segments", "-o", "yaml", path)
	if code != 0 || !strings.Contains(out, "kind: table") {
		t.Errorf("code = %d, out = %s", code, out)
	}
}

func TestFormat(t *testing.T) {
	path := writeTemp(t, "doc.md", "hello world")
	code, out, errOut := runCLI(t, "format", "-cmd", "strong", "-sel", "0:5", path)
	if code != 0 {
		t.Fatalf("code = %d, stderr = %s", code, errOut)
	}
	if out != "**hello** world" {
		t.Errorf("out = %q", out)
	}
	if !strings.Contains(errOut, "selection: 2:7") {
		t.Errorf("stderr = %q", errOut)
	}
}

func TestFormatRunesAndWrite(t *testing.T) {
	path := writeTemp(t, "doc.md", "héllo wörld")
	code, _, errOut := runCLI(t, "format", "-cmd", "code", "-sel", "6:11", "-runes", "-w", path)
	if code != 0 {
		t.Fatalf("code = %d, stderr = %s", code, errOut)
	}
	got, _ := os.ReadFile(path)
	if string(got) != "héllo `wörld`" {
		t.Errorf("file = %q", got)
	}
}

func TestFormatSelectionInsideCharacter(t *testing.T) {
	path := writeTemp(t, "doc.md", "é")
	code, out, errOut := runCLI(t, "format", "-cmd", "strong", "-sel", "1", path)
	if code != 1 || out != "" {
		t.Errorf("code = %d, out = %q", code, out)
	}
	if !strings.Contains(errOut, "-sel 1") {
		t.Errorf("stderr = %q", errOut)
	}
}

func TestFormatUnknownCommand(t *testing.T) {
	path := writeTemp(t, "doc.md", "x")
	if code, _, _ := runCLI(t, "format", "-cmd", "sparkle", path); code != 1 {
		t.Errorf("code = %d, want 1", code)
	}
}

func TestTableInsertRow(t *testing.T) {
	path := writeTemp(t, "doc.md", tableDoc)
	code, out, errOut := runCLI(t, "table", "-op", "insert-row", "-at", "0", path)
	if code != 0 {
		t.Fatalf("code = %d, stderr = %s", code, errOut)
	}
	want := "| a | b |\n| --- | --- |\n| 1 | 2 |\n|  |  |\n"
	if out != want {
		t.Errorf("out = %q, want %q", out, want)
	}
}

func TestTableSetCellWrite(t *testing.T) {
	path := writeTemp(t, "doc.md", "# T\n\n"+tableDoc)
	code, _, errOut := runCLI(t, "table", "-op", "set-cell", "-at", "-1", "-col", "1", "-value", "B|C", "-w", path)
	if code != 0 {
		t.Fatalf("code = %d, stderr = %s", code, errOut)
	}
	got, _ := os.ReadFile(path)
	want := "# T\n\n| a | B\\|C |\n| --- | --- |\n| 1 | 2 |\n"
	if string(got) != want {
		t.Errorf("file = %q, want %q", got, want)
	}
}

func TestTableWriteKeepsCRLF(t *testing.T) {
	path := writeTemp(t, "doc.md", "# T\r\n\r\n| a | b |\r\n| --- | --- |\r\n| 1 | 2 |\r\n")
	t.Setenv("MARKSMITH_AUTOSAVE_DELAY", "1h")
	code, out, errOut := runCLI(t, "table", "-op", "insert-row", "-at", "0", "-w", path)
	if code != 0 || out != "" {
		t.Fatalf("code = %d, out = %q, stderr = %s", code, out, errOut)
	}
	got, _ := os.ReadFile(path)
	want := "# T\r\n\r\n| a | b |\r\n| --- | --- |\r\n| 1 | 2 |\r\n|  |  |\r\n"
	if string(got) != want {
		t.Errorf("file = %q, want %q", got, want)
	}
}

func TestFormatPrintsCRLF(t *testing.T) {
	path := writeTemp(t, "doc.md", "one\r\ntwo\r\n")
	code, out, errOut := runCLI(t, "format", "-cmd", "strong", "-sel", "4:7", path)
	if code != 0 {
		t.Fatalf("code = %d, stderr = %s", code, errOut)
	}
	if out != "one\r\n**two**\r\n" {
		t.Errorf("out = %q", out)
	}
}

func TestFormatFailedWriteLeavesFile(t *testing.T) {
	path := writeTemp(t, "doc.md", "x\r\n")
	if code, _, _ := runCLI(t, "format", "-cmd", "sparkle", "-w", path); code != 1 {
		t.Errorf("code = %d, want 1", code)
	}
	got, _ := os.ReadFile(path)
	if string(got) != "x\r\n" {
		t.Errorf("file = %q", got)
	}
}

func TestTableMissing(t *testing.T) {
	path := writeTemp(t, "doc.md", tableDoc)
	if code, _, _ := runCLI(t, "table", "-table", "3", "-op", "insert-row", path); code != 1 {
		t.Errorf("code = %d, want 1", code)
	}
}

func TestKeys(t *testing.T) {
	code, out, _ := runCLI(t, "keys")
	if code != 0 {
		t.Fatalf("code = %d", code)
	}
	if !strings.Contains(out, "Mod-b") || !strings.Contains(out, "strong") {
		t.Errorf("out = %s", out)
	}
}

func TestPluginFromConfig(t *testing.T) {
	dir := t.TempDir()
	plugin := filepath.Join(dir, "shout.lua")
	if err := os.WriteFile(plugin, []byte(`
marksmith.line_command("shout", function(line) return string.upper(line) end)
`), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := filepath.Join(dir, "marksmith.toml")
	if err := os.WriteFile(cfg, []byte("plugins = ['"+plugin+"']\n\n[keymap]\n\"Mod-Shift-u\" = \"shout\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	doc := writeTemp(t, "doc.md", "one\ntwo")

	code, out, errOut := runCLI(t, "-config", cfg, "format", "-cmd", "shout", "-sel", "5", doc)
	if code != 0 {
		t.Fatalf("code = %d, stderr = %s", code, errOut)
	}
	if out != "one\nTWO" {
		t.Errorf("out = %q", out)
	}

	code, out, _ = runCLI(t, "-config", cfg, "keys")
	if code != 0 || !strings.Contains(out, "Mod-Shift-u") {
		t.Errorf("keys: code = %d, out = %s", code, out)
	}
}

func TestWatchPrintsSummary(t *testing.T) {
	path := writeTemp(t, "doc.md", tableDoc)
	var out, errOut bytes.Buffer
	a := &app{
		cfg:    config.Default(),
		logger: logging.New(logging.Config{Level: logging.LevelError, Output: &errOut}),
		stdout: &out,
		stderr: &errOut,
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := a.watchContext(ctx, []string{path}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "1 tables") || !strings.Contains(out.String(), "Table#0") {
		t.Errorf("out = %q", out.String())
	}
}
