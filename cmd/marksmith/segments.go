package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dshills/marksmith/internal/engine/buffer"
	"github.com/dshills/marksmith/internal/markdown"
	"github.com/dshills/marksmith/internal/store"
)

// segmentDump is the yaml/json form of one segment.
type segmentDump struct {
	Kind  string                 `json:"kind" yaml:"kind"`
	Start buffer.ByteOffset      `json:"start" yaml:"start"`
	End   buffer.ByteOffset      `json:"end" yaml:"end"`
	Text  string                 `json:"text,omitempty" yaml:"text,omitempty"`
	Table *markdown.TableSegment `json:"table,omitempty" yaml:"table,omitempty"`
}

func dumpSegments(segs []markdown.Segment) []segmentDump {
	out := make([]segmentDump, len(segs))
	for i, seg := range segs {
		b := seg.Bounds()
		d := segmentDump{Kind: seg.Kind().String(), Start: b.Start, End: b.End}
		switch s := seg.(type) {
		case markdown.TableSegment:
			d.Table = &s
		case markdown.OtherSegment:
			d.Text = s.Text
		}
		out[i] = d
	}
	return out
}

func (a *app) segments(args []string) error {
	fs := a.flags("segments", "[-o text|yaml|json] FILE")
	output := fs.String("o", "text", "Output format: text, yaml or json")
	path, err := a.parse(fs, args)
	if err != nil {
		return err
	}

	doc, err := store.ReadFile(path)
	if err != nil {
		return err
	}
	segs := markdown.Parse(doc)
	a.logger.Debug("%s: %d segments", path, len(segs))

	switch *output {
	case "text":
		fmt.Fprint(a.stdout, describeSegments(segs))
		return nil
	case "yaml":
		enc := yaml.NewEncoder(a.stdout)
		enc.SetIndent(2)
		if err := enc.Encode(dumpSegments(segs)); err != nil {
			return err
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(a.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(dumpSegments(segs))
	default:
		return fmt.Errorf("unknown output format %q", *output)
	}
}

// describeSegments renders one line per segment, followed by the cells of
// each table.
func describeSegments(segs []markdown.Segment) string {
	var b strings.Builder
	for _, seg := range segs {
		switch s := seg.(type) {
		case markdown.TableSegment:
			fmt.Fprintf(&b, "table %d %s %d columns, %d rows, occurrence %d\n",
				s.ID, s.Span, len(s.Header), len(s.Rows), s.Occurrence)
			fmt.Fprintf(&b, "  header: %s\n", quoteAll(s.Header))
			for i, row := range s.Rows {
				fmt.Fprintf(&b, "  row %d: %s\n", i, quoteAll(row))
			}
		case markdown.OtherSegment:
			fmt.Fprintf(&b, "other %s %s\n", s.Span, summarize(s.Text, 40))
		}
	}
	return b.String()
}

func quoteAll(cells []string) string {
	q := make([]string, len(cells))
	for i, c := range cells {
		q[i] = strconv.Quote(c)
	}
	return strings.Join(q, " ")
}

// summarize quotes text, cut to at most n runes.
func summarize(text string, n int) string {
	r := []rune(text)
	if len(r) <= n {
		return strconv.Quote(text)
	}
	return strconv.Quote(string(r[:n])) + "..."
}
