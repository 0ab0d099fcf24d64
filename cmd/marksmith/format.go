package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dshills/marksmith/internal/engine"
	"github.com/dshills/marksmith/internal/engine/buffer"
	"github.com/dshills/marksmith/internal/engine/selection"
	"github.com/dshills/marksmith/internal/store"
)

func (a *app) format(args []string) (err error) {
	fs := a.flags("format", "-cmd NAME [-sel a:b[,c:d]] [-runes] [-w] FILE")
	name := fs.String("cmd", "", "Command to run (see 'marksmith keys')")
	sel := fs.String("sel", "0", "Selections as anchor:head or caret offsets, comma separated")
	runes := fs.Bool("runes", false, "Offsets count runes instead of bytes")
	write := fs.Bool("w", false, "Write the result back to FILE instead of stdout")
	path, err := a.parse(fs, args)
	if err != nil {
		return err
	}
	if *name == "" {
		fs.Usage()
		return errUsage
	}

	doc, err := store.ReadFile(path)
	if err != nil {
		return err
	}
	e := engine.New(engine.WithContent(doc), engine.WithLogger(a.logger))
	set, err := parseSelections(*sel, e.Text(), *runes)
	if err != nil {
		return err
	}
	if err := e.SetSelection(set); err != nil {
		return fmt.Errorf("-sel %s: %w", *sel, err)
	}
	if *write {
		saver := a.autosave(e, path)
		defer func() { err = errors.Join(err, saver.Close()) }()
	}

	r, plugins, err := a.registry()
	if err != nil {
		return err
	}
	defer closePlugins(plugins)

	if err := r.Execute(e, *name); err != nil {
		return err
	}
	a.logger.Info("selection: %s", formatSelections(e.Selection(), e.Text(), *runes))

	if *write {
		return nil
	}
	_, err = fmt.Fprint(a.stdout, e.Export())
	return err
}

// parseSelections parses "a:b,c" into a selection set. With runes set the
// offsets are rune indices into doc.
func parseSelections(spec, doc string, runes bool) (selection.Set, error) {
	offset := func(s string) (buffer.ByteOffset, error) {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil || n < 0 {
			return 0, fmt.Errorf("bad offset %q in -sel", s)
		}
		if runes {
			return buffer.RuneToByte(doc, n), nil
		}
		return buffer.ByteOffset(n), nil
	}

	var sels []selection.Selection
	for _, part := range strings.Split(spec, ",") {
		anchorText, headText, isRange := strings.Cut(part, ":")
		anchor, err := offset(anchorText)
		if err != nil {
			return selection.Set{}, err
		}
		head := anchor
		if isRange {
			if head, err = offset(headText); err != nil {
				return selection.Set{}, err
			}
		}
		sels = append(sels, selection.New(anchor, head))
	}
	return selection.NewSet(sels...), nil
}

// formatSelections is the inverse of parseSelections.
func formatSelections(set selection.Set, doc string, runes bool) string {
	conv := func(o buffer.ByteOffset) int {
		if runes {
			return buffer.ByteToRune(doc, o)
		}
		return int(o)
	}
	parts := make([]string, 0, set.Len())
	for _, s := range set.All() {
		if s.IsEmpty() {
			parts = append(parts, strconv.Itoa(conv(s.Head)))
			continue
		}
		parts = append(parts, fmt.Sprintf("%d:%d", conv(s.Anchor), conv(s.Head)))
	}
	return strings.Join(parts, ",")
}
