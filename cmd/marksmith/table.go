package main

import (
	"errors"
	"fmt"

	"github.com/dshills/marksmith/internal/engine"
	"github.com/dshills/marksmith/internal/store"
	"github.com/dshills/marksmith/internal/table"
)

// tableOps maps -op values to mutations. at is the row or column index;
// rows count from 0 with -1 meaning the header.
var tableOps = map[string]func(at, col int, value string) table.MutateFunc{
	"insert-row": func(at, _ int, _ string) table.MutateFunc { return table.InsertRow(at) },
	"insert-col": func(at, _ int, _ string) table.MutateFunc { return table.InsertColumn(at) },
	"delete-row": func(at, _ int, _ string) table.MutateFunc { return table.RemoveRow(at) },
	"delete-col": func(at, _ int, _ string) table.MutateFunc { return table.RemoveColumn(at) },
	"set-cell":   func(at, col int, value string) table.MutateFunc { return table.Set(at, col, value) },
}

func (a *app) table(args []string) (err error) {
	fs := a.flags("table", "-table N -op OP -at K [-col C] [-value V] [-w] FILE")
	index := fs.Int("table", 0, "Index of the table in the document")
	op := fs.String("op", "", "insert-row, insert-col, delete-row, delete-col or set-cell")
	at := fs.Int("at", 0, "Row (insert after / delete / set-cell row; -1 is the header) or column index")
	col := fs.Int("col", 0, "Column of set-cell")
	value := fs.String("value", "", "New cell text for set-cell")
	write := fs.Bool("w", false, "Write the result back to FILE instead of stdout")
	path, err := a.parse(fs, args)
	if err != nil {
		return err
	}
	mutation, ok := tableOps[*op]
	if !ok {
		fs.Usage()
		return errUsage
	}

	doc, err := store.ReadFile(path)
	if err != nil {
		return err
	}
	e := engine.New(engine.WithContent(doc), engine.WithLogger(a.logger))
	tables := e.Tables()
	if *index < 0 || *index >= len(tables) {
		return fmt.Errorf("table %d not found (%d tables in %s)", *index, len(tables), path)
	}

	s := table.NewSynchronizer(
		table.WithPreserveAlign(a.cfg.Table.PreserveAlign),
		table.WithLogger(a.logger),
	)
	h := s.Open(tables[*index])
	if *write {
		saver := a.autosave(e, path)
		defer func() { err = errors.Join(err, saver.Close()) }()
	}
	changed, err := e.EditTable(s, h, mutation(*at, *col, *value))
	if err != nil {
		return err
	}
	if !changed {
		a.logger.Warn("%s %d on table %d changed nothing", *op, *at, *index)
	}

	if *write {
		return nil
	}
	_, err = fmt.Fprint(a.stdout, e.Export())
	return err
}
