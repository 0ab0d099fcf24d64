package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/marksmith/internal/markdown"
	"github.com/dshills/marksmith/internal/store"
)

func (a *app) watch(args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return a.watchContext(ctx, args)
}

// watchContext prints a table summary of FILE now and after every change,
// until ctx is done.
func (a *app) watchContext(ctx context.Context, args []string) error {
	fs := a.flags("watch", "FILE")
	path, err := a.parse(fs, args)
	if err != nil {
		return err
	}

	w, err := store.NewWatcher(path, 0)
	if err != nil {
		return err
	}
	defer w.Close()

	summarizeFile := func() {
		doc, err := store.ReadFile(path)
		if err != nil {
			a.logger.Warn("%v", err)
			return
		}
		tables := markdown.Tables(markdown.Parse(doc))
		fmt.Fprintf(a.stdout, "%s: %d tables\n", path, len(tables))
		for _, t := range tables {
			fmt.Fprintf(a.stdout, "  %s\n", t)
		}
	}

	summarizeFile()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-w.Events():
			a.logger.Debug("%s %s", ev.Op, ev.Path)
			summarizeFile()
		case err := <-w.Errors():
			a.logger.Error("watch: %v", err)
		}
	}
}
