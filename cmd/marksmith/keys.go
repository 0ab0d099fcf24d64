package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/dshills/marksmith/internal/command"
)

func (a *app) keys(args []string) error {
	fs := a.flags("keys", "")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	r, plugins, err := a.registry()
	if err != nil {
		return err
	}
	defer closePlugins(plugins)

	k := command.DefaultKeymap()
	if err := a.cfg.ApplyKeymap(k); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
	for _, b := range k.Bindings() {
		desc := "(unknown command)"
		if cmd, ok := r.Lookup(b.Command); ok {
			desc = cmd.Description
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", b.Keys, b.Command, desc)
	}
	return tw.Flush()
}
