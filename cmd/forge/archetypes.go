package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vango-dev/forge/internal/dev"
)

func archetypesCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "archetypes",
		Short: "List the archetypes defined by the configured files",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			f, err := dev.NewForge(cfg, newLogger(cmd.ErrOrStderr()), nil)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tTAG")
			for _, name := range f.Archetypes() {
				tag, _, _ := f.Archetype(name)
				fmt.Fprintf(tw, "%s\t%s\n", name, tag)
			}
			return tw.Flush()
		},
	}
}
