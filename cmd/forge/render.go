package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/forge/internal/dev"
	"github.com/vango-dev/forge/pkg/dom"
	"github.com/vango-dev/forge/pkg/forge"
)

func renderCmd(g *globals) *cobra.Command {
	var (
		archetypes []string
		into       string
		output     string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Instantiate archetypes and print the document",
		Long: `Instantiate archetypes into the base document and print the result.

Each --archetype is instantiated in order and appended to the element
matched by --into (default from forge.json, "body" when unset).

Examples:
  forge render --archetype card --into body
  forge render -a header -a card --into "#app" -o dist/index.html`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			if into != "" {
				cfg.Into = into
			}

			f, err := dev.NewForge(cfg, newLogger(cmd.ErrOrStderr()), nil)
			if err != nil {
				return err
			}

			for _, name := range archetypes {
				el, err := f.UseArchetypeContext(cmd.Context(), name, forge.Options{})
				if err != nil {
					return err
				}
				if _, err := el.Into(dom.Selector(cfg.Into)); err != nil {
					return err
				}
			}

			if output == "" {
				return f.Document().Render(cmd.OutOrStdout())
			}
			file, err := os.Create(output)
			if err != nil {
				return err
			}
			defer file.Close()
			if err := f.Document().Render(file); err != nil {
				return err
			}
			success(cmd.ErrOrStderr(), "Wrote %s", output)
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&archetypes, "archetype", "a", nil, "archetype to instantiate (repeatable)")
	cmd.Flags().StringVarP(&into, "into", "i", "", "parent selector (default from forge.json)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")

	return cmd
}
