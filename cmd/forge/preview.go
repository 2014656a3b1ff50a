package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vango-dev/forge/internal/dev"
)

func previewCmd(g *globals) *cobra.Command {
	var (
		port    int
		host    string
		noWatch bool
	)

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Start the preview server",
		Long: `Start the preview server with live reload.

The server renders the document, instantiates archetypes and sets
state over HTTP, and refreshes connected browsers when archetype
files change.

Examples:
  forge preview
  forge preview --port=8080
  forge preview --host=0.0.0.0 --no-watch`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			if port > 0 {
				cfg.Preview.Port = port
			}
			if host != "" {
				cfg.Preview.Host = host
			}
			if noWatch {
				cfg.Preview.Watch = false
			}

			out := cmd.ErrOrStderr()
			server, err := dev.NewPreviewServer(dev.PreviewOptions{
				Config: cfg,
				Logger: newLogger(out),
				OnReload: func(files []string, err error) {
					if err == nil {
						success(out, "Reloaded %v", files)
					}
				},
			})
			if err != nil {
				return err
			}

			printBanner(out)
			info(out, "preview %s", cfg.PreviewURL())

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()
			return server.Start(ctx)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from forge.json)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from forge.json)")
	cmd.Flags().BoolVar(&noWatch, "no-watch", false, "Do not reload archetype files on change")

	return cmd
}
