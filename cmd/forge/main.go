package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vango-dev/forge/internal/config"
	"github.com/vango-dev/forge/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ┌─┐┌─┐┬─┐┌─┐┌─┐
  ├┤ │ │├┬┘│ ┬├┤
  └  └─┘┴└─└─┘└─┘
`

// globals are the persistent flags shared by every command.
type globals struct {
	dir   string
	viper *viper.Viper
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		errors.PrintError(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	g := &globals{viper: viper.New()}

	rootCmd := &cobra.Command{
		Use:   "forge",
		Short: "Build documents from declarative element options",
		Long: `forge builds HTML documents from declarative element options.

Archetypes (named element templates) are loaded from YAML files,
instantiated into a base document and rendered. The preview server
serves the document live and reloads browsers on change.

Settings come from forge.json, FORGE_* environment variables and
flags, in increasing order of precedence.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&g.dir, "config", "c", "", "directory containing forge.json (default: search upward from cwd)")
	flags.Bool("dev", false, "enable verbose diagnostic logging")
	flags.Bool("strict-alias", false, "fail when an alias is registered twice")
	flags.Int("max-notify-depth", 0, "re-entrant state notification limit")
	flags.String("document", "", "base HTML document")
	flags.StringSlice("archetypes", nil, "archetype YAML files")

	_ = g.viper.BindPFlag("dev", flags.Lookup("dev"))
	_ = g.viper.BindPFlag("strictAlias", flags.Lookup("strict-alias"))
	_ = g.viper.BindPFlag("maxNotifyDepth", flags.Lookup("max-notify-depth"))
	_ = g.viper.BindPFlag("document", flags.Lookup("document"))
	_ = g.viper.BindPFlag("archetypes", flags.Lookup("archetypes"))

	rootCmd.AddCommand(
		renderCmd(g),
		archetypesCmd(g),
		previewCmd(g),
		versionCmd(),
	)

	return rootCmd
}

// loadConfig reads forge.json, overlays environment and flags, and
// validates the result.
func (g *globals) loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if g.dir != "" {
		cfg, err = config.Load(g.dir)
	} else {
		cfg, err = config.LoadFromWorkingDir()
	}
	if err != nil {
		return nil, err
	}

	cfg.Overlay(g.viper)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger writes to w, including debug output so dev mode can surface it.
func newLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// printBanner prints the forge ASCII art banner.
func printBanner(w io.Writer) {
	fmt.Fprint(w, banner)
}

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "  %s\n", fmt.Sprintf(format, args...))
}
