// Command viewlink turns a saved map viewpoint into a share link.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pspoerri/viewlink/internal/config"
	"github.com/pspoerri/viewlink/internal/logging"
)

// Set via -ldflags at build time.
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app carries the state the subcommands share once the root has run.
type app struct {
	configPath string
	logLevel   string
	verbose    bool

	cfg    *config.Config
	logger *slog.Logger
	closer io.Closer
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "viewlink",
		Short:         "Build share links from map viewpoints",
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, buildDate),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.closer != nil {
				return a.closer.Close()
			}
			return nil
		},
	}
	root.SetVersionTemplate("viewlink {{.Version}}\n")

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "Config file (default: viewlink.yaml in . or ./configs)")
	pf.StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")
	pf.BoolVar(&a.verbose, "verbose", false, "Debug logging")

	root.AddCommand(newURLCmd(a), newExtentCmd(a), newDestinationCmd())
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	bootstrap := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil))
	cfg, err := config.Load(a.configPath, bootstrap)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if a.verbose {
		cfg.Log.Level = "debug"
	}
	logger, closer, err := logging.New(cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	a.cfg, a.logger, a.closer = cfg, logger, closer
	logger.Debug("config loaded", "links", len(cfg.Links), "config", a.configPath)
	return nil
}
