package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/nikogura/talent-match/pkg/logger"
	"github.com/nikogura/talent-match/pkg/server"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var serveAddr string

//nolint:gochecknoglobals // Cobra boilerplate
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the diagnosis and matching API over HTTP",
	Long: `Start the JSON API. The server stops gracefully on SIGINT or SIGTERM.

Example:
  talent-match serve
  talent-match serve --addr 127.0.0.1:9090`,
	RunE: runServe,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config)")
}

func runServe(cmd *cobra.Command, args []string) (err error) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, e, err := loadEngine(ctx, 0)
	if err != nil {
		return err
	}

	mode := cfg.Log.Mode
	if getVerbose() {
		mode = "development"
	}

	var log *logger.Logger
	log, err = logger.New(mode)
	if err != nil {
		return err
	}
	defer log.Sync()

	addr := serveAddr
	if addr == "" {
		addr = cfg.Server.Address
	}

	log.Info("starting server",
		"policy", e.Ranker.Scorer().Policy(),
		"characters", len(e.Catalog.Characters),
		"jobs", len(e.Catalog.Jobs),
	)

	err = server.New(e, log, cfg.Server.Mode).Run(ctx, addr)
	return err
}
