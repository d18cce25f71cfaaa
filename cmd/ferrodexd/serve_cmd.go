package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vvalberg/ferrodex/internal/config"
	"github.com/vvalberg/ferrodex/internal/httpserver"
	"github.com/vvalberg/ferrodex/internal/obs"
)

var serveIndexRoot string
var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Build the index once and answer queries over HTTP",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveIndexRoot, "root", ".", "directory to index before serving")
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "HTTP listen address (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	v := viperFromFlags(cmd)
	cfg, err := config.Load(v, cfgFile)
	if err != nil {
		return err
	}
	cfg.Index.Root = serveIndexRoot
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}

	log := obs.NewLogger(cmd.OutOrStderr(), cfg.Log.Level, cfg.Log.Pretty)

	idx, err := buildIndex(cfg.Index, log)
	if err != nil {
		return err
	}

	srv := httpserver.New(httpserver.DefaultConfig(cfg.Server.Addr), idx, log)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-sigCh:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}
