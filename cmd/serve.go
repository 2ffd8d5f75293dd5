package cmd

import (
	"context"
	"net"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/grovetools/praise/cli"
	"github.com/grovetools/praise/config"
	"github.com/grovetools/praise/internal/server"
	"github.com/grovetools/praise/internal/session"
	"github.com/grovetools/praise/internal/watch"
	"github.com/grovetools/praise/logging"
	"github.com/grovetools/praise/pkg/paths"
	"github.com/grovetools/praise/pkg/presenter"
	"github.com/grovetools/praise/pkg/workers"
)

// NewServeCmd creates the `serve` command.
func NewServeCmd() *cobra.Command {
	var (
		flags   assetFlags
		addr    string
		noWatch bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the praise page over HTTP",
		Long: `Serve the praise page over HTTP.

Examples:
  praise serve
  praise serve --addr 127.0.0.1:9000 --variant single
  praise serve --assets ./photos --no-watch`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cli.LoadConfig(cmd)
			if err != nil {
				return err
			}
			if err := flags.apply(cfg); err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			if noWatch {
				cfg.Assets.Watch = new(bool)
			}

			ln, err := net.Listen("tcp", cfg.Server.Addr)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServer(ctx, cfg, ln, logging.NewLogger("praise-server"))
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides server.addr)")
	cmd.Flags().BoolVar(&noWatch, "no-watch", false, "Do not watch the asset directory for changes")
	return cmd
}

// runServer serves on ln until ctx is cancelled, then shuts down within
// the configured grace period.
func runServer(ctx context.Context, cfg *config.Config, ln net.Listener, logger *logrus.Entry) error {
	if err := paths.EnsureDirs(); err != nil {
		logger.WithError(err).Warn("Could not create state directories")
	}

	source := workerSource(cfg)
	store := session.New(
		func() *presenter.Presenter { return newPresenter(cfg, time.Now) },
		session.WithIdleTTL(cfg.Session.IdleTTL.Std()),
	)
	srv := server.New(logger, store, source, server.Options{
		Title:        cfg.Title,
		CookieName:   cfg.Session.CookieName,
		ReadTimeout:  cfg.Server.ReadTimeout.Std(),
		WriteTimeout: cfg.Server.WriteTimeout.Std(),
		InlineImages: cfg.Assets.Inline,
	})

	if list, err := source(); err == nil {
		logger.WithField("workers", workers.Names(list)).Debug("Initial workers")
	}

	g, gctx := errgroup.WithContext(ctx)

	if cfg.WatchEnabled() {
		w, err := watch.New(cfg.Assets.Dir, cfg.Assets.Extensions, watch.DefaultDebounce, srv.NotifyWorkersChanged)
		if err != nil {
			logger.WithError(err).Warn("Asset watcher unavailable; open pages will not refresh on their own")
		} else {
			g.Go(func() error {
				w.Start(gctx)
				return nil
			})
		}
	}

	g.Go(func() error {
		logger.WithFields(logrus.Fields{
			"addr":    ln.Addr().String(),
			"assets":  cfg.Assets.Dir,
			"variant": cfg.Presenter.Variant,
		}).Info("Serving praise page")
		return srv.Serve(ln)
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout.Std())
		defer cancel()
		logger.Info("Shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
