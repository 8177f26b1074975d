package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	cfgpkg "github.com/KaramelBytes/carloom/internal/config"
	"github.com/KaramelBytes/carloom/internal/dataset"
	"github.com/KaramelBytes/carloom/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the exploration dashboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		if serveAddr != "" {
			cfg.ListenAddr = serveAddr
		}

		log, err := newLogger()
		if err != nil {
			return fmt.Errorf("build logger: %w", err)
		}
		defer func() { _ = log.Sync() }()

		// Dataset load failures are the only fatal error class.
		raw, err := dataset.Load(cfg.RawPath)
		if err != nil {
			return err
		}
		clean, err := dataset.Load(cfg.CleanedPath)
		if err != nil {
			return err
		}
		log.Info("datasets loaded",
			zap.String("raw", cfg.RawPath), zap.Int("raw_rows", raw.NumRows()),
			zap.String("cleaned", cfg.CleanedPath), zap.Int("cleaned_rows", clean.NumRows()),
		)

		srv := server.New(cfg, raw, clean, log)
		httpSrv := &http.Server{
			Addr:              cfg.ListenAddr,
			Handler:           srv.Router(),
			ReadHeaderTimeout: 10 * time.Second,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		g, ctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			log.Info("dashboard listening", zap.String("addr", cfg.ListenAddr))
			if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			timeout := time.Duration(cfg.ShutdownTimeoutSec) * time.Second
			shCtx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()
			return httpSrv.Shutdown(shCtx)
		})
		if err := g.Wait(); err != nil {
			return err
		}
		fmt.Println("✓ Server stopped")
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config)")
	rootCmd.AddCommand(serveCmd)
}
