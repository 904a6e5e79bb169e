package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/yeremiapane/kitchenlog/pipeline"
	"github.com/yeremiapane/kitchenlog/router"
	"github.com/yeremiapane/kitchenlog/services"
	"github.com/yeremiapane/kitchenlog/utils"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and, when ARCHIVE_DIR is set, the nightly archive",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, err := newApp(cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		srv := &http.Server{
			Addr: ":" + cfg.Server.Port,
			Handler: router.SetupRouter(router.Dependencies{
				Config:     cfg,
				Records:    a.Records,
				Exports:    a.Exports,
				Thresholds: pipeline.DefaultThresholds,
			}),
			ReadHeaderTimeout: 10 * time.Second,
		}

		var sched *services.ArchiveScheduler
		if cfg.Export.ArchiveDir != "" {
			sched = services.NewArchiveScheduler(a.Exports, cfg.Export.ArchiveDir, cfg.Export.ArchiveCron)
			if err := sched.Start(); err != nil {
				return err
			}
		}

		g, ctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			utils.InfoLogger.Printf("Listening on port %s", cfg.Server.Port)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})

		if sched != nil {
			g.Go(func() error {
				<-ctx.Done()
				sched.Stop()
				return nil
			})
		}

		g.Go(func() error {
			<-ctx.Done()
			utils.InfoLogger.Println("Shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})

		return g.Wait()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
