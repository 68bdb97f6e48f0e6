package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/scenekit/scenekit"
	"github.com/scenekit/scenekit/pkg/adapters/dialogyaml"
	httpadapter "github.com/scenekit/scenekit/pkg/adapters/http"
	"github.com/scenekit/scenekit/pkg/adapters/memory"
	redisadapter "github.com/scenekit/scenekit/pkg/adapters/redis"
	"github.com/scenekit/scenekit/pkg/observability"
	"github.com/scenekit/scenekit/pkg/ports"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP webhook server",
	Long:  `Starts the engine behind a JSON API over HTTP. With --redis, session history lives in Redis and event handling is guarded by a distributed lock, so multiple replicas can share the store.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")
		port, _ := cmd.Flags().GetString("port")
		redisAddr, _ := cmd.Flags().GetString("redis")

		logger := newLogger()

		dialogs, err := dialogyaml.LoadFile(file)
		if err != nil {
			return fmt.Errorf("failed to load %s: %w", file, err)
		}

		var store ports.SceneStore = memory.NewStore()
		opts := []scenekit.Option{scenekit.WithLogger(logger)}
		if redisAddr != "" {
			redisStore := redisadapter.New(redisAddr, "", 0)
			defer redisStore.Close()
			store = redisStore
			opts = append(opts, scenekit.WithLocker(redisadapter.NewLocker(redisStore.Client(), "scenekit:lock:")))
		}

		metrics := observability.New()
		opts = append(opts, scenekit.WithMetrics(metrics))

		engine, err := scenekit.New(dialogs, store, opts...)
		if err != nil {
			return err
		}

		handler := httpadapter.NewHandler(engine,
			httpadapter.WithMetrics(metrics),
			httpadapter.WithLogger(logger),
		)

		srv := &http.Server{
			Addr:    ":" + port,
			Handler: handler,
		}

		serverErrors := make(chan error, 1)
		go func() {
			logger.Info("server starting", "addr", srv.Addr, "file", file)
			serverErrors <- srv.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			return fmt.Errorf("server error: %w", err)

		case sig := <-shutdown:
			logger.Info("shutdown started", "signal", sig.String())

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				logger.Warn("graceful shutdown did not complete", "err", err)
				if err := srv.Close(); err != nil {
					return fmt.Errorf("failed to stop server: %w", err)
				}
			}
			logger.Info("server stopped")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	serveCmd.Flags().String("redis", "", "Redis address for session storage (host:port); empty keeps sessions in memory")
}
