package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aretw0/canvass/internal/cli"
	"github.com/aretw0/canvass/internal/httpapi"
	"github.com/aretw0/canvass/internal/logging"
	"github.com/aretw0/canvass/pkg/observability"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the stateless HTTP server",
	Long:  `Serves the survey over a JSON API. Session state lives in the configured store, so the server itself can be restarted freely.`,
	Run: func(cmd *cobra.Command, args []string) {
		ref, _ := cmd.Flags().GetString("survey")
		port, _ := cmd.Flags().GetString("port")
		redisAddr, _ := cmd.Flags().GetString("redis")
		stateDir, _ := cmd.Flags().GetString("state-dir")
		submitURL, _ := cmd.Flags().GetString("submit-url")

		store := cli.ResolveStore("server", redisAddr, stateDir)

		cfg := httpapi.Config{
			Source:  cli.ResolveSource(ref),
			Ref:     ref,
			Store:   store,
			Metrics: observability.New(),
			Logger:  logging.New(slog.LevelInfo),
		}
		if submitURL != "" {
			cfg.Submitter = cli.NewHTTPSubmitter(submitURL)
		}

		srv := &http.Server{
			Addr:    ":" + port,
			Handler: httpapi.NewHandler(cfg),
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			fmt.Printf("Starting Canvass Server on %s\n", srv.Addr)
			fmt.Printf("Serving survey: %s\n", ref)
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			fmt.Printf("\nStart shutdown... Signal: %v\n", sig)

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				fmt.Printf("Graceful shutdown did not complete in %v: %v\n", 5*time.Second, err)
				if err := srv.Close(); err != nil {
					fmt.Printf("Error killing server: %v\n", err)
				}
			}
			fmt.Println("Canvass Server stopped gracefully")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	serveCmd.Flags().String("submit-url", "", "Endpoint to POST finished submissions to")
}
