package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	httpAdapter "github.com/DavidOsipov/Aegis-Animator/internal/adapters/http"
	"github.com/DavidOsipov/Aegis-Animator/internal/cli"
	"github.com/DavidOsipov/Aegis-Animator/internal/logging"
	"github.com/DavidOsipov/Aegis-Animator/pkg/observability"
	"github.com/DavidOsipov/Aegis-Animator/pkg/registry"
)

// serveCmd attaches a scenario's animators and keeps them observable
// over HTTP: instance statuses as JSON plus a Prometheus endpoint.
var serveCmd = &cobra.Command{
	Use:   "serve <scenario.yaml>",
	Short: "Attach a scenario and expose instance metrics over HTTP",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		logger := logging.New(logLevel(cmd))
		port, _ := cmd.Flags().GetString("port")

		sc, err := cli.LoadScenario(args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		promReg := prometheus.NewRegistry()
		metrics := observability.New(promReg)

		printer := cli.NewPrinter(os.Stdout)
		session, err := cli.NewSession(sc, logger, printer, registry.WithMetrics(metrics))
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		defer session.Close()

		srv := &http.Server{
			Addr:    ":" + port,
			Handler: httpAdapter.NewHandler(session.Registry, promReg),
		}

		serverErrors := make(chan error, 1)
		go func() {
			fmt.Printf("Serving instance metrics on %s\n", srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)
		case sig := <-shutdown:
			fmt.Printf("\nShutting down... Signal: %v\n", sig)
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				_ = srv.Close()
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("port", "8080", "Port for the observability server")
}
