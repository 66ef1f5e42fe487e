// Serve command runs the HTTP API.
package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/datascope/internal/httpapi"
)

var flagListenAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the DataScope HTTP API",
	Long: `Serve opens the database and exposes the REST API until interrupted.

The listen address is resolved as: --listen flag > config.yaml listen_addr >
the built-in default.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagListenAddr, "listen", "", "listen address (default: config listen_addr)")
}

func runServe(cmd *cobra.Command, args []string) error {
	backend, err := attachBackend()
	if err != nil {
		return err
	}
	defer backend.Detach()

	addr := flagListenAddr
	if addr == "" {
		addr = configListenAddr
	}

	server := httpapi.New(backend)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Listen(addr)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	color.Green("datascope listening on %s", addr)

	select {
	case err := <-errCh:
		return err
	case <-sigCh:
		color.Yellow("shutting down")
		return server.Shutdown()
	}
}
