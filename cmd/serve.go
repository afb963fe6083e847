package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexiusacademia/rcflex/internal/log"
	"github.com/alexiusacademia/rcflex/internal/server"
	"github.com/alexiusacademia/rcflex/internal/steel"
	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the JSON API",
	Long: `Start an HTTP server exposing the analysis as JSON:

  POST /api/evaluate               evaluate a section
  POST /api/layout                 one-layer minimum width
  GET  /api/bars                   bar catalog
  GET  /api/bars/{designation}     one bar size
  GET  /healthz                    liveness

Examples:
  rcflex serve --addr :8080`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	c := cfg
	if serveAddr != "" {
		c.Server.Addr = serveAddr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Debugf("solver %s, max %d iterations, fallback %v", c.Solver.Method, c.Solver.MaxIterations, c.Solver.Fallback)
	if err := server.New(steel.Standard, c).Run(ctx); err != nil {
		return err
	}
	log.Info("Server stopped")
	return nil
}
