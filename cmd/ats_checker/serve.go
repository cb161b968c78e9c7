package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-ats-checker/internal/server"
	"github.com/jonathan/resume-ats-checker/internal/server/ratelimit"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the analysis over REST. History endpoints are enabled when database.url is set.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides server.port)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, true)
	if err != nil {
		return err
	}
	defer a.close()

	if servePort != 0 {
		a.cfg.Server.Port = servePort
	}

	deps := server.Deps{
		Analyzer: a.engine,
		Limiter:  ratelimit.NewLimiter(ratelimit.NewConfig(a.cfg.RateLimit)),
		Logger:   a.log,
	}
	if a.store != nil {
		deps.Store = a.store
	}
	if a.cfg.Auth.Enabled {
		deps.Tokens = server.NewTokenService(a.cfg.Auth.Secret, a.cfg.Auth.ExpirationHours)
	}

	if err := server.New(a.cfg.Server, deps).Start(ctx); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}
