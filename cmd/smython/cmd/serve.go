// File: serve.go
// Title: Serve Command
// Description: Runs the parse service: WebSocket and HTTP endpoints plus
//              the gRPC parser and health services.
// Author: msto63
// Version: v0.1.0
// Created: 2025-03-30
// Modified: 2025-03-30
//
// Change History:
// - 2025-03-30 v0.1.0: Initial command

package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	coreconfig "github.com/msto63/smython/foundation/core/config"
	mdwlog "github.com/msto63/smython/foundation/core/log"
	"github.com/msto63/smython/internal/server"
	"github.com/msto63/smython/pkg/core/config"
)

var (
	serveHTTPAddr string
	serveGRPCAddr string
	serveNoGRPC   bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the parse service",
	Long: `Run the parse service until interrupted.

Endpoints:
  /ws        WebSocket: {"type":"parse"|"tokens"|"ping","source":"..."}
  /healthz   liveness
  /version   build information
  /stats     parse result cache statistics
  gRPC       smython.v1.Parser/Parse and grpc.health.v1.Health`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveHTTPAddr, "http", "", "HTTP listen address (default: server.http_addr)")
	serveCmd.Flags().StringVar(&serveGRPCAddr, "grpc", "", "gRPC listen address (default: server.grpc_addr)")
	serveCmd.Flags().BoolVar(&serveNoGRPC, "no-grpc", false, "disable the gRPC listener")
}

func runServe(cmd *cobra.Command, args []string) error {
	env, err := setup(cmd, nil)
	if err != nil {
		return err
	}

	cfg := server.Config{
		HTTPAddr:    env.cfg.Server.HTTPAddr,
		GRPCAddr:    env.cfg.Server.GRPCAddr,
		ReadTimeout: env.cfg.Server.ReadTimeout,
		ResultCache: env.cfg.Server.ResultCache,
		Engine:      env.engine,
		Logger:      env.logger,
	}
	if serveHTTPAddr != "" {
		cfg.HTTPAddr = serveHTTPAddr
	}
	if serveGRPCAddr != "" {
		cfg.GRPCAddr = serveGRPCAddr
	}
	if serveNoGRPC {
		cfg.GRPCAddr = ""
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if src := env.cfg.Source(); src != nil && src.FilePath() != "" {
		go watchConfig(ctx, env)
	}

	env.logger.Info("starting parse service", mdwlog.Fields{
		"http_addr": cfg.HTTPAddr,
		"grpc_addr": cfg.GRPCAddr,
	})
	return server.New(cfg).Run(ctx)
}

// watchConfig validates the configuration file whenever it changes. Changes
// take effect on the next start.
func watchConfig(ctx context.Context, env *environment) {
	err := env.cfg.Source().Watch(ctx, func(src *coreconfig.Config, err error) {
		if err == nil {
			_, err = config.FromSource(src)
		}
		if err != nil {
			env.logger.Warn("configuration file changed but is invalid", mdwlog.Fields{"error": err.Error()})
			return
		}
		env.logger.Info("configuration file changed, restart to apply", mdwlog.Fields{"path": src.FilePath()})
	})
	if err != nil {
		env.logger.LogError(err)
	}
}
