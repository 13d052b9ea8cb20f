package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/msto63/smython/internal/server"
	coregrpc "github.com/msto63/smython/pkg/core/grpc"
	"github.com/msto63/smython/pkg/core/health"
	"github.com/msto63/smython/pkg/core/version"
)

var (
	statusAddr    string
	statusTimeout time.Duration
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check a running parse service",
	Long: `Query the gRPC health service of a running "smython serve" for the
server and the smython.v1.Parser service. The exit status is 1 unless both
are serving.`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
	statusCmd.Flags().StringVar(&statusAddr, "addr", "", "service address (default: server.grpc_addr)")
	statusCmd.Flags().DurationVar(&statusTimeout, "timeout", 5*time.Second, "check timeout")
}

func runStatus(cmd *cobra.Command, args []string) error {
	env, err := setup(cmd, nil)
	if err != nil {
		return err
	}
	addr := statusAddr
	if addr == "" {
		addr = env.cfg.Server.GRPCAddr
	}
	conn, err := coregrpc.Dial(coregrpc.DefaultClientConfig(addr))
	if err != nil {
		return err
	}
	defer conn.Close()

	registry := health.NewRegistry("smython", version.Version)
	registry.Register(health.GRPCCheck("server", conn, ""))
	registry.Register(health.GRPCCheck("parser", conn, server.ParserServiceName))
	report := registry.CheckWithTimeout(statusTimeout)

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%s %s\n", pathStyle.Render(addr), statusStyle(report.Status).Render(string(report.Status)))
	for _, res := range report.Checks {
		fmt.Fprintf(w, "  %-8s %s %s\n", res.Name, statusStyle(res.Status).Render(string(res.Status)), mutedStyle.Render(res.Message))
	}
	if report.Status != health.StatusHealthy {
		return errReported
	}
	return nil
}
