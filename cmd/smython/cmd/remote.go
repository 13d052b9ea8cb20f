package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/msto63/smython/foundation/smython/parser"
	"github.com/msto63/smython/foundation/smython/token"
	"github.com/msto63/smython/internal/server"
	coregrpc "github.com/msto63/smython/pkg/core/grpc"
)

var (
	remoteAddr    string
	remoteTimeout time.Duration
)

var remoteCmd = &cobra.Command{
	Use:   "remote [file|-]",
	Short: "Parse a file through a running parse service",
	Long: `Send a file to the gRPC parse service started with "smython serve" and
print the returned tree dump. Syntax errors are reported like "parse".`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRemote,
}

func init() {
	rootCmd.AddCommand(remoteCmd)
	remoteCmd.Flags().StringVar(&remoteAddr, "addr", "", "service address (default: server.grpc_addr)")
	remoteCmd.Flags().DurationVar(&remoteTimeout, "timeout", 10*time.Second, "request timeout")
}

func runRemote(cmd *cobra.Command, args []string) error {
	env, err := setup(cmd, nil)
	if err != nil {
		return err
	}
	name, source, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	addr := remoteAddr
	if addr == "" {
		addr = env.cfg.Server.GRPCAddr
	}
	conn, err := coregrpc.Dial(coregrpc.DefaultClientConfig(addr))
	if err != nil {
		return err
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), remoteTimeout)
	defer cancel()
	reply, err := server.NewParserClient(conn).Parse(ctx, wrapperspb.String(source))
	if err != nil {
		return errors.Wrapf(err, "parse request to %s", addr)
	}

	res := server.ResultFromStruct(reply)
	if !res.OK {
		serr := &parser.SyntaxError{Pos: token.Position{Line: res.Line, Column: res.Column}, Msg: res.Message}
		printSyntaxError(cmd.ErrOrStderr(), name, source, serr)
		return errReported
	}
	fmt.Fprintln(cmd.OutOrStdout(), res.Dump)
	return nil
}
