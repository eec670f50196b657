package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/msto63/minilang/internal/chomsky/server"
	"github.com/msto63/minilang/internal/chomsky/service"
	coreGrpc "github.com/msto63/minilang/pkg/core/grpc"
	"github.com/msto63/minilang/pkg/core/logging"
	"github.com/spf13/cobra"
)

var (
	remoteAddr    string
	remoteFormat  string
	remoteTimeout time.Duration
)

var remoteCmd = &cobra.Command{
	Use:   "remote [datei]",
	Short: "Prüft ein Programm über einen laufenden Server",
	Long: `Schickt ein Programm per gRPC an einen laufenden minilang-Server
(minilang serve) und gibt das Ergebnis aus.

Beispiele:
  minilang remote prog.ml
  minilang remote --addr analyzer.local:9300 prog.ml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRemote,
}

func init() {
	rootCmd.AddCommand(remoteCmd)
	remoteCmd.Flags().StringVar(&remoteAddr, "addr", "", "gRPC-Adresse (default: localhost:<server.grpc_port>)")
	remoteCmd.Flags().StringVarP(&remoteFormat, "format", "f", formatText, "Ausgabeformat (text, json, yaml)")
	remoteCmd.Flags().DurationVar(&remoteTimeout, "timeout", 30*time.Second, "Timeout pro Aufruf")
}

// dialAnalyzer connects to a running analyzer; addr may be empty
func dialAnalyzer(addr string) (*server.AnalyzerClient, func(), error) {
	if addr == "" {
		addr = fmt.Sprintf("localhost:%d", appConfig.Server.GRPCPort)
	}
	cfg := coreGrpc.DefaultClientConfig(addr)
	cfg.Logger = logging.Wrap(logger, "minilang-client")
	conn, err := coreGrpc.Dial(cfg)
	if err != nil {
		return nil, nil, err
	}
	timeout := remoteTimeout
	if timeout <= 0 {
		timeout = cfg.Timeout
	}
	return server.NewAnalyzerClient(conn, timeout), func() { _ = conn.Close() }, nil
}

func runRemote(cmd *cobra.Command, args []string) error {
	if err := validateFormat(remoteFormat); err != nil {
		return err
	}
	name, source, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	client, closeFn, err := dialAnalyzer(remoteAddr)
	if err != nil {
		return err
	}
	defer closeFn()

	resp, err := client.Check(context.Background(), &service.CheckRequest{Name: name, Source: source})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if remoteFormat == formatText {
		printReport(out, resp)
	} else if err := encode(out, remoteFormat, resp); err != nil {
		return err
	}
	if !resp.OK {
		return ErrProblemsFound
	}
	return nil
}
