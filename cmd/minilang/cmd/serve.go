package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/msto63/minilang/internal/chomsky/server"
	"github.com/msto63/minilang/internal/chomsky/service"
	"github.com/msto63/minilang/pkg/core/logging"
	"github.com/msto63/minilang/pkg/core/version"
	"github.com/spf13/cobra"
)

var (
	serveGRPCPort int
	serveHTTPPort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Startet den Analyse-Server (gRPC und HTTP)",
	Long: `Startet den Analyse-Server.

Endpunkte:
  gRPC  minilang.v1.Analyzer (Check, History, GetRun)   default :9300
  HTTP  GET /healthz, GET /version, /ws (WebSocket)     default :8300

Mit store.enabled=true wird jeder Check in der Historie gespeichert.

Beispiele:
  minilang serve
  minilang serve --grpc-port 9400 --http-port 8400`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntVar(&serveGRPCPort, "grpc-port", 0, "gRPC-Port (überschreibt server.grpc_port)")
	serveCmd.Flags().IntVar(&serveHTTPPort, "http-port", 0, "HTTP-Port (überschreibt server.http_port)")
}

func runServe(cmd *cobra.Command, args []string) error {
	if serveGRPCPort != 0 {
		appConfig.Server.GRPCPort = serveGRPCPort
	}
	if serveHTTPPort != 0 {
		appConfig.Server.HTTPPort = serveHTTPPort
	}

	svcCfg := service.Config{
		MaxInputLength: appConfig.Engine.MaxInputLength,
		CacheMaxItems:  appConfig.Cache.MaxItems,
		CacheTTL:       appConfig.Cache.TTL.Duration,
		Logger:         logger,
	}
	if appConfig.Store.Enabled {
		s, err := openStore()
		if err != nil {
			return err
		}
		svcCfg.Store = s
	}
	svc := service.NewService(svcCfg)
	defer svc.Close()

	srv := server.New(server.Config{
		Host:            appConfig.Server.Host,
		GRPCPort:        appConfig.Server.GRPCPort,
		HTTPPort:        appConfig.Server.HTTPPort,
		ShutdownTimeout: appConfig.Server.ShutdownTimeout.Duration,
		Logger:          logging.Wrap(logger, "chomsky"),
	}, svc)

	if err := srv.Start(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, headerStyle.Render("minilang v"+version.ServiceVersion("chomsky")))
	fmt.Fprintf(out, "  gRPC: %s\n", appConfig.GRPCAddress())
	fmt.Fprintf(out, "  HTTP: %s\n", appConfig.HTTPAddress())
	fmt.Fprintln(out, "Beenden mit Ctrl+C")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case <-sigCh:
	case <-cmd.Context().Done():
	}

	fmt.Fprintln(out, "Server wird beendet...")
	return srv.Stop(context.Background())
}
