package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pagewright/pagewright/internal/server"
)

// serveCmd runs the live preview server.
var serveCmd = &cobra.Command{
	Use:   "serve <document>",
	Short: "Serve a live preview with hot reload",
	Long: `Serve compiles the document and serves the result over HTTP. The event
log is watched for changes; every write triggers a recompile and a reload
push to connected browsers. A broken design keeps the last good output on
screen with the current errors shown in a banner.`,
	Args: cobra.ExactArgs(1),
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 0, "port to listen on (overrides config)")
	serveCmd.Flags().String("host", "", "host to bind to (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	rt, err := openRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	host := rt.cfg.Server.Host
	port := rt.cfg.Server.Port
	if flagPort, _ := cmd.Flags().GetInt("port"); flagPort != 0 {
		port = flagPort
	}
	if flagHost, _ := cmd.Flags().GetString("host"); flagHost != "" {
		host = flagHost
	}

	srv := server.New(server.Options{
		Host:       host,
		Port:       port,
		DocumentID: args[0],
		DBPath:     rt.db.Path(),
	}, rt.newPipeline(rt.cfg.CodeOptions()), rt.logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start(ctx) }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
