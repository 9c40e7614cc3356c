package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aj-tap/supersqlhunt/internal/fetch"
	"github.com/aj-tap/supersqlhunt/internal/server"
	"github.com/aj-tap/supersqlhunt/internal/site"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the catalog HTTP server",
	Long: `Serves the catalog with server-side search, the contribution form and
a JSON API. The rules document is loaded once at startup.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().Int("port", 0, "listen port (defaults to server.port)")
	serveCmd.Flags().String("url", "", "load rules from a published site instead of the local document")
	serveCmd.Flags().Bool("open", false, "open browser automatically")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	port, _ := cmd.Flags().GetInt("port")
	if port == 0 {
		port = cfg.Server.Port
	}
	baseURL, _ := cmd.Flags().GetString("url")

	src, err := newSource(cfg, baseURL)
	if err != nil {
		return err
	}
	once := fetch.NewOnce(src)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Warm the shared document so startup reports load problems.
	if all, err := once.Fetch(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: rules could not be loaded: %v\n", err)
	} else {
		fmt.Fprintf(os.Stderr, "  Rules loaded: %d\n", len(all))
	}

	html, err := newHTML(cfg, "")
	if err != nil {
		return err
	}
	srv := server.New(server.Config{
		Port:     port,
		AllowAll: cfg.Server.AllowAll,
	}, once, html, cfg.SubmitRepo())

	go func() {
		<-ctx.Done()
		fmt.Fprintln(os.Stderr, "\nShutting down server...")
		srv.Shutdown(context.Background())
	}()

	if open, _ := cmd.Flags().GetBool("open"); open {
		go site.OpenBrowser(fmt.Sprintf("http://localhost:%d", port))
	}

	fmt.Fprintf(os.Stderr, "sqlhunt server %s starting on port %d\n", Version, port)
	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
