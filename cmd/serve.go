package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/slideai/internal/config"
	"github.com/ziadkadry99/slideai/internal/history"
	"github.com/ziadkadry99/slideai/internal/markdown"
	"github.com/ziadkadry99/slideai/internal/server"
	"github.com/ziadkadry99/slideai/internal/session"
	"github.com/ziadkadry99/slideai/internal/web"
)

// requestMargin is added to the endpoint timeout so a generation request
// fails on the endpoint deadline before the HTTP request deadline.
const requestMargin = 15 * time.Second

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web interface",
	Long:  `Starts the slideai web interface: topic entry, file upload, the slideshow viewer and the script navigator.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "port to listen on (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if servePort > 0 {
		cfg.Server.Port = servePort
	}

	provider, err := createProviderFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("creating completion provider: %w", err)
	}

	store, closeDB, err := openHistory(cfg)
	if err != nil {
		return err
	}
	defer closeDB()

	gen := session.NewGenerator(provider, session.SettingsFromConfig(cfg), store)
	sessions := session.NewManager(gen, markdown.New())

	srv := server.New(server.Config{
		Port:            cfg.Server.Port,
		AllowAll:        cfg.Server.AllowAllOrigins,
		RequestTimeout:  requestTimeout(cfg),
		MaxRequestBytes: cfg.Server.MaxRequestBytes,
		Sessions:        sessions.Len,
	})
	registerAllRoutes(srv, sessions, store, cfg)

	// Graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go sessions.Run(ctx, 0, cfg.Server.SessionTTL)

	go func() {
		<-ctx.Done()
		fmt.Fprintln(os.Stderr, "\nShutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	fmt.Fprintf(os.Stderr, "slideai server %s starting on port %d\n", Version, cfg.Server.Port)
	fmt.Fprintf(os.Stderr, "  Endpoint: %s (%s)\n", cfg.Endpoint.URL, cfg.Provider)
	fmt.Fprintf(os.Stderr, "  Models:   slides=%s script=%s\n", cfg.Models.Slides, cfg.Models.Script)
	if verbose {
		fmt.Fprintf(os.Stderr, "  History:  %s\n", cfg.Server.DataDir)
	}

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// registerAllRoutes wires the feature routes onto the server router.
func registerAllRoutes(srv *server.Server, sessions *session.Manager, store *history.Store, cfg *config.Config) {
	r := srv.Router()

	// Presentation sessions and the index page
	w := web.New(sessions, uploadFilter(cfg))
	w.RegisterRoutes(r)

	// Generation history
	history.RegisterRoutes(r, store)
}

func requestTimeout(cfg *config.Config) time.Duration {
	if cfg.Endpoint.Timeout <= 0 {
		return 0
	}
	return cfg.Endpoint.Timeout + requestMargin
}
