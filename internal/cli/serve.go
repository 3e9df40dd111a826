package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/avoronov/clauselint/internal/pipeline"
	"github.com/avoronov/clauselint/internal/server"
	"github.com/avoronov/clauselint/internal/store"
)

var (
	serveAddr  string
	serveStore string
	serveDB    string
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Serve exposes the analyzer over HTTP: segmentation and analysis of
posted text, document CRUD, and report export in JSON or Markdown.

Example:
  clauselint serve
  clauselint serve --addr :9090 --store sqlite --db contracts.db`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config, :8080)")
	serveCmd.Flags().StringVar(&serveStore, "store", "", "document store backend: memory or sqlite")
	serveCmd.Flags().StringVar(&serveDB, "db", "", "sqlite database path")
}

func runServe(cmd *cobra.Command, args []string) error {
	// .env is optional and local-development only.
	_ = godotenv.Load()

	cfg := loadConfig()
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}
	if serveStore != "" {
		cfg.Server.Store = serveStore
	}
	if serveDB != "" {
		cfg.Server.SQLitePath = serveDB
	}

	var (
		st  store.Store
		err error
	)
	switch cfg.Server.Store {
	case "", "memory":
		st = store.NewMemoryStore()
	case "sqlite":
		st, err = store.NewSQLiteStore(cfg.Server.SQLitePath)
		if err != nil {
			return fmt.Errorf("open sqlite store: %w", err)
		}
	default:
		return fmt.Errorf("unknown store backend %q", cfg.Server.Store)
	}
	defer st.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg, st, pipeline.New(cfg))
	return srv.Run(ctx)
}
