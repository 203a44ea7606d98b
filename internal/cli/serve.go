package cli

import (
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	httpadapter "svw.info/sumgrid/internal/adapters/http"
	"svw.info/sumgrid/internal/config"
	"svw.info/sumgrid/internal/generator"
	"svw.info/sumgrid/internal/infrastructure/sched"
	"svw.info/sumgrid/internal/usecase"
)

var (
	addrFlag     string
	configFlag   string
	logLevelFlag string
	levelFlag    int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&addrFlag, "addr", "", "listen address (overrides config)")
	serveCmd.Flags().StringVar(&configFlag, "config", "", "path to YAML config file")
	serveCmd.Flags().StringVar(&logLevelFlag, "log-level", "info", "debug|info|warn|error")
	serveCmd.Flags().IntVar(&levelFlag, "level", 0, "starting level for new sessions (overrides config)")
	RootCmd.AddCommand(serveCmd)
}

func newLogger(level string) *slog.Logger {
	lvl := slog.LevelInfo
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configFlag)
	if err != nil {
		return err
	}
	if addrFlag != "" {
		cfg.Addr = addrFlag
	}
	if levelFlag > 0 {
		cfg.StartLevel = levelFlag
	}
	logger := newLogger(logLevelFlag)

	// Wire providers → use cases → HTTP adapter
	uc := usecase.NewService(cfg.Session(), generator.New(), sched.New(), logger)
	defer uc.Close()
	h := httpadapter.New(uc, cfg.StartLevel)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(logger))
	h.Register(r)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	logger.Info("listening", "addr", cfg.Addr, "startLevel", cfg.StartLevel)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
