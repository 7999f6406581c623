package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yourusername/tg-vidbot/api"
	"github.com/yourusername/tg-vidbot/internal/app"
	"github.com/yourusername/tg-vidbot/internal/bot"
	"github.com/yourusername/tg-vidbot/internal/domain"
	"github.com/yourusername/tg-vidbot/internal/infrastructure"
	"github.com/yourusername/tg-vidbot/pkg/logger"
)

const version = "1.0.0"

var (
	configPath string

	rootCmd = &cobra.Command{
		Use:   "vidbot",
		Short: "Telegram video downloader bot",
		Long:  `A Telegram bot that downloads videos from YouTube, Instagram, TikTok and other platforms and sends them back as media files.`,
	}

	runCmd = &cobra.Command{
		Use:   "run",
		Short: "Start the bot",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run()
		},
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("vidbot " + version)
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Fails fast when TELEGRAM_BOT_TOKEN is absent
	config, err := app.LoadConfig(configPath)
	if err != nil {
		return err
	}

	log, err := logger.New(logger.Config{
		Level:      config.Logging.Level,
		Format:     config.Logging.Format,
		OutputPath: config.Logging.OutputPath,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer log.Sync()

	log.Info("Starting vidbot",
		zap.String("version", version),
		zap.String("download_dir", config.Download.BaseDir),
		zap.Bool("history", config.History.Enabled),
		zap.Bool("status_api", config.Server.Enabled))

	if err := os.MkdirAll(config.Download.BaseDir, 0755); err != nil {
		return fmt.Errorf("failed to create download directory: %w", err)
	}

	// Request-history repository (optional)
	var repo domain.RequestRepository
	if config.History.Enabled {
		sqlRepo, err := infrastructure.NewSQLiteRequestRepository(config.History.DatabasePath)
		if err != nil {
			return fmt.Errorf("failed to initialize history repository: %w", err)
		}
		defer sqlRepo.Close()
		repo = sqlRepo
	}

	// Core wiring
	store := app.NewSessionStore()
	extractor := infrastructure.NewYTDLPExtractor(&config.Download, log)
	policy := domain.NewPolicy(&config.Download)
	orchestrator := app.NewOrchestrator(extractor, policy, config.Download.BaseDir, log)

	b, err := bot.New(&config.Telegram, store, orchestrator, repo, log)
	if err != nil {
		return err
	}

	// Optional status API
	var server *http.Server
	if config.Server.Enabled {
		router := api.SetupRouter(repo, log)
		addr := fmt.Sprintf("%s:%d", config.Server.Host, config.Server.Port)
		server = &http.Server{Addr: addr, Handler: router}

		go func() {
			log.Info("Status API listening", zap.String("addr", addr))
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Error("Status API failed", zap.Error(err))
			}
		}()
	}

	go b.Run()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down...")
	b.Stop()

	if server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error("Status API forced to shutdown", zap.Error(err))
		}
	}

	log.Info("Bot exited")
	return nil
}
