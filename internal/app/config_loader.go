package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"github.com/yourusername/tg-vidbot/internal/domain"
)

// LoadConfig loads configuration from file and environment. The bot token
// comes only from TELEGRAM_BOT_TOKEN and is required: the process must fail
// fast at startup when it is absent.
func LoadConfig(configPath string) (*domain.Config, error) {
	config := domain.DefaultConfig()

	v := viper.New()
	v.SetConfigType("yaml")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath("./configs")
		v.AddConfigPath("$HOME/.tg-vidbot")
		v.AddConfigPath("/etc/tg-vidbot")
	}

	// Read environment variables
	v.SetEnvPrefix("VIDBOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.BindEnv("telegram.token", "TELEGRAM_BOT_TOKEN")

	// Try to read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found, use defaults
	}

	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.Download.BaseDir = expandPath(config.Download.BaseDir)
	config.History.DatabasePath = expandPath(config.History.DatabasePath)
	if config.Logging.OutputPath != "stdout" && config.Logging.OutputPath != "stderr" {
		config.Logging.OutputPath = expandPath(config.Logging.OutputPath)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// expandPath expands environment variables and ~ in paths
func expandPath(path string) string {
	path = os.ExpandEnv(path)

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	}

	return path
}

// validateConfig validates the configuration
func validateConfig(config *domain.Config) error {
	if config.Telegram.Token == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN environment variable is required")
	}

	if config.Telegram.PollTimeout < 1 {
		return fmt.Errorf("poll timeout must be at least 1 second")
	}

	if config.Download.BaseDir == "" {
		return fmt.Errorf("download base directory not configured")
	}

	if config.Download.YTDLPBinary == "" {
		return fmt.Errorf("yt-dlp binary not configured")
	}

	if config.Download.MaxDurationSeconds < 1 {
		return fmt.Errorf("max duration must be positive")
	}

	if config.Download.MaxFileSizeBytes < 1 {
		return fmt.Errorf("max file size must be positive")
	}

	if config.History.Enabled && config.History.DatabasePath == "" {
		return fmt.Errorf("history database path not configured")
	}

	if config.Server.Enabled && (config.Server.Port < 1 || config.Server.Port > 65535) {
		return fmt.Errorf("invalid server port: %d", config.Server.Port)
	}

	// The status API serves the request history, so it cannot run without it
	if config.Server.Enabled && !config.History.Enabled {
		return fmt.Errorf("status API requires request history to be enabled")
	}

	if config.Logging.Level == "" {
		config.Logging.Level = "info"
	}

	return nil
}
