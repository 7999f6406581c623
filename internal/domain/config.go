package domain

// Config represents the application configuration
type Config struct {
	Telegram TelegramConfig `mapstructure:"telegram"`
	Download DownloadConfig `mapstructure:"download"`
	History  HistoryConfig  `mapstructure:"history"`
	Server   ServerConfig   `mapstructure:"server"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// TelegramConfig contains bot transport configuration. Token is never read
// from a config file, only from the TELEGRAM_BOT_TOKEN environment variable.
type TelegramConfig struct {
	Token       string `mapstructure:"token"`
	PollTimeout int    `mapstructure:"poll_timeout"` // long-poll timeout in seconds
}

// DownloadConfig contains download-related configuration
type DownloadConfig struct {
	BaseDir            string `mapstructure:"base_dir"`
	YTDLPBinary        string `mapstructure:"ytdlp_binary"`
	MaxDurationSeconds int    `mapstructure:"max_duration_seconds"`
	MaxFileSizeBytes   int64  `mapstructure:"max_file_size_bytes"`
	MaxFormatOptions   int    `mapstructure:"max_format_options"`
}

// HistoryConfig contains request-history persistence configuration
type HistoryConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	DatabasePath string `mapstructure:"database_path"`
}

// ServerConfig contains the optional status API configuration
type ServerConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Host    string `mapstructure:"host"`
	Port    int    `mapstructure:"port"`
}

// LoggingConfig contains logging-related configuration
type LoggingConfig struct {
	Level      string `mapstructure:"level"`       // debug, info, warn, error
	Format     string `mapstructure:"format"`      // json, console
	OutputPath string `mapstructure:"output_path"` // stdout, stderr, or file path
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Telegram: TelegramConfig{
			PollTimeout: 30,
		},
		Download: DownloadConfig{
			BaseDir:            "downloads",
			YTDLPBinary:        "yt-dlp",
			MaxDurationSeconds: 600,
			MaxFileSizeBytes:   50 * 1024 * 1024, // Telegram attachment limit
			MaxFormatOptions:   8,
		},
		History: HistoryConfig{
			Enabled:      true,
			DatabasePath: "downloads/history.db",
		},
		Server: ServerConfig{
			Enabled: false,
			Host:    "localhost",
			Port:    8080,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "console",
			OutputPath: "stdout",
		},
	}
}
