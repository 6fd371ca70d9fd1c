package domain

import "time"

// Config represents the application configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Telegram TelegramConfig `mapstructure:"telegram"`
	Engine   EngineConfig   `mapstructure:"engine"`
	Download DownloadConfig `mapstructure:"download"`
	Session  SessionConfig  `mapstructure:"session"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// TelegramConfig contains transport configuration
type TelegramConfig struct {
	Token       string        `mapstructure:"token"`
	APIBaseURL  string        `mapstructure:"api_base_url"`
	PollTimeout time.Duration `mapstructure:"poll_timeout"`
	UseWebhook  bool          `mapstructure:"use_webhook"`
	WebhookPath string        `mapstructure:"webhook_path"`
}

// EngineConfig contains extraction/download engine configuration
type EngineConfig struct {
	Binary string `mapstructure:"binary"`
}

// DownloadConfig contains download and delivery configuration
type DownloadConfig struct {
	WorkspaceRoot string `mapstructure:"workspace_root"`
	MaxSendBytes  int64  `mapstructure:"max_send_bytes"`
}

// SessionConfig contains session store configuration
type SessionConfig struct {
	TTL           time.Duration `mapstructure:"ttl"`            // 0 disables expiry
	SweepInterval time.Duration `mapstructure:"sweep_interval"` // janitor period when TTL is set
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level      string `mapstructure:"level"`       // debug, info, warn, error
	Format     string `mapstructure:"format"`      // json, console
	OutputPath string `mapstructure:"output_path"` // stdout, stderr, or file path
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "localhost",
			Port: 8080,
		},
		Telegram: TelegramConfig{
			APIBaseURL:  "https://api.telegram.org",
			PollTimeout: 30 * time.Second,
			UseWebhook:  false,
			WebhookPath: "/webhook",
		},
		Engine: EngineConfig{
			Binary: "yt-dlp",
		},
		Download: DownloadConfig{
			WorkspaceRoot: "$HOME/.cache/media-fetch",
			MaxSendBytes:  50 * 1024 * 1024,
		},
		Session: SessionConfig{
			TTL:           30 * time.Minute,
			SweepInterval: time.Minute,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "console",
			OutputPath: "stdout",
		},
	}
}
