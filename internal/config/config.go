package config

import "time"

// Config holds server configuration values.
type Config struct {
	Addr              string        `mapstructure:"addr" yaml:"addr"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
	DatabasePath      string        `mapstructure:"database_path" yaml:"database_path"`
	StaticDir         string        `mapstructure:"static_dir" yaml:"static_dir"`
	LogLevel          string        `mapstructure:"log_level" yaml:"log_level"`
	WriteRateLimit    int           `mapstructure:"write_rate_limit" yaml:"write_rate_limit"`
	WSSendBuffer      int           `mapstructure:"ws_send_buffer" yaml:"ws_send_buffer"`
}

// Default returns configuration with reasonable starter defaults.
// StaticDir is empty by default, which disables static file serving.
// WriteRateLimit is requests per minute across write endpoints; zero
// disables the limit.
func Default() Config {
	return Config{
		Addr:              ":8080",
		ReadHeaderTimeout: 5 * time.Second,
		ShutdownTimeout:   5 * time.Second,
		DatabasePath:      "data/wishwall.db",
		LogLevel:          "info",
		WSSendBuffer:      32,
	}
}
