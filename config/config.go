// Package config provides configuration loading for browse99 using TOML.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Server settings
type Server struct {
	Addr          string `toml:"addr"`
	MaxConcurrent int    `toml:"maxConcurrent"` // simultaneous page extractions
}

// Fetcher settings
type Fetcher struct {
	UserAgent      string `toml:"userAgent"`
	TimeoutSeconds int    `toml:"timeoutSeconds"`
	ChromePath     string `toml:"chromePath"`
	Mode           string `toml:"mode"` // "auto", "browser" or "static"
	ViewportWidth  int    `toml:"viewportWidth"`
	ViewportHeight int    `toml:"viewportHeight"`
}

// Display settings
type Display struct {
	Border bool `toml:"border"`
	Color  bool `toml:"color"`
}

// Config is the main configuration struct
type Config struct {
	Server  Server  `toml:"server"`
	Fetcher Fetcher `toml:"fetcher"`
	Display Display `toml:"display"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Server: Server{
			Addr:          ":7198",
			MaxConcurrent: 2,
		},
		Fetcher: Fetcher{
			UserAgent:      "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			TimeoutSeconds: 30,
			Mode:           "auto",
			ViewportWidth:  800,
			ViewportHeight: 600,
		},
		Display: Display{
			Border: true,
			Color:  true,
		},
	}
}

// configDir returns the configuration directory path.
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "browse99"), nil
}

// ConfigPath returns the path to the user's config file.
func ConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load loads configuration, layering user config on top of defaults.
// Returns the default config if no user config exists. The PORT environment
// variable overrides the server address.
func Load() (*Config, error) {
	configPath, err := ConfigPath()
	if err != nil {
		return withEnv(Default()), nil // Return defaults if we can't determine path
	}
	cfg, err := LoadFile(configPath)
	if err != nil {
		return nil, err
	}
	return withEnv(cfg), nil
}

// LoadFile layers the TOML file at path on top of defaults. A missing file
// yields the defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	userCfg, err := loadFromTOML(path)
	if err != nil {
		return nil, fmt.Errorf("loading config from %s: %w", path, err)
	}

	return merge(cfg, userCfg), nil
}

// loadFromTOML loads a TOML config file and returns the config.
func loadFromTOML(path string) (*Config, error) {
	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("parsing config TOML: %w", err)
	}
	// Booleans default to true, so only an explicit false turns them off.
	if !md.IsDefined("display", "border") {
		cfg.Display.Border = true
	}
	if !md.IsDefined("display", "color") {
		cfg.Display.Color = true
	}
	return &cfg, nil
}

func withEnv(cfg *Config) *Config {
	if port := os.Getenv("PORT"); port != "" {
		cfg.Server.Addr = ":" + port
	}
	return cfg
}

// merge layers user config on top of defaults.
// Only non-zero values from user config override defaults.
func merge(defaults, user *Config) *Config {
	result := *defaults

	// Server
	if user.Server.Addr != "" {
		result.Server.Addr = user.Server.Addr
	}
	if user.Server.MaxConcurrent > 0 {
		result.Server.MaxConcurrent = user.Server.MaxConcurrent
	}

	// Fetcher
	if user.Fetcher.UserAgent != "" {
		result.Fetcher.UserAgent = user.Fetcher.UserAgent
	}
	if user.Fetcher.TimeoutSeconds != 0 {
		result.Fetcher.TimeoutSeconds = user.Fetcher.TimeoutSeconds
	}
	if user.Fetcher.ChromePath != "" {
		result.Fetcher.ChromePath = user.Fetcher.ChromePath
	}
	if user.Fetcher.Mode != "" {
		result.Fetcher.Mode = user.Fetcher.Mode
	}
	if user.Fetcher.ViewportWidth != 0 {
		result.Fetcher.ViewportWidth = user.Fetcher.ViewportWidth
	}
	if user.Fetcher.ViewportHeight != 0 {
		result.Fetcher.ViewportHeight = user.Fetcher.ViewportHeight
	}

	// Display
	result.Display = user.Display

	return &result
}

// DefaultTOML returns the default configuration as a TOML string.
// Used for --init-config to generate a user config file.
func DefaultTOML() string {
	return `# browse99 configuration
# Save to ~/.config/browse99/config.toml and customize
# Only include settings you want to change from defaults

# HTTP converter settings
[server]
addr = ":7198"                # Listen address (PORT env var overrides)
maxConcurrent = 2             # Simultaneous page extractions

# Page fetching settings
[fetcher]
userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
timeoutSeconds = 30
chromePath = ""               # Path to Chrome/Chromium (empty = auto-detect)
mode = "auto"                 # "auto", "browser" or "static"
viewportWidth = 800           # Browser viewport mapped onto the 40x24 grid
viewportHeight = 600

# Display settings
[display]
border = true                 # Frame the 40x24 screen in print mode
color = true                  # Truecolor output when stdout is a terminal
`
}
