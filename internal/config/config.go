package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Output modes for the search session.
const (
	OutputStdout = "stdout"
	OutputFile   = "file"
)

// Config holds application configuration.
// It is loaded once at startup and not modified afterwards.
type Config struct {
	// Where the result document goes: "stdout" or "file"
	// Default: "stdout"
	Output string

	// Directory for result documents in file mode
	// Default: "data"
	DataDir string

	// HTTP client timeout, 0 disables it
	HTTPTimeout time.Duration

	// Log level (debug, info, warn, error)
	LogLevel string

	// Spotify client credentials
	Spotify SpotifyConfig

	// Post-processing run after a document is written
	Downstream DownstreamConfig

	// Album downloader used by the process command
	Downloader DownloaderConfig
}

// SpotifyConfig holds Spotify specific configuration
type SpotifyConfig struct {
	ClientID     string
	ClientSecret string

	// Endpoint overrides, empty uses the public Spotify endpoints
	AuthURL string
	APIURL  string
}

// DownstreamConfig describes the program handed the result document.
// The document path is appended as its last argument.
type DownstreamConfig struct {
	Enabled bool
	Command []string // Empty means "<this binary> process"
}

// DownloaderConfig holds settings for the process command
type DownloaderConfig struct {
	Command []string // Downloader invocation, the album URL is appended
	Root    string   // Root directory for downloaded music
	Workers int      // Concurrent downloads
	Ledger  string   // SQLite ledger of finished downloads
}

// Load reads configuration from file and environment.
//
// A .env file in the working directory is loaded into the process
// environment first, without overriding variables already set.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	configDir := getConfigDir()
	v.AddConfigPath(configDir)
	v.AddConfigPath(".")

	setDefaults(v)

	// Read config file (optional - don't fail if missing)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Read from environment variables
	v.SetEnvPrefix("DISCOG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The credential names are shared with other Spotify tooling
	_ = v.BindEnv("spotify.client_id", "SPOTIFY_CLIENT_ID", "DISCOG_SPOTIFY_CLIENT_ID")
	_ = v.BindEnv("spotify.client_secret", "SPOTIFY_CLIENT_SECRET", "DISCOG_SPOTIFY_CLIENT_SECRET")

	return fromViper(v), nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("output", OutputStdout)
	v.SetDefault("data_dir", "data")
	v.SetDefault("http_timeout", 30*time.Second)
	v.SetDefault("log_level", "info")
	v.SetDefault("downstream.enabled", false)
	v.SetDefault("downstream.command", []string{})
	v.SetDefault("downloader.command", []string{"spotdl"})
	v.SetDefault("downloader.root", defaultMusicDir())
	v.SetDefault("downloader.workers", 4)
	v.SetDefault("downloader.ledger", filepath.Join(GetDataDir(), "downloads.db"))
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		Output:      v.GetString("output"),
		DataDir:     v.GetString("data_dir"),
		HTTPTimeout: v.GetDuration("http_timeout"),
		LogLevel:    v.GetString("log_level"),
		Spotify: SpotifyConfig{
			ClientID:     v.GetString("spotify.client_id"),
			ClientSecret: v.GetString("spotify.client_secret"),
			AuthURL:      v.GetString("spotify.auth_url"),
			APIURL:       v.GetString("spotify.api_url"),
		},
		Downstream: DownstreamConfig{
			Enabled: v.GetBool("downstream.enabled"),
			Command: v.GetStringSlice("downstream.command"),
		},
		Downloader: DownloaderConfig{
			Command: v.GetStringSlice("downloader.command"),
			Root:    v.GetString("downloader.root"),
			Workers: v.GetInt("downloader.workers"),
			Ledger:  v.GetString("downloader.ledger"),
		},
	}
}

// Validate checks settings that would otherwise fail halfway through a run.
// Call it after command-line overrides have been applied.
// Missing credentials are not checked here; they surface as an
// authentication error when a token is requested.
func (c *Config) Validate() error {
	switch c.Output {
	case OutputStdout, OutputFile:
	default:
		return fmt.Errorf("invalid output %q: must be %q or %q", c.Output, OutputStdout, OutputFile)
	}

	if c.Downstream.Enabled && c.Output != OutputFile {
		return fmt.Errorf("downstream processing requires output %q", OutputFile)
	}

	if c.Downloader.Workers < 1 {
		return fmt.Errorf("downloader.workers must be at least 1, got %d", c.Downloader.Workers)
	}

	if c.HTTPTimeout < 0 {
		return fmt.Errorf("http_timeout must not be negative")
	}

	return nil
}

// getConfigDir returns the configuration directory path
// Creates the directory if it doesn't exist
func getConfigDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}

	configDir := filepath.Join(homeDir, ".config", "discog")

	// Create config directory if it doesn't exist
	_ = os.MkdirAll(configDir, 0755)

	return configDir
}

// GetConfigDir returns the configuration directory path (public helper)
func GetConfigDir() string {
	return getConfigDir()
}

// GetDataDir returns the directory for local state such as the download ledger.
func GetDataDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(homeDir, ".local", "share", "discog")
}

func defaultMusicDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "Music"
	}
	return filepath.Join(homeDir, "Music")
}

// Save writes configuration to file
func (c *Config) Save() error {
	return c.saveTo(filepath.Join(getConfigDir(), "config.yaml"))
}

func (c *Config) saveTo(configFile string) error {
	v := viper.New()

	v.Set("output", c.Output)
	v.Set("data_dir", c.DataDir)
	v.Set("http_timeout", c.HTTPTimeout.String())
	v.Set("log_level", c.LogLevel)
	v.Set("spotify.client_id", c.Spotify.ClientID)
	v.Set("spotify.client_secret", c.Spotify.ClientSecret)
	if c.Spotify.AuthURL != "" {
		v.Set("spotify.auth_url", c.Spotify.AuthURL)
	}
	if c.Spotify.APIURL != "" {
		v.Set("spotify.api_url", c.Spotify.APIURL)
	}
	v.Set("downstream.enabled", c.Downstream.Enabled)
	v.Set("downstream.command", c.Downstream.Command)
	v.Set("downloader.command", c.Downloader.Command)
	v.Set("downloader.root", c.Downloader.Root)
	v.Set("downloader.workers", c.Downloader.Workers)
	v.Set("downloader.ledger", c.Downloader.Ledger)

	// Write to file
	return v.WriteConfigAs(configFile)
}
