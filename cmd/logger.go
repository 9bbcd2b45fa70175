package cmd

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/jodique2/spotify-album-fetcher/internal/config"
	"github.com/jodique2/spotify-album-fetcher/pkg/spotify"
	"github.com/rs/zerolog"
)

// setupLogger creates a logger with the specified configuration
func setupLogger(logFile, logLevel string) zerolog.Logger {
	level := parseLevel(logLevel)

	// Set up output
	var output *os.File
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
			output = os.Stderr
		} else {
			output = f
		}
	} else {
		output = os.Stderr
	}

	logger := zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Logger()

	// Use pretty console output if logging to stderr
	if output == os.Stderr {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	return logger
}

func parseLevel(logLevel string) zerolog.Level {
	switch logLevel {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// loggerFor builds the command logger, the --log-level flag winning over config
func loggerFor(cfg *config.Config) zerolog.Logger {
	level := logLevel
	if level == "" {
		level = cfg.LogLevel
	}
	return setupLogger(logFile, level)
}

// spotifyLogger forwards SDK debug output to zerolog
type spotifyLogger struct {
	logger zerolog.Logger
}

func (l spotifyLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug().Msgf(format, args...)
}

func newSpotifyClient(cfg *config.Config, logger zerolog.Logger) *spotify.Client {
	return spotify.NewClient(spotify.Config{
		HTTPClient: &http.Client{Timeout: cfg.HTTPTimeout},
		AuthURL:    cfg.Spotify.AuthURL,
		BaseURL:    cfg.Spotify.APIURL,
		UserAgent:  "discog/" + version,
		Logger:     spotifyLogger{logger: logger.With().Str("component", "spotify").Logger()},
	})
}

func credentials(cfg *config.Config) spotify.Credentials {
	return spotify.Credentials{
		ClientID:     cfg.Spotify.ClientID,
		ClientSecret: cfg.Spotify.ClientSecret,
	}
}
