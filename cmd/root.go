/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>

*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information (set via ldflags during build)
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

var (
	logLevel string
	logFile  string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "discog",
	Short: "Fetch an artist's discography from Spotify",
	Long: `discog looks up an artist on Spotify and lists their albums and singles.

Type an artist or album name and discog resolves the artist, pages through
the complete discography, drops repeated titles and prints the result as JSON.
In file mode the result is saved under the data directory instead and can be
handed to 'discog process', which downloads every album with an external tool.

Spotify client credentials are read from SPOTIFY_CLIENT_ID and
SPOTIFY_CLIENT_SECRET, a .env file, or ~/.config/discog/config.yaml
(see 'discog auth').`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error) (default from config: info)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Log file path (default: stderr)")
}
