package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"applaude/internal/app"
	"applaude/internal/config"
	"applaude/internal/logging"
)

var (
	version = "0.1.0"
	room    string
	token   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "applaude",
		Short: "Terminal client for Applaude app builds",
		Long: `Applaude connects to a build chat room, streams pipeline progress
as your application is analyzed, designed, generated, tested, and deployed,
and hands you the download link when the build completes.`,
		RunE: runApp,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&room, "room", "", "chat room to join (default is chat_room1)")
	rootCmd.PersistentFlags().StringVar(&token, "token", "", "API token (overrides config and APPLAUDE_TOKEN)")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("applaude %s\n", version)
		},
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runApp(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if room != "" {
		cfg.Chat.Room = room
	}
	if token != "" {
		cfg.API.Token = token
	}

	if err := cfg.Validate(); err != nil {
		if errors.Is(err, config.ErrMissingAuth) {
			fmt.Fprintln(os.Stderr, "No API token found.")
			fmt.Fprintln(os.Stderr, "Set APPLAUDE_TOKEN, pass --token, or add api.token to the config file.")
			os.Exit(1)
		}
		return err
	}

	if cfg.Logging.Enabled {
		if err := logging.EnableFileLogging(config.GetConfigDir(), logging.Level(cfg.Logging.Level)); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: file logging disabled: %v\n", err)
		}
		defer logging.Close()
	}

	return app.New(cfg).Run()
}
