package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aditya/slidein/internal/config"
	"github.com/aditya/slidein/internal/server"
)

var (
	servePort       int
	serveConfigPath string
	serveUseBrowser bool
	serveVerbose    bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the email-generation and page-summary endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default 8080)")
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to JSON config file")
	serveCmd.Flags().BoolVar(&serveUseBrowser, "use-browser", false, "Render thin pages with headless Chrome")
	serveCmd.Flags().BoolVar(&serveVerbose, "verbose", false, "Log pipeline details")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg := config.Config{
		Port:       servePort,
		UseBrowser: serveUseBrowser,
		Verbose:    serveVerbose,
	}

	if serveConfigPath != "" {
		fileCfg, err := config.Load(serveConfigPath)
		if err != nil {
			return err
		}
		cfg = cfg.Merge(*fileCfg)
	}
	cfg = cfg.Merge(config.FromEnv())
	if cfg.Port == 0 {
		cfg.Port = 8080
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	srv, err := server.New(server.Config{
		Port:        cfg.Port,
		APIKey:      cfg.APIKey,
		DatabaseURL: cfg.DatabaseURL,
		JWTSecret:   cfg.JWTSecret,
		UseBrowser:  cfg.UseBrowser,
		Verbose:     cfg.Verbose,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
