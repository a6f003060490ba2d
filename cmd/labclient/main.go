package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/labsys/labclient/internal/api"
	"github.com/labsys/labclient/internal/config"
	"github.com/labsys/labclient/internal/logging"
	"github.com/labsys/labclient/internal/session"
	"github.com/labsys/labclient/internal/tui"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		serverURL string
		logPath   string
		cfgPath   string
	)

	root := &cobra.Command{
		Use:           "labclient",
		Short:         "Terminal client for the lab management backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfgPath != "" {
				// config.Load resolves the file through this variable
				os.Setenv("LABCLIENT_CONFIG", cfgPath)
			}
			return run(serverURL, logPath)
		},
	}
	root.Flags().StringVar(&serverURL, "server", "", "backend base URL (overrides config)")
	root.Flags().StringVar(&logPath, "log-file", "", "log file path (overrides config)")
	root.Flags().StringVar(&cfgPath, "config", "", "config file path")

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("labclient", version)
		},
	})
	return root
}

func run(serverURL, logPath string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if serverURL != "" {
		cfg.Server.BaseURL = serverURL
	}
	if logPath != "" {
		cfg.Log.Path = logPath
	}

	logger, closer, err := logging.Open(cfg.Log.Path, cfg.Log.Level)
	if err != nil {
		return err
	}
	defer closer.Close()
	logger.Info().Str("version", version).Str("server", cfg.Server.BaseURL).Msg("starting")

	store := session.NewStore()
	restored, err := store.Load()
	if err != nil {
		logger.Warn().Err(err).Msg("load persisted session")
	}
	holder := session.NewHolder(restored)

	client := api.NewClient(
		cfg.Server.BaseURL,
		time.Duration(cfg.Server.TimeoutSeconds)*time.Second,
		holder.Token,
		logger,
	)
	repos := tui.Repos{
		Auth:     api.NewAuthClient(client),
		Patients: api.NewPatientRepo(client),
		Doctors:  api.NewDoctorRepo(client),
		Samples:  api.NewSampleRepo(client),
	}

	app := tui.New(context.Background(), cfg, logger, repos, store, holder)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.Error().Err(err).Msg("tui exited")
		return err
	}
	logger.Info().Msg("bye")
	return nil
}
