package main

import (
	"fmt"
	"os"

	"contractor-leads/internal/app"
	"contractor-leads/internal/config"
	"contractor-leads/internal/logger"
	"contractor-leads/internal/persistence"
	"contractor-leads/internal/services"

	"github.com/spf13/cobra"
)

var (
	configPath string
	dataFile   string
	logLevel   string

	cfg *config.Config
	log logger.Logger
)

var rootCmd = &cobra.Command{
	Use:           "contractor-leads",
	Short:         "Record and export contractor sales leads",
	Version:       app.AppVersion,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if dataFile != "" {
			cfg.DataFile = dataFile
		}
		if logLevel != "" {
			cfg.LogLevel = logLevel
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		log = logger.New(logger.ParseLevel(cfg.LogLevel), cfg.JSONLogs)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := app.NewApplication(cfg, log)
		if err != nil {
			return fmt.Errorf("application initialization failed: %w", err)
		}
		return application.Run()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a TOML config file (default "+config.DefaultFile+" if present)")
	rootCmd.PersistentFlags().StringVar(&dataFile, "data-file", "", "leads JSON file (overrides config and LEADS_DATA_FILE)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(exportCmd)
}

// openLeads loads the configured data file for the headless commands. They
// only read, so the file is opened read-only.
func openLeads() *services.LeadService {
	return services.NewLeadService(persistence.NewJSONFile(cfg.DataFile, log, persistence.ReadOnly()), log)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
