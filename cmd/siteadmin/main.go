package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/tendant/simple-site/pkg/siteconfig"
	"github.com/tendant/simple-site/pkg/siteconfig/config"
)

var (
	configFile string
	jsonOutput bool

	serverConfig *config.ServerConfig
	service      siteconfig.Service
	cleanup      = func() {}
)

// buildService is replaced in tests.
var buildService = func(ctx context.Context, cfg *config.ServerConfig) (siteconfig.Service, func(), error) {
	return cfg.BuildService(ctx)
}

var rootCmd = &cobra.Command{
	Use:   "siteadmin <command>",
	Short: "Manage cleaning-business site configs",
	Long: `Manage cleaning-business site configs directly against the configured store.

Configuration is read from SITE_* environment variables (a .env file in the
current directory is loaded first) and optionally from --config.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		opts := []config.Option{}
		if configFile != "" {
			opts = append(opts, config.WithFile(configFile))
		}
		opts = append(opts, config.WithEnv("SITE_"))

		cfg, err := config.Load(opts...)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		serverConfig = cfg

		if cmd.Annotations["service"] == "none" {
			return nil
		}

		svc, closeFn, err := buildService(cmd.Context(), cfg)
		if err != nil {
			closeFn()
			return fmt.Errorf("failed to build service: %w", err)
		}
		service = svc
		cleanup = closeFn
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		cleanup()
		cleanup = func() {}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "YAML or TOML config file")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")

	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(describeCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(reviewURLCmd)
	rootCmd.AddCommand(migrateCmd)
}

func main() {
	// Load .env file if it exists (silently ignore if not found)
	_ = godotenv.Load()

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
