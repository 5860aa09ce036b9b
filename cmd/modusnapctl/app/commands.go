// Package app provides the commands of the ModuSnap manager client CLI.
package app

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/MTheUnexpected-1/ModuSnap-ComfyUI-Manager/internal/config"
	"github.com/MTheUnexpected-1/ModuSnap-ComfyUI-Manager/pkg/manager"
	"github.com/MTheUnexpected-1/ModuSnap-ComfyUI-Manager/pkg/versions"
)

var rootCmd = &cobra.Command{
	Use:               "modusnapctl",
	DisableAutoGenTag: true,
	SilenceUsage:      true,
	Short:             "Client for the ModuSnap manager engine",
	Long: `modusnapctl talks to a local ModuSnap manager engine over HTTP: engine
status, the content-pack catalog, and batch install/uninstall/update of
content packs. All catalog and install state lives in the engine; this
tool only queries it.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if viper.GetBool("debug") {
			slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			})))
		}
	},
	Run: func(cmd *cobra.Command, _ []string) {
		// If no subcommand is provided, print help
		if err := cmd.Help(); err != nil {
			slog.Error("Error displaying help", "error", err)
		}
	},
}

// NewRootCmd creates the root command for the manager client CLI.
func NewRootCmd() *cobra.Command {
	// Add persistent flags
	rootCmd.PersistentFlags().String("engine-url", "", "Manager engine base URL (default "+config.DefaultEngineURL+")")
	rootCmd.PersistentFlags().String("api-key", "", "Bearer token for the manager engine")
	rootCmd.PersistentFlags().Duration("timeout", 0, "Request timeout (default "+config.DefaultTimeout.String()+")")
	rootCmd.PersistentFlags().String("config", "", "Path to configuration file (YAML format)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")

	for _, flag := range []string{"engine-url", "api-key", "timeout", "config", "debug"} {
		if err := viper.BindPFlag(flag, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
			slog.Error("Error binding flag", "flag", flag, "error", err)
		}
	}

	// Add subcommands
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(versionCmd)

	return rootCmd
}

// loadSettings resolves the effective configuration for a command run:
// defaults, then config file, then environment, then explicit flags.
func loadSettings() (*manager.Client, manager.Endpoint, error) {
	var opts []config.Option
	if path := viper.GetString("config"); path != "" {
		opts = append(opts, config.WithConfigPath(path))
	}

	cfg, err := config.Load(opts...)
	if err != nil {
		return nil, manager.Endpoint{}, fmt.Errorf("failed to load configuration: %w", err)
	}

	if s := viper.GetString("engine-url"); s != "" {
		cfg.EngineURL = s
	}
	if s := viper.GetString("api-key"); s != "" {
		cfg.APIKey = s
	}
	if d := viper.GetDuration("timeout"); d > 0 {
		cfg.Timeout = d
	}
	if err := cfg.Validate(); err != nil {
		return nil, manager.Endpoint{}, err
	}

	client := manager.New(
		manager.WithTimeout(cfg.Timeout),
		manager.WithLogger(slog.Default()),
	)
	endpoint := manager.Endpoint{BaseURL: cfg.EngineURL, APIKey: cfg.APIKey}
	return client, endpoint, nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, _ []string) {
		info := versions.GetVersionInfo()
		format, err := cmd.Flags().GetString("format")
		if err != nil {
			slog.Error("Error retrieving format flag", "error", err)
			return
		}

		if format == "json" {
			output, err := json.MarshalIndent(info, "", "  ")
			if err != nil {
				slog.Error("Error formatting version info as JSON", "error", err)
				return
			}
			fmt.Println(string(output))
		} else {
			fmt.Printf("modusnapctl %s (commit: %s, built: %s, %s, %s)\n",
				info.Version, info.Commit, info.BuildDate, info.GoVersion, info.Platform)
		}
	},
}

func init() {
	versionCmd.Flags().String("format", "", "Output format (json)")
}
