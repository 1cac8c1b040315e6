package cmd

import (
	"fmt"
	"os"
	"runtime"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/AnyUserName/blurimg/internal/config"
)

var (
	version    = "0.1.0"
	verbose    bool
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "blurimg",
	Short: "Blurhash placeholders for image directories",
	Long: `blurimg computes blurhash placeholders: short base-83 strings that
carry the average color and a few low-frequency components of an image,
small enough to inline in HTML or JSON and render as a blurred preview
while the real asset loads.

Point "build" at a directory to get a manifest with one placeholder per
image, or use "encode" on a single file.`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		log.Error(err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "configuration file (TOML)")
	rootCmd.PersistentFlags().StringVarP(&config.Config.Main.LogLevel, "level", "l",
		config.Config.Main.LogLevel, "log level")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug log level)")
	rootCmd.SilenceErrors = true
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"blurimg %s (%s/%s, %s)\n",
		version, runtime.GOOS, runtime.GOARCH, runtime.Version(),
	))
}

// setup loads the configuration file and configures the logger.  Flags
// given on the command line win over the file.
func setup(cmd *cobra.Command, _ []string) error {
	if configPath != "" {
		// Flags are bound to config.Config, so the file would overwrite
		// them.  Remember what was given explicitly and set it again.
		changed := map[string]string{}
		cmd.Flags().Visit(func(f *pflag.Flag) {
			changed[f.Name] = f.Value.String()
		})
		if err := config.LoadConfiguration(configPath); err != nil {
			return fmt.Errorf("load configuration %s: %w", configPath, err)
		}
		for name, value := range changed {
			if err := cmd.Flags().Set(name, value); err != nil {
				return err
			}
		}
	}
	if verbose {
		config.Config.Main.LogLevel = "debug"
	}

	lvl, err := log.ParseLevel(config.Config.Main.LogLevel)
	if err != nil {
		lvl = log.InfoLevel
	}
	log.SetOutput(os.Stderr)
	log.SetLevel(lvl)
	log.SetFormatter(&log.TextFormatter{DisableTimestamp: !log.IsLevelEnabled(log.DebugLevel)})
	log.WithField("log_level", lvl).Debug("logger ready")
	return nil
}
