package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sdejongh/ntfsnorris/pkg/config"
)

// NewConfigCommand creates the config command
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long:  `View or modify ntfsnorris configuration.`,
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigInitCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			fmt.Printf("Max Name Length: %d\n", cfg.Sanitize.MaxNameLength)
			fmt.Printf("Output Format: %s\n", cfg.Output.Format)
			fmt.Printf("No Color: %t\n", cfg.Output.NoColor)
			fmt.Printf("Logging Enabled: %t\n", cfg.Logging.Enabled)
			fmt.Printf("Log Format: %s\n", cfg.Logging.Format)
			fmt.Printf("Log Level: %s\n", cfg.Logging.Level)
			if cfg.Logging.File != "" {
				fmt.Printf("Log File: %s\n", cfg.Logging.File)
			}
			if len(cfg.Exclude) > 0 {
				fmt.Printf("Exclude: %s\n", strings.Join(cfg.Exclude, ", "))
			}
			if len(cfg.Ignore) > 0 {
				fmt.Printf("Ignore: %s\n", strings.Join(cfg.Ignore, ", "))
			}

			return nil
		},
	}
}

func newConfigInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.DefaultConfigPath()
			if err != nil {
				return err
			}

			cfg := config.Default()
			if err := config.SaveToFile(cfg, path); err != nil {
				return err
			}

			fmt.Printf("Configuration file created at: %s\n", path)
			return nil
		},
	}
}
