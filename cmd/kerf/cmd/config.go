package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/chazu/kerf/pkg/config"
	"github.com/spf13/cobra"
)

var writeConfig bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective settings",
	Long: `Print the settings kerf runs with. With --write, save them to the
config file so they can be edited.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if writeConfig {
			if err := config.SaveConfig(configPath, cfg); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}
			if verbose {
				path := configPath
				if path == "" {
					path, _ = config.DefaultPath()
				}
				fmt.Fprintf(os.Stderr, "wrote %s\n", path)
			}
		}
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.Flags().BoolVar(&writeConfig, "write", false, "save the settings to the config file")
}
