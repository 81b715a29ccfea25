package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Testeur1337/myPomodoro/internal/config"
)

var configInit bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Print the configuration after defaults, the config file and POMODORO_*
environment overrides are applied. With --init, write the defaults to the
config file instead.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			path = config.DefaultPath()
		}
		if configInit {
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("config file %s already exists", path)
			}
			if err := config.DefaultConfig().Save(path); err != nil {
				return err
			}
			fmt.Printf("%s Wrote %s\n", successStyle.Render("✓"), path)
			return nil
		}

		shown := *cfg
		if shown.Maintenance.BackupPassphrase != "" {
			shown.Maintenance.BackupPassphrase = "********"
		}
		out, err := yaml.Marshal(&shown)
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
		fmt.Println(mutedStyle.Render("# " + path))
		fmt.Print(string(out))
		return nil
	},
}

func init() {
	configCmd.Flags().BoolVar(&configInit, "init", false, "Write the default config file")
}
