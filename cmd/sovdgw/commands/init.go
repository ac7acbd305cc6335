package commands

import (
	"fmt"
	"os"

	"github.com/marmos91/sovdgw/pkg/config"
	"github.com/spf13/cobra"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a sample configuration file",
	Long: `Initialize a sample sovdgw configuration file.

By default, the configuration file is created at $XDG_CONFIG_HOME/sovdgw/config.yaml.
Use --config to specify a custom path.

Examples:
  # Initialize with default location
  sovdgw init

  # Initialize with custom path
  sovdgw init --config /etc/sovdgw/config.yaml

  # Force overwrite existing config
  sovdgw init --force`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Force overwrite existing config file")
}

func runInit(cmd *cobra.Command, args []string) error {
	configPath := GetConfigFile()
	if configPath == "" {
		configPath = config.GetDefaultConfigPath()
	}

	if !initForce {
		if _, err := os.Stat(configPath); err == nil {
			return fmt.Errorf("configuration file already exists at %s (use --force to overwrite)", configPath)
		}
	}

	if err := config.SaveConfig(config.GetDefaultConfig(), configPath); err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	fmt.Printf("Configuration file created at: %s\n", configPath)
	fmt.Println("\nNext steps:")
	fmt.Println("  1. Edit the configuration file: set uds.interface and your ECU component map")
	fmt.Println("  2. Start the gateway with: sovdgw start")
	fmt.Printf("  3. Or specify a custom config: sovdgw start --config %s\n", configPath)
	fmt.Println("\nSecurity note:")
	fmt.Println("  If security.api_auth.enabled is true, set security.api_auth.signing_key")
	fmt.Println("  to a secret generated out of band, e.g.:")
	fmt.Println("    export SOVDGW_SECURITY_API_AUTH_SIGNING_KEY=$(openssl rand -hex 32)")

	return nil
}
