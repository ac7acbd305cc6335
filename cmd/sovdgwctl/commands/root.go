// Package commands implements the CLI commands for the sovdgwctl
// client.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/marmos91/sovdgw/cmd/sovdgwctl/cmdutil"
	componentscmd "github.com/marmos91/sovdgw/cmd/sovdgwctl/commands/components"
)

var (
	// Version information injected at build time.
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "sovdgwctl",
	Short: "sovdgwctl - diagnostics gateway client",
	Long: `sovdgwctl is the command-line client for a running sovdgw
diagnostics gateway.

Use this tool to list components, read identification and measurement
data, control actuators, and manage diagnostic trouble codes through
the gateway's REST API.

Use "sovdgwctl [command] --help" for more information about a command.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cmdutil.Flags.ServerURL, _ = cmd.Flags().GetString("server")
		cmdutil.Flags.Token, _ = cmd.Flags().GetString("token")
		cmdutil.Flags.Output, _ = cmd.Flags().GetString("output")
		cmdutil.Flags.NoColor, _ = cmd.Flags().GetBool("no-color")
		cmdutil.Flags.Verbose, _ = cmd.Flags().GetBool("verbose")
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. Called once by main.main.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("server", "", "Gateway URL (overrides stored credential)")
	rootCmd.PersistentFlags().String("token", "", "Bearer token (overrides stored credential)")
	rootCmd.PersistentFlags().StringP("output", "o", "table", "Output format (table|json|yaml)")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(componentscmd.Cmd)

	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
