// Package components implements the "sovdgwctl components" command
// group.
package components

import "github.com/spf13/cobra"

// Cmd is the "components" command group, mounted under the root
// command.
var Cmd = &cobra.Command{
	Use:     "components",
	Aliases: []string{"component", "comp"},
	Short:   "Manage ECU components",
}

func init() {
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(dataCmd)
	Cmd.AddCommand(getCmd)
	Cmd.AddCommand(actuatorCmd)
	Cmd.AddCommand(dtcCmd)
	Cmd.AddCommand(serviceCmd)
}
