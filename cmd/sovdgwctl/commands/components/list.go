package components

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/marmos91/sovdgw/cmd/sovdgwctl/cmdutil"
	"github.com/marmos91/sovdgw/pkg/apiclient"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured ECU components",
	Long: `List all ECU components the gateway is configured to talk to.

Examples:
  sovdgwctl components list
  sovdgwctl components list -o json`,
	RunE: runList,
}

// componentList renders components as a table.
type componentList []apiclient.Component

func (cl componentList) Headers() []string { return []string{"ID", "NAME", "DESCRIPTION"} }

func (cl componentList) Rows() [][]string {
	rows := make([][]string, 0, len(cl))
	for _, c := range cl {
		rows = append(rows, []string{c.ID, c.Name, cmdutil.EmptyOr(c.Description, "-")})
	}
	return rows
}

func runList(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetClient()
	if err != nil {
		return err
	}

	list, err := client.ListComponents()
	if err != nil {
		return fmt.Errorf("failed to list components: %w", err)
	}

	return cmdutil.PrintOutput(os.Stdout, len(list) == 0, "No components configured.", componentList(list), list)
}
