package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/marmos91/sovdgw/cmd/sovdgwctl/cmdutil"
	"github.com/marmos91/sovdgw/internal/cli/output"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Show gateway health and session pool status",
	Long: `Query the gateway's liveness and session pool endpoints.

Examples:
  sovdgwctl health`,
	RunE: runHealth,
}

func runHealth(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetClient()
	if err != nil {
		return err
	}

	readiness, err := client.Readiness()
	if err != nil {
		return fmt.Errorf("gateway readiness check failed: %w", err)
	}

	pool, err := client.Pool()
	if err != nil {
		return fmt.Errorf("failed to read pool status: %w", err)
	}

	format, err := cmdutil.GetOutputFormatParsed()
	if err != nil {
		return err
	}

	if format != output.FormatTable {
		return output.PrintJSON(os.Stdout, struct {
			Readiness any `json:"readiness"`
			Pool      any `json:"pool"`
		}{Readiness: readiness, Pool: pool})
	}

	fmt.Printf("Status:     %s\n", readiness.Status)
	if readiness.Reason != "" {
		fmt.Printf("Reason:     %s\n", readiness.Reason)
	}
	fmt.Printf("Components: %d\n", readiness.Components)
	fmt.Printf("Pool size:  %d\n", pool.Size)
	fmt.Println()

	table := output.NewTableData("COMPONENT", "ADDRESS", "CONNECTED")
	for _, c := range pool.Components {
		table.AddRow(c.ComponentID, c.Address, cmdutil.BoolToYesNo(c.Connected))
	}
	return output.PrintTable(os.Stdout, table)
}
