package components

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/marmos91/sovdgw/cmd/sovdgwctl/cmdutil"
	"github.com/marmos91/sovdgw/internal/cli/output"
)

var dtcCodes string

var dtcCmd = &cobra.Command{
	Use:   "dtc <component-id> <action>",
	Short: "Manage diagnostic trouble codes",
	Long: `Read, clear, or dump the freeze frame for a component's
diagnostic trouble codes. Valid actions: read, clear, freeze_frame.

Examples:
  sovdgwctl components dtc abs-controller read
  sovdgwctl components dtc abs-controller clear
  sovdgwctl components dtc abs-controller freeze_frame --codes P0123`,
	Args: cobra.ExactArgs(2),
	RunE: runDTC,
}

func init() {
	dtcCmd.Flags().StringVar(&dtcCodes, "codes", "", "Comma-separated list of DTC codes; freeze_frame reads the first one (clear always clears every DTC)")
}

func runDTC(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetClient()
	if err != nil {
		return err
	}

	result, err := client.ManageDTCs(args[0], args[1], cmdutil.ParseCommaSeparatedList(dtcCodes))
	if err != nil {
		return fmt.Errorf("DTC %s failed: %w", args[1], err)
	}

	format, err := cmdutil.GetOutputFormatParsed()
	if err != nil {
		return err
	}
	if format != output.FormatTable {
		return output.PrintJSON(os.Stdout, result)
	}

	switch result.Action {
	case "read":
		dtcs, _ := result.Results["dtcs"].([]any)
		if len(dtcs) == 0 {
			fmt.Println("No active DTCs.")
			return nil
		}
		table := output.NewTableData("CODE", "STATUS", "DESCRIPTION")
		for _, raw := range dtcs {
			m, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			table.AddRow(fmt.Sprint(m["code"]), fmt.Sprint(m["status"]), fmt.Sprint(m["description"]))
		}
		return output.PrintTable(os.Stdout, table)
	case "freeze_frame":
		fmt.Printf("Freeze frame: %v\n", result.Results["freeze_frame_data"])
		return nil
	default:
		cmdutil.PrintSuccess(fmt.Sprintf("%s on %s: %s", result.Action, args[0], result.Status))
		return nil
	}
}
