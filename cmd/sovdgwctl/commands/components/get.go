package components

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/marmos91/sovdgw/cmd/sovdgwctl/cmdutil"
	"github.com/marmos91/sovdgw/internal/cli/output"
)

var getCmd = &cobra.Command{
	Use:   "get <component-id> <data-id>",
	Short: "Read the current value of a data item",
	Long: `Read a single identification data item from a component, e.g.
VIN or software version.

Examples:
  sovdgwctl components get abs-controller vin
  sovdgwctl components get abs-controller ecu_software_version -o json`,
	Args: cobra.ExactArgs(2),
	RunE: runGet,
}

func runGet(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetClient()
	if err != nil {
		return err
	}

	value, err := client.GetDataItem(args[0], args[1])
	if err != nil {
		return fmt.Errorf("failed to read %s/%s: %w", args[0], args[1], err)
	}

	format, err := cmdutil.GetOutputFormatParsed()
	if err != nil {
		return err
	}
	if format != output.FormatTable {
		return output.PrintJSON(os.Stdout, value)
	}

	fmt.Printf("%-12s %s\n", "ID:", value.ID)
	fmt.Printf("%-12s %s\n", "Name:", value.Name)
	fmt.Printf("%-12s %s\n", "Category:", value.Category)
	fmt.Printf("%-12s %v\n", "Value:", value.Data)
	fmt.Printf("%-12s %s\n", "Quality:", value.Quality)
	fmt.Printf("%-12s %s\n", "Read at:", value.Timestamp)
	return nil
}
