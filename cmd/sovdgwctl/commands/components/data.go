package components

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/marmos91/sovdgw/cmd/sovdgwctl/cmdutil"
	"github.com/marmos91/sovdgw/pkg/apiclient"
)

var dataCategories string

var dataCmd = &cobra.Command{
	Use:   "data <component-id>",
	Short: "List identification data items",
	Long: `List the data items a component exposes, optionally filtered
by category (e.g. "identData").

Examples:
  sovdgwctl components data abs-controller
  sovdgwctl components data abs-controller --categories identData`,
	Args: cobra.ExactArgs(1),
	RunE: runData,
}

func init() {
	dataCmd.Flags().StringVar(&dataCategories, "categories", "", "Comma-separated list of categories to filter by")
}

type dataItemList []apiclient.DataItem

func (dl dataItemList) Headers() []string { return []string{"ID", "NAME", "CATEGORY", "TYPE"} }

func (dl dataItemList) Rows() [][]string {
	rows := make([][]string, 0, len(dl))
	for _, item := range dl {
		rows = append(rows, []string{item.ID, item.Name, item.Category, cmdutil.EmptyOr(item.DataType, "-")})
	}
	return rows
}

func runData(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetClient()
	if err != nil {
		return err
	}

	categories := cmdutil.ParseCommaSeparatedList(dataCategories)
	items, err := client.ListDataItems(args[0], categories)
	if err != nil {
		return fmt.Errorf("failed to list data items for %s: %w", args[0], err)
	}

	return cmdutil.PrintOutput(os.Stdout, len(items) == 0, "No data items found.", dataItemList(items), items)
}
