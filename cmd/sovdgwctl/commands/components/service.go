package components

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/marmos91/sovdgw/cmd/sovdgwctl/cmdutil"
	"github.com/marmos91/sovdgw/internal/cli/output"
)

var serviceParamsRaw string

var serviceCmd = &cobra.Command{
	Use:   "service <component-id> <service-type>",
	Short: "Execute a generic diagnostic service",
	Long: `Dispatch a diagnostic service not covered by a dedicated
subcommand, passing parameters as a JSON object. Service types:
session_control (session_type), ecu_reset (reset_type),
security_access (optional level), clear_dtcs.

Examples:
  sovdgwctl components service abs-controller ecu_reset --params '{"reset_type":1}'
  sovdgwctl components service abs-controller session_control --params '{"session_type":3}'`,
	Args: cobra.ExactArgs(2),
	RunE: runService,
}

func init() {
	serviceCmd.Flags().StringVar(&serviceParamsRaw, "params", "", "Service parameters as a JSON object")
}

func runService(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetClient()
	if err != nil {
		return err
	}

	var params map[string]any
	if serviceParamsRaw != "" {
		if err := json.Unmarshal([]byte(serviceParamsRaw), &params); err != nil {
			return fmt.Errorf("invalid --params JSON: %w", err)
		}
	}

	result, err := client.ExecuteService(args[0], args[1], params)
	if err != nil {
		return fmt.Errorf("service %s failed: %w", args[1], err)
	}

	format, err := cmdutil.GetOutputFormatParsed()
	if err != nil {
		return err
	}
	if format != output.FormatTable {
		return output.PrintJSON(os.Stdout, result)
	}

	cmdutil.PrintSuccess(fmt.Sprintf("%s on %s: %s", result.ServiceType, args[0], result.Status))
	return nil
}
