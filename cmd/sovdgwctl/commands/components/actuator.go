package components

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marmos91/sovdgw/cmd/sovdgwctl/cmdutil"
	"github.com/marmos91/sovdgw/pkg/apiclient"
)

var (
	actuatorAction   string
	actuatorValueRaw string
	actuatorDuration int
)

var actuatorCmd = &cobra.Command{
	Use:   "actuator <component-id> <actuator-id>",
	Short: "Control a component actuator",
	Long: `Send an actuator control command to a component: start or stop
the routine behind fuel_pump, cooling_fan, or throttle. The --duration
value is sent with the request; the gateway does not act on it.

Examples:
  sovdgwctl components actuator abs-controller fuel_pump --action start
  sovdgwctl components actuator abs-controller throttle --action start --value 75`,
	Args: cobra.ExactArgs(2),
	RunE: runActuator,
}

func init() {
	actuatorCmd.Flags().StringVar(&actuatorAction, "action", "", "Action to perform (required)")
	actuatorCmd.Flags().StringVar(&actuatorValueRaw, "value", "", "Value to set, parsed as JSON if possible, else as a string")
	actuatorCmd.Flags().IntVar(&actuatorDuration, "duration", 0, "Duration in milliseconds, 0 to omit")
	_ = actuatorCmd.MarkFlagRequired("action")
}

func runActuator(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetClient()
	if err != nil {
		return err
	}

	req := apiclient.ActuatorControlRequest{
		ActuatorID: args[1],
		Action:     actuatorAction,
		Value:      parseValue(actuatorValueRaw),
	}
	if actuatorDuration > 0 {
		req.Duration = &actuatorDuration
	}

	result, err := client.ControlActuator(args[0], req)
	if err != nil {
		return fmt.Errorf("actuator control failed: %w", err)
	}

	cmdutil.PrintSuccess(fmt.Sprintf("%s %s on %s: %s", result.Action, result.ActuatorID, args[0], result.Status))
	return nil
}

// parseValue tries to interpret raw as JSON (so numbers, booleans, and
// objects round-trip correctly); falls back to a plain string.
func parseValue(raw string) any {
	if raw == "" {
		return nil
	}
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err == nil {
		return v
	}
	return raw
}
