// Command sovdgw runs the diagnostics gateway: a SOVD-style REST API
// in front of a fleet of UDS-speaking ECUs.
package main

import (
	"fmt"
	"os"

	"github.com/marmos91/sovdgw/cmd/sovdgw/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
