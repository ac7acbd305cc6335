// Command sovdgwctl is the command-line client for a running sovdgw
// diagnostics gateway.
package main

import (
	"fmt"
	"os"

	"github.com/marmos91/sovdgw/cmd/sovdgwctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
