// ABOUTME: Entry point for the uni-complaint CLI
// ABOUTME: Terminal client for the university complaint management API

package main

import (
	"fmt"
	"os"

	"github.com/basgenix/uni-complaint-system/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
