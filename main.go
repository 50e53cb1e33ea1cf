package main

import (
	"os"

	"github.com/a11yauditor/a11y-auditor/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
