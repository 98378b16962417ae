package main

import (
	"os"

	"github.com/arthur-debert/printergen/cmd/printergen"
)

func main() {
	rootCmd := printergen.NewRootCmd()
	cmd, err := rootCmd.ExecuteC()
	if err != nil {
		printergen.ReportError(os.Stderr, cmd, err)
		os.Exit(1)
	}
}
