package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aussiebroadwan/tracker/internal/tracker/app"
)

var rootCmd = &cobra.Command{
	Use:           "tracker",
	Short:         "Multi-user time tracking service",
	Version:       app.BuildVersion,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "tracker: %v\n", err)
		os.Exit(1)
	}
}
