package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "survey-relay",
		Short: "Clinical intake survey relay: webhook to AI pre-analysis to Slack",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(chartCmd())
	rootCmd.AddCommand(notifyTestCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
