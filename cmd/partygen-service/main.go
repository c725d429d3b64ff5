package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/partypulse/partygen/partygenservice"
)

var rootCmd = &cobra.Command{
	Use:   "partygen-service",
	Short: "LLM-backed truth-or-dare content generation service",
	RunE: func(cmd *cobra.Command, args []string) error {
		return partygenservice.Run()
	},
}

func main() {
	// Configuration comes from PARTYGEN_-prefixed environment variables;
	// the flag only overrides the listen port for local runs.
	var port int
	rootCmd.Flags().IntVarP(&port, "port", "p", 0, "Override PARTYGEN_HTTP_PORT")
	rootCmd.PreRun = func(cmd *cobra.Command, args []string) {
		if port != 0 {
			os.Setenv("PARTYGEN_HTTP_PORT", fmt.Sprintf("%d", port))
		}
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
