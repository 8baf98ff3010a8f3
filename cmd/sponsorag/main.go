package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/clearpath-legal/sponsorag/internal/cli"
	"github.com/clearpath-legal/sponsorag/internal/cli/client"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "sponsorag",
		Short: "Sponsorag CLI - UK sponsor-licence question answering",
		Long: `Sponsorag CLI queries the sponsor-licence knowledge base.

Environment variables:
  SPONSORAG_API_TOKEN   API token for authentication (optional)
  SPONSORAG_API_URL     API base URL (default: http://localhost:8080)`,
		Version: version,
	}

	rootCmd.PersistentFlags().Bool("output", false, "Output as JSON")
	rootCmd.PersistentFlags().String("api-token", "", "API token for authentication (overrides env)")
	rootCmd.PersistentFlags().String("api-url", "", "API base URL (overrides env)")
	cli.AddHelpJSONFlag(rootCmd)

	rootCmd.AddCommand(client.AskCmd())
	rootCmd.AddCommand(client.SearchCmd())
	rootCmd.AddCommand(client.UseCasesCmd())

	cli.CheckHelpJSON(rootCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
