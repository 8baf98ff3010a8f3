package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/clearpath-legal/sponsorag/internal/cli"
	"github.com/clearpath-legal/sponsorag/internal/cli/admin"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "sponsoragd",
		Short: "Sponsorag daemon",
		Long:  "Sponsorag daemon for serving the question-answering API and ingesting guidance documents",
	}

	cli.AddHelpJSONFlag(rootCmd)
	rootCmd.AddCommand(admin.ServeCmd())
	rootCmd.AddCommand(admin.ProvisionCmd())
	rootCmd.AddCommand(admin.IngestCmd())

	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	cli.CheckHelpJSON(rootCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
