package client

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// UseCaseItem represents one registered use case.
type UseCaseItem struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// UseCasesResponse represents the usecases API response.
type UseCasesResponse struct {
	UseCases []UseCaseItem `json:"use_cases"`
	Default  string        `json:"default"`
}

// UseCasesCmd creates the usecases command.
func UseCasesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "usecases",
		Short: "List prompt use cases",
		Long:  "Lists the registered prompt use cases and the default.",
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			return runUseCases(cmd, outputJSON)
		},
	}
}

func runUseCases(cmd *cobra.Command, outputJSON bool) error {
	api, err := NewAPIClientWithCmd(cmd)
	if err != nil {
		return err
	}

	resp, err := api.Get("/usecases")
	if err != nil {
		return fmt.Errorf("usecases failed: %w", err)
	}

	var ucResp UseCasesResponse
	if err := json.Unmarshal(resp.Data, &ucResp); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	if outputJSON {
		output, _ := json.MarshalIndent(ucResp, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	for _, uc := range ucResp.UseCases {
		marker := " "
		if uc.Name == ucResp.Default {
			marker = "*"
		}
		fmt.Printf("%s %s", marker, uc.Name)
		if uc.Description != "" {
			fmt.Printf(" - %s", uc.Description)
		}
		fmt.Println()
	}
	fmt.Println("\n* default")

	return nil
}
