package client

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// GenerateRequest represents the generate API request.
type GenerateRequest struct {
	Query   string `json:"query"`
	UseCase string `json:"use_case,omitempty"`
}

// Match represents one retrieved chunk in an API response.
type Match struct {
	PageContent string  `json:"page_content"`
	Source      string  `json:"source"`
	Score       float32 `json:"score"`
}

// GenerateResponse represents the generate API response.
type GenerateResponse struct {
	Answer            string  `json:"answer"`
	UseCase           string  `json:"use_case"`
	Matches           []Match `json:"matches"`
	RetrievalDegraded bool    `json:"retrieval_degraded"`
}

// AskCmd creates the ask command.
func AskCmd() *cobra.Command {
	var useCase string

	cmd := &cobra.Command{
		Use:   "ask <query>",
		Short: "Ask a sponsor-licence question",
		Long:  "Sends a query through the retrieval pipeline and prints the generated answer.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			return runAsk(cmd, args[0], useCase, outputJSON)
		},
	}

	cmd.Flags().StringVarP(&useCase, "use-case", "u", "", "Prompt use case (see 'usecases')")

	return cmd
}

func runAsk(cmd *cobra.Command, query, useCase string, outputJSON bool) error {
	api, err := NewAPIClientWithCmd(cmd)
	if err != nil {
		return err
	}

	resp, err := api.Post("/generate", GenerateRequest{
		Query:   query,
		UseCase: useCase,
	})
	if err != nil {
		return fmt.Errorf("generate failed: %w", err)
	}

	var genResp GenerateResponse
	if err := json.Unmarshal(resp.Data, &genResp); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	if outputJSON {
		output, _ := json.MarshalIndent(genResp, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	fmt.Println(genResp.Answer)

	if genResp.RetrievalDegraded {
		fmt.Println("\nNote: retrieval was unavailable; this answer was generated without knowledge-base context.")
	}

	if len(genResp.Matches) > 0 {
		fmt.Printf("\n%s\nSources:\n", strings.Repeat("-", 40))
		for i, m := range genResp.Matches {
			fmt.Printf("%d. %s (%.2f)\n", i+1, m.Source, m.Score)
		}
	}

	return nil
}
