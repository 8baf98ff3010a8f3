package client

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// SearchRequest represents the search API request.
type SearchRequest struct {
	Query string `json:"query"`
	TopK  int    `json:"top_k,omitempty"`
}

// SearchResponse represents the search API response.
type SearchResponse struct {
	Matches           []Match `json:"matches"`
	RetrievalDegraded bool    `json:"retrieval_degraded"`
}

// SearchCmd creates the search command.
func SearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the knowledge base",
		Long:  "Retrieves the nearest guidance chunks for a query without generating an answer.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			topK, _ := cmd.Flags().GetInt("top-k")
			return runSearch(cmd, args[0], topK, outputJSON)
		},
	}

	cmd.Flags().IntP("top-k", "k", 0, "Number of results to return (0 uses the server default)")

	return cmd
}

func runSearch(cmd *cobra.Command, query string, topK int, outputJSON bool) error {
	api, err := NewAPIClientWithCmd(cmd)
	if err != nil {
		return err
	}

	resp, err := api.Post("/search", SearchRequest{Query: query, TopK: topK})
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	var searchResp SearchResponse
	if err := json.Unmarshal(resp.Data, &searchResp); err != nil {
		return fmt.Errorf("failed to parse search results: %w", err)
	}

	if outputJSON {
		output, _ := json.MarshalIndent(searchResp, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	if len(searchResp.Matches) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	fmt.Printf("Found %d results:\n\n", len(searchResp.Matches))
	for i, m := range searchResp.Matches {
		fmt.Printf("%d. %s (%.2f)\n", i+1, m.Source, m.Score)
		snippet := m.PageContent
		if len(snippet) > 200 {
			snippet = snippet[:197] + "..."
		}
		fmt.Printf("   %s\n", snippet)
		if i < len(searchResp.Matches)-1 {
			fmt.Println(strings.Repeat("-", 40))
		}
	}

	return nil
}
