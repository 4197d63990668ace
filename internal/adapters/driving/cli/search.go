package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/bumpbook/internal/core/domain"
)

var (
	searchLimit int
	searchJSON  bool
)

var searchCmd = &cobra.Command{
	Use:         "search [query]",
	Annotations: needsKnowledge,
	Short:       "Find the knowledge sections most relevant to a query",
	Long: `Ranks knowledge sections by semantic similarity to the query when the
embedding index is ready. Without embeddings, sections containing the query
text are listed in document order.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", domain.DefaultTopK, "maximum number of results")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

// searchResultJSON is the JSON shape of one search result.
type searchResultJSON struct {
	ID      string  `json:"id"`
	Score   float64 `json:"score"`
	Content string  `json:"content"`
}

type searchOutputJSON struct {
	Query   string             `json:"query"`
	Method  string             `json:"method"`
	Outcome string             `json:"outcome"`
	Results []searchResultJSON `json:"results"`
}

func runSearch(cmd *cobra.Command, args []string) error {
	if retrievalService == nil {
		return errors.New("retrieval service not configured")
	}

	ctx := commandContext(cmd)
	ensureIndex(ctx)

	retrieval := retrievalService.Retrieve(ctx, args[0], searchLimit)

	if searchJSON {
		return outputSearchJSON(cmd, retrieval)
	}
	outputSearchTable(cmd, retrieval)
	return nil
}

func outputSearchJSON(cmd *cobra.Command, retrieval domain.Retrieval) error {
	out := searchOutputJSON{
		Query:   retrieval.Query,
		Method:  retrieval.Method.String(),
		Outcome: retrieval.Outcome.String(),
		Results: make([]searchResultJSON, len(retrieval.Results)),
	}
	for i, r := range retrieval.Results {
		out.Results[i] = searchResultJSON{ID: r.Section.ID, Score: r.Score, Content: r.Section.Content}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, retrieval domain.Retrieval) {
	if !retrieval.Outcome.OK() {
		cmd.Printf("Note: %s, using keyword matching.\n\n", retrieval.Outcome.Reason)
	}

	if len(retrieval.Results) == 0 {
		cmd.Println("No results found.")
		return
	}

	cmd.Printf("Results (%s):\n\n", retrieval.Method)
	for i, r := range retrieval.Results {
		if retrieval.Method == domain.RetrievalVector {
			cmd.Printf("  [%d] %s (%.2f)\n", i+1, r.Section.ID, r.Score)
		} else {
			cmd.Printf("  [%d] %s\n", i+1, r.Section.ID)
		}
		cmd.Printf("      %s\n\n", truncate(r.Section.Content, 160))
	}
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}
