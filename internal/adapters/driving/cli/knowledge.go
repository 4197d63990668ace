package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/bumpbook/internal/core/domain"
)

var knowledgeCmd = &cobra.Command{
	Use:   "knowledge",
	Short: "Knowledge document commands",
	Long:  `Commands for inspecting the knowledge document loaded at startup.`,
}

var knowledgeStatusCmd = &cobra.Command{
	Use:         "status",
	Annotations: needsKnowledge,
	Short:       "Show where the document came from and what could not be used",
	Long: `Shows the knowledge document source and the load outcome. Slices that could
not be decoded or are missing required fields are listed; they are skipped and
the rest of the document is still used.`,
	Args: cobra.NoArgs,
	RunE: runKnowledgeStatus,
}

func init() {
	knowledgeCmd.AddCommand(knowledgeStatusCmd)
	rootCmd.AddCommand(knowledgeCmd)
}

func runKnowledgeStatus(cmd *cobra.Command, _ []string) error {
	if knowledgeService == nil {
		return errors.New("knowledge service not configured")
	}
	printLoadResult(cmd, knowledgeService.Result())
	return nil
}

func printLoadResult(cmd *cobra.Command, result domain.LoadResult) {
	cmd.Println("[Knowledge]")
	source := result.Source
	if source == "" {
		source = "(none)"
	}
	cmd.Printf("  Source: %s\n", source)
	cmd.Printf("  Outcome: %s\n", result.Outcome)
	if len(result.Problems) == 0 {
		return
	}
	cmd.Printf("  Skipped slices: %d\n", len(result.Problems))
	for _, p := range result.Problems {
		cmd.Printf("    - %s\n", p.Error())
	}
}
