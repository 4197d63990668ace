package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/bumpbook/internal/core/domain"
)

var sectionsJSON bool

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Embedding index commands",
	Long:  `Commands for inspecting the embedding index built over the knowledge sections.`,
}

var indexStatusCmd = &cobra.Command{
	Use:         "status",
	Annotations: needsKnowledge,
	Short:       "Show the index state",
	Args:        cobra.NoArgs,
	RunE:        runIndexStatus,
}

var indexBuildCmd = &cobra.Command{
	Use:         "build",
	Annotations: needsKnowledge,
	Short:       "Embed every section and report the result",
	Long: `Embeds every knowledge section. Cached vectors are reused when the section
content and embedding model are unchanged. The build is attempted once per
process; a failure leaves retrieval on keyword matching.`,
	Args: cobra.NoArgs,
	RunE: runIndexBuild,
}

var sectionsCmd = &cobra.Command{
	Use:         "sections",
	Annotations: needsKnowledge,
	Short:       "List the knowledge sections",
	Args:        cobra.NoArgs,
	RunE:        runSections,
}

func init() {
	indexCmd.AddCommand(indexStatusCmd)
	indexCmd.AddCommand(indexBuildCmd)
	rootCmd.AddCommand(indexCmd)

	sectionsCmd.Flags().BoolVar(&sectionsJSON, "json", false, "output sections as JSON")
	rootCmd.AddCommand(sectionsCmd)
}

func runIndexStatus(cmd *cobra.Command, _ []string) error {
	if indexService == nil {
		return errors.New("index service not configured")
	}
	printIndexStatus(cmd, indexService.Status())
	if knowledgeService != nil {
		if result := knowledgeService.Result(); !result.Outcome.OK() {
			cmd.Printf("  Knowledge: %s\n", result.Outcome)
		}
	}
	return nil
}

func runIndexBuild(cmd *cobra.Command, _ []string) error {
	if indexService == nil {
		return errors.New("index service not configured")
	}
	status := indexService.Build(commandContext(cmd))
	printIndexStatus(cmd, status)
	if status.State == domain.IndexFailed {
		return fmt.Errorf("index build failed: %s", status.Outcome.Reason)
	}
	return nil
}

func printIndexStatus(cmd *cobra.Command, status domain.IndexStatus) {
	cmd.Println("[Index]")
	cmd.Printf("  State: %s\n", status.State)
	cmd.Printf("  Sections: %d\n", status.Sections)
	cmd.Printf("  Embedded: %d\n", status.Embedded)
	if status.CacheHits > 0 {
		cmd.Printf("  Cache hits: %d\n", status.CacheHits)
	}
	if status.Model != "" {
		cmd.Printf("  Model: %s\n", status.Model)
	}
	cmd.Printf("  Threshold: %.2f\n", domain.SimilarityThreshold)
	if !status.Outcome.OK() {
		cmd.Printf("  Note: %s\n", status.Outcome)
	}
}

type sectionJSON struct {
	ID       string `json:"id"`
	Content  string `json:"content"`
	Embedded bool   `json:"embedded"`
}

func runSections(cmd *cobra.Command, _ []string) error {
	if indexService == nil {
		return errors.New("index service not configured")
	}

	sections := indexService.Sections()
	if sectionsJSON {
		out := make([]sectionJSON, len(sections))
		for i, s := range sections {
			out[i] = sectionJSON{ID: s.ID, Content: s.Content, Embedded: s.HasEmbedding()}
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal sections: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(sections) == 0 {
		cmd.Println("No sections. Set a knowledge document with 'bumpbook settings knowledge <path|url>'.")
		return nil
	}
	for _, s := range sections {
		cmd.Printf("%s\n    %s\n", s.ID, truncate(s.Content, 100))
	}
	cmd.Printf("\n%d sections\n", len(sections))
	return nil
}
