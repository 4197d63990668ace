// Package cli provides the bumpbook command line interface.
package cli

import (
	"context"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/bumpbook/internal/core/domain"
	"github.com/custodia-labs/bumpbook/internal/core/ports/driving"
	"github.com/custodia-labs/bumpbook/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	verbose   bool
	plainText bool
)

// Services used by the commands. Any of them may be nil; commands that need
// a missing service return an error rather than panic.
var (
	knowledgeService   driving.KnowledgeService
	indexService       driving.IndexService
	retrievalService   driving.RetrievalService
	chatService        driving.ChatService
	lookupService      driving.LookupService
	settingsService    driving.SettingsService
	preferencesService driving.PreferencesService
)

// Loader builds the services that depend on the knowledge document. It runs
// after flags are parsed, and only for commands that need those services.
type Loader func(ctx context.Context) (Services, error)

var loader Loader

// annotationKnowledge marks commands that need the knowledge document.
const annotationKnowledge = "bumpbook.knowledge"

// needsKnowledge is the Annotations value for such commands.
var needsKnowledge = map[string]string{annotationKnowledge: "true"}

// Services aggregates the driving ports wired by the composition root.
type Services struct {
	Knowledge   driving.KnowledgeService
	Index       driving.IndexService
	Retrieval   driving.RetrievalService
	Chat        driving.ChatService
	Lookup      driving.LookupService
	Settings    driving.SettingsService
	Preferences driving.PreferencesService
}

var rootCmd = &cobra.Command{
	Use:   "bumpbook",
	Short: "Pregnancy information with a grounded assistant",
	Long: `bumpbook answers pregnancy questions from a structured knowledge document.

Medication safety, symptoms, the week-by-week timeline and nutrition guidance
are read straight from the document. The assistant retrieves the most relevant
sections and asks the configured language model to answer from them.

Configure the knowledge document and AI providers with 'bumpbook settings'.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		if loader == nil || cmd.Annotations[annotationKnowledge] != "true" {
			return nil
		}
		s, err := loader(commandContext(cmd))
		if err != nil {
			return err
		}
		addServices(s)
		if s.Knowledge != nil {
			if result := s.Knowledge.Result(); result.Outcome.Kind == domain.OutcomeFailed {
				cmd.PrintErrf("Warning: knowledge document unavailable (%s). See 'bumpbook knowledge status'.\n", result.Outcome.Reason)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.SetOut(os.Stdout)
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().BoolVar(&plainText, "plain", false, "print assistant replies without markdown rendering")
}

// SetServices wires the driving ports used by the commands.
func SetServices(s Services) {
	knowledgeService = s.Knowledge
	indexService = s.Index
	retrievalService = s.Retrieval
	chatService = s.Chat
	lookupService = s.Lookup
	settingsService = s.Settings
	preferencesService = s.Preferences
}

// SetLoader registers the loader for the knowledge-backed services.
func SetLoader(l Loader) {
	loader = l
}

// addServices wires the non-nil ports in s, keeping the others.
func addServices(s Services) {
	if s.Knowledge != nil {
		knowledgeService = s.Knowledge
	}
	if s.Index != nil {
		indexService = s.Index
	}
	if s.Retrieval != nil {
		retrievalService = s.Retrieval
	}
	if s.Chat != nil {
		chatService = s.Chat
	}
	if s.Lookup != nil {
		lookupService = s.Lookup
	}
	if s.Settings != nil {
		settingsService = s.Settings
	}
	if s.Preferences != nil {
		preferencesService = s.Preferences
	}
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// commandContext returns the command's context, or a background context
// when the command was executed without one.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// ensureIndex runs the one-shot index build so retrieval can take the vector
// path. Later calls return the recorded status.
func ensureIndex(ctx context.Context) {
	if indexService == nil {
		return
	}
	status := indexService.Build(ctx)
	logger.Debug("Index: %s (%d/%d sections embedded)", status.State, status.Embedded, status.Sections)
}

// renderMarkdown renders text for a terminal. Output that is not a terminal,
// or --plain, gets the text unchanged.
func renderMarkdown(cmd *cobra.Command, text string) string {
	if plainText {
		return text
	}
	f, ok := cmd.OutOrStdout().(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return text
	}

	width := 80
	if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
		width = w
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width-4),
	)
	if err != nil {
		return text
	}
	out, err := r.Render(text)
	if err != nil {
		return text
	}
	return out
}

// printReply prints an assistant message with its provenance label.
func printReply(cmd *cobra.Command, msg domain.ChatMessage) {
	cmd.Println(renderMarkdown(cmd, msg.Text))
	cmd.Printf("[%s]\n", msg.Provenance.Label())
}
