package cli

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/bumpbook/internal/adapters/driving/tui"
	"github.com/custodia-labs/bumpbook/internal/logger"
)

// tuiLogFile receives log output while the TUI owns the terminal.
const tuiLogFile = "bumpbook-debug.log"

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:         "tui",
	Annotations: needsKnowledge,
	Short:       "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for bumpbook.

The TUI has five tabs: Chat, Medications, Symptoms, Timeline and Nutrition.
The knowledge index is built in the background; until it is ready the chat
uses keyword matching.

Controls:
  tab / shift+tab - Switch tabs
  enter           - Send a question
  ctrl+r          - Start a new conversation
  ↑/↓             - Scroll, or change week on the timeline
  t               - Jump to this week on the timeline
  ctrl+c          - Quit

With --verbose, logs are written to ` + tuiLogFile + `.`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	ports := &tui.Ports{
		Lookup:      lookupService,
		Chat:        chatService,
		Index:       indexService,
		Preferences: preferencesService,
	}

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(commandContext(cmd))

	// Log lines written to stderr would corrupt the alternate screen.
	if verbose {
		f, err := tea.LogToFile(tuiLogFile, "bumpbook")
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer f.Close()
		logger.SetOutput(f)
	} else {
		logger.SetOutput(io.Discard)
	}
	defer logger.SetOutput(os.Stderr)

	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
