package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var askSources bool

var askCmd = &cobra.Command{
	Use:         "ask [question]",
	Annotations: needsKnowledge,
	Short:       "Ask the assistant a question",
	Long: `Asks the assistant one question. The most relevant knowledge sections are
retrieved and passed to the language model as context, and the reply is
labelled with whether it came from the knowledge base or general knowledge.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

var chatCmd = &cobra.Command{
	Use:         "chat",
	Annotations: needsKnowledge,
	Short:       "Start an interactive conversation",
	Long: `Starts a conversation with the assistant. History is kept in memory for the
session only.

Commands:
  /reset   - Clear the conversation
  /history - Show the conversation so far
  /quit    - Leave (also: exit, Ctrl+D)`,
	Args: cobra.NoArgs,
	RunE: runChat,
}

func init() {
	askCmd.Flags().BoolVar(&askSources, "sources", false, "list the sections retrieved for the reply")
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(chatCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if chatService == nil {
		return errors.New("chat service not configured")
	}

	ctx := commandContext(cmd)
	ensureIndex(ctx)

	msg, err := chatService.Ask(ctx, strings.Join(args, " "))
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	printReply(cmd, msg)
	if askSources && len(msg.Sources) > 0 {
		cmd.Println("Sources:")
		for _, id := range msg.Sources {
			cmd.Printf("  - %s\n", id)
		}
	}
	return nil
}

func runChat(cmd *cobra.Command, _ []string) error {
	if chatService == nil {
		return errors.New("chat service not configured")
	}

	ctx := commandContext(cmd)
	ensureIndex(ctx)

	cmd.Println("bumpbook chat. Type /quit to leave.")
	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		cmd.Print("> ")
		if !scanner.Scan() {
			cmd.Println()
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "/quit", "exit", "quit":
			return nil
		case "/reset":
			if err := chatService.Reset(ctx); err != nil {
				return fmt.Errorf("reset failed: %w", err)
			}
			cmd.Println("Conversation cleared.")
			continue
		case "/history":
			if err := printHistory(cmd); err != nil {
				return err
			}
			continue
		}

		msg, err := chatService.Ask(ctx, line)
		if err != nil {
			return fmt.Errorf("ask failed: %w", err)
		}
		printReply(cmd, msg)
		cmd.Println()
	}
}

func printHistory(cmd *cobra.Command) error {
	history, err := chatService.History(commandContext(cmd))
	if err != nil {
		return fmt.Errorf("history failed: %w", err)
	}
	if len(history) == 0 {
		cmd.Println("No messages yet.")
		return nil
	}
	for _, msg := range history {
		if msg.Provenance != "" {
			cmd.Printf("%s (%s): %s\n", msg.Role, msg.Provenance, msg.Text)
		} else {
			cmd.Printf("%s: %s\n", msg.Role, msg.Text)
		}
	}
	return nil
}
