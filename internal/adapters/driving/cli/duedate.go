package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/bumpbook/internal/core/domain"
)

var errPreferencesNotConfigured = errors.New("preferences service not configured")

var dueDateCmd = &cobra.Command{
	Use:   "due-date",
	Short: "Manage the due date used to work out the current week",
	RunE:  runDueDateShow,
}

var dueDateSetCmd = &cobra.Command{
	Use:   "set [YYYY-MM-DD]",
	Short: "Set the due date",
	Args:  cobra.ExactArgs(1),
	RunE:  runDueDateSet,
}

var dueDateShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the due date and current week",
	Args:  cobra.NoArgs,
	RunE:  runDueDateShow,
}

func init() {
	dueDateCmd.AddCommand(dueDateSetCmd)
	dueDateCmd.AddCommand(dueDateShowCmd)
	rootCmd.AddCommand(dueDateCmd)
}

func runDueDateSet(cmd *cobra.Command, args []string) error {
	if preferencesService == nil {
		return errPreferencesNotConfigured
	}

	due, err := domain.ParseDueDate(args[0])
	if err != nil {
		return err
	}
	if err := preferencesService.SetDueDate(due); err != nil {
		return fmt.Errorf("failed to save due date: %w", err)
	}

	cmd.Printf("Due date set to %s (week %d).\n",
		due.Format(domain.DueDateLayout), domain.GestationalWeek(due, time.Now()))
	return nil
}

func runDueDateShow(cmd *cobra.Command, _ []string) error {
	if preferencesService == nil {
		return errPreferencesNotConfigured
	}

	due, ok, err := preferencesService.DueDate()
	if err != nil {
		return fmt.Errorf("failed to read due date: %w", err)
	}
	if !ok {
		cmd.Println("No due date set. Run 'bumpbook due-date set YYYY-MM-DD'.")
		return nil
	}

	cmd.Printf("Due date: %s\n", due.Format(domain.DueDateLayout))
	cmd.Printf("Current week: %d\n", domain.GestationalWeek(due, time.Now()))
	return nil
}
