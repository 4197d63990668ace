package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/bumpbook/internal/core/domain"
)

var errLookupNotConfigured = errors.New("lookup service not configured")

var medsCmd = &cobra.Command{
	Use:         "meds [name]",
	Annotations: needsKnowledge,
	Aliases:     []string{"medication"},
	Short:       "Check whether a medication is considered safe in pregnancy",
	Long: `Matches the name against drug names and brands, ignoring case. With no
argument every medication is listed, grouped by condition.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMeds,
}

var symptomCmd = &cobra.Command{
	Use:         "symptom [sign]",
	Annotations: needsKnowledge,
	Short:       "Look up a symptom and what to do about it",
	Args:        cobra.MinimumNArgs(1),
	RunE:        runSymptom,
}

var weekCmd = &cobra.Command{
	Use:         "week [number]",
	Annotations: needsKnowledge,
	Short:       "Show what happens in a week of pregnancy",
	Long: `Shows the timeline entries covering the given week. Without an argument the
current week is worked out from the due date set with 'bumpbook due-date set'.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWeek,
}

var emergencyCmd = &cobra.Command{
	Use:         "emergency",
	Annotations: needsKnowledge,
	Short:       "List the symptoms that need urgent attention",
	Args:        cobra.NoArgs,
	RunE:        runEmergency,
}

var nutritionCmd = &cobra.Command{
	Use:         "nutrition",
	Annotations: needsKnowledge,
	Short:       "Show daily nutrient targets and weight gain guidance",
	Args:        cobra.NoArgs,
	RunE:        runNutrition,
}

var foodSafetyCmd = &cobra.Command{
	Use:         "food-safety",
	Annotations: needsKnowledge,
	Short:       "Show foods to avoid",
	Args:        cobra.NoArgs,
	RunE:        runFoodSafety,
}

var morningSicknessCmd = &cobra.Command{
	Use:         "morning-sickness",
	Annotations: needsKnowledge,
	Short:       "Show morning sickness guidance",
	Args:        cobra.NoArgs,
	RunE:        runMorningSickness,
}

func init() {
	rootCmd.AddCommand(medsCmd)
	rootCmd.AddCommand(symptomCmd)
	rootCmd.AddCommand(weekCmd)
	rootCmd.AddCommand(emergencyCmd)
	rootCmd.AddCommand(nutritionCmd)
	rootCmd.AddCommand(foodSafetyCmd)
	rootCmd.AddCommand(morningSicknessCmd)
}

func runMeds(cmd *cobra.Command, args []string) error {
	if lookupService == nil {
		return errLookupNotConfigured
	}

	if len(args) == 0 {
		groups := lookupService.Medications()
		if len(groups) == 0 {
			cmd.Println("No medications in the knowledge document.")
			return nil
		}
		for _, g := range groups {
			cmd.Printf("%s\n", g.Condition)
			for _, m := range g.Medications {
				printMedication(cmd, m)
			}
			cmd.Println()
		}
		return nil
	}

	matches := lookupService.CheckMedicationSafety(args[0])
	if len(matches) == 0 {
		cmd.Printf("No medication matching %q. Ask your doctor or pharmacist.\n", args[0])
		return nil
	}
	for _, match := range matches {
		cmd.Printf("%s\n", match.Condition)
		printMedication(cmd, match.Medication)
	}
	return nil
}

func printMedication(cmd *cobra.Command, m domain.Medication) {
	name := m.Drug
	if m.Brand != "" {
		name = fmt.Sprintf("%s (%s)", m.Drug, m.Brand)
	}
	cmd.Printf("  [%s] %s: %s\n", m.Marker, name, m.SafetyLevel)
	if m.Note != "" {
		cmd.Printf("      %s\n", m.Note)
	}
}

func runSymptom(cmd *cobra.Command, args []string) error {
	if lookupService == nil {
		return errLookupNotConfigured
	}

	sign := strings.Join(args, " ")
	matches := lookupService.LookupSymptom(sign)
	if len(matches) == 0 {
		cmd.Printf("No symptom matching %q.\n", sign)
		return nil
	}
	printSymptoms(cmd, matches)
	return nil
}

func runEmergency(cmd *cobra.Command, _ []string) error {
	if lookupService == nil {
		return errLookupNotConfigured
	}

	matches := lookupService.EmergencySymptoms()
	if len(matches) == 0 {
		cmd.Println("No high-severity symptoms in the knowledge document.")
		return nil
	}
	cmd.Println("Seek medical help for any of these:")
	cmd.Println()
	printSymptoms(cmd, matches)
	return nil
}

func printSymptoms(cmd *cobra.Command, matches []domain.SymptomMatch) {
	for _, match := range matches {
		s := match.Symptom
		cmd.Printf("%s: %s [%s]\n", match.Category, s.Sign, s.Severity)
		if s.Urgency != "" {
			cmd.Printf("  Urgency: %s\n", s.Urgency)
		}
		if s.Action != "" {
			cmd.Printf("  Action: %s\n", s.Action)
		}
	}
}

func runWeek(cmd *cobra.Command, args []string) error {
	if lookupService == nil {
		return errLookupNotConfigured
	}

	week, err := resolveWeek(args)
	if err != nil {
		return err
	}

	entries := lookupService.WeekInfo(week)
	cmd.Printf("Week %d\n\n", week)
	if len(entries) == 0 {
		cmd.Println("No timeline entry covers this week.")
		return nil
	}
	for _, e := range entries {
		printTimelineEntry(cmd, e)
	}
	return nil
}

// resolveWeek parses the week argument, or derives it from the stored due date.
func resolveWeek(args []string) (int, error) {
	if len(args) == 1 {
		week, err := strconv.Atoi(args[0])
		if err != nil || week < 1 || week > domain.MaxGestationalWeek {
			return 0, fmt.Errorf("week must be a number between 1 and %d", domain.MaxGestationalWeek)
		}
		return week, nil
	}

	if preferencesService == nil {
		return 0, errors.New("no week given and preferences not configured")
	}
	week, ok, err := preferencesService.CurrentWeek(time.Now())
	if err != nil {
		return 0, fmt.Errorf("failed to read due date: %w", err)
	}
	if !ok {
		return 0, errors.New("no week given and no due date set; run 'bumpbook due-date set YYYY-MM-DD'")
	}
	return week, nil
}

func printTimelineEntry(cmd *cobra.Command, e domain.TimelineEntry) {
	cmd.Printf("Weeks %s (%s trimester): %s\n", e.Weeks, e.Trimester, e.Title)
	for _, s := range e.Symptoms {
		cmd.Printf("  - %s (%s)\n", s.Symptom, s.Status)
	}
	if e.Exercise != nil {
		cmd.Printf("  Exercise: %s\n", e.Exercise.Name)
		if e.Exercise.Benefits != "" {
			cmd.Printf("    %s\n", e.Exercise.Benefits)
		}
		for i, step := range e.Exercise.Steps {
			cmd.Printf("    %d. %s\n", i+1, step)
		}
	}
	cmd.Println()
}

func runNutrition(cmd *cobra.Command, _ []string) error {
	if lookupService == nil {
		return errLookupNotConfigured
	}

	guide := lookupService.Nutrition()
	cmd.Println("[Daily Needs]")
	if len(guide.DailyNeeds) == 0 {
		cmd.Println("  (none)")
	}
	for _, n := range guide.DailyNeeds {
		cmd.Printf("  %s: %s %s (%s)\n", n.Name, n.Amount, n.Unit, n.Category)
	}
	cmd.Println()

	cmd.Println("[Weight Gain]")
	if len(guide.WeightGain) == 0 {
		cmd.Println("  (none)")
	}
	for _, w := range guide.WeightGain {
		cmd.Printf("  %s (BMI %s): %s\n", w.BMICategory, w.BMIRange, w.TotalGain)
	}
	return nil
}

func runFoodSafety(cmd *cobra.Command, _ []string) error {
	if lookupService == nil {
		return errLookupNotConfigured
	}

	f := lookupService.FoodSafety()
	if f.IsEmpty() {
		cmd.Println("No food safety guidance in the knowledge document.")
		return nil
	}
	if len(f.UnsafeSeafood) > 0 {
		cmd.Printf("Unsafe seafood: %s\n", strings.Join(f.UnsafeSeafood, ", "))
	}
	if len(f.Avoid) > 0 {
		cmd.Println("Avoid:")
		for _, a := range f.Avoid {
			cmd.Printf("  - %s: %s\n", a.Item, a.Reason)
		}
	}
	return nil
}

func runMorningSickness(cmd *cobra.Command, _ []string) error {
	if lookupService == nil {
		return errLookupNotConfigured
	}

	m := lookupService.MorningSickness()
	if m.IsEmpty() {
		cmd.Println("No morning sickness guidance in the knowledge document.")
		return nil
	}
	printList(cmd, "Eat", m.Eat)
	printList(cmd, "Avoid", m.Avoid)
	printList(cmd, "Tips", m.Tips)
	return nil
}

func printList(cmd *cobra.Command, title string, items []string) {
	if len(items) == 0 {
		return
	}
	cmd.Printf("%s:\n", title)
	for _, item := range items {
		cmd.Printf("  - %s\n", item)
	}
}
