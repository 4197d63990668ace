// Package nutrition provides the nutrition, food safety and morning sickness view for the TUI.
package nutrition

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/bumpbook/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/bumpbook/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/bumpbook/internal/core/ports/driving"
)

// View is a scrollable page of the nutrition guidance in the knowledge base.
type View struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	viewport viewport.Model

	lookupService driving.LookupService

	width  int
	height int
	ready  bool
}

// NewView creates a new nutrition view.
func NewView(s *styles.Styles, km *keymap.KeyMap, lookupService driving.LookupService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	v := &View{
		styles:        s,
		keymap:        km,
		viewport:      viewport.New(80, 20),
		lookupService: lookupService,
		width:         80,
		height:        24,
	}
	v.viewport.SetContent(v.content())
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the nutrition view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		v.ready = true

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, v.keymap.Up):
			v.viewport.SetYOffset(v.viewport.YOffset - 1)
		case key.Matches(msg, v.keymap.Down):
			v.viewport.SetYOffset(v.viewport.YOffset + 1)
		}
	}
	return v, nil
}

func (v *View) content() string {
	if v.lookupService == nil {
		return v.styles.Error.Render(ErrNoLookupService.Error())
	}

	var sections []string

	guide := v.lookupService.Nutrition()
	if len(guide.DailyNeeds) > 0 {
		lines := []string{v.styles.Title.Render("Daily needs")}
		for _, n := range guide.DailyNeeds {
			line := fmt.Sprintf("  %-20s %s %s", n.Name, n.Amount, n.Unit)
			if n.Category != "" {
				line += " " + v.styles.Muted.Render("("+n.Category+")")
			}
			lines = append(lines, strings.TrimRight(line, " "))
		}
		sections = append(sections, strings.Join(lines, "\n"))
	}
	if len(guide.WeightGain) > 0 {
		lines := []string{v.styles.Title.Render("Weight gain by BMI")}
		for _, w := range guide.WeightGain {
			lines = append(lines, fmt.Sprintf("  %-16s %-12s %s", w.BMICategory, w.BMIRange, w.TotalGain))
		}
		sections = append(sections, strings.Join(lines, "\n"))
	}

	if food := v.lookupService.FoodSafety(); !food.IsEmpty() {
		lines := []string{v.styles.Title.Render("Food safety")}
		if len(food.UnsafeSeafood) > 0 {
			lines = append(lines, v.styles.Subtitle.Render("Unsafe seafood"), "  "+strings.Join(food.UnsafeSeafood, ", "))
		}
		if len(food.Avoid) > 0 {
			lines = append(lines, v.styles.Subtitle.Render("Avoid"))
			for _, a := range food.Avoid {
				line := "  - " + a.Item
				if a.Reason != "" {
					line += ": " + v.styles.Muted.Render(a.Reason)
				}
				lines = append(lines, line)
			}
		}
		sections = append(sections, strings.Join(lines, "\n"))
	}

	if ms := v.lookupService.MorningSickness(); !ms.IsEmpty() {
		lines := []string{v.styles.Title.Render("Morning sickness")}
		lines = appendList(lines, v.styles.Subtitle.Render("Try eating"), ms.Eat)
		lines = appendList(lines, v.styles.Subtitle.Render("Avoid"), ms.Avoid)
		lines = appendList(lines, v.styles.Subtitle.Render("Tips"), ms.Tips)
		sections = append(sections, strings.Join(lines, "\n"))
	}

	if len(sections) == 0 {
		return v.styles.Muted.Render("No nutrition guidance in the knowledge base.")
	}
	return strings.Join(sections, "\n\n")
}

func appendList(lines []string, heading string, items []string) []string {
	if len(items) == 0 {
		return lines
	}
	lines = append(lines, heading)
	for _, item := range items {
		lines = append(lines, "  - "+item)
	}
	return lines
}

// View renders the nutrition view.
func (v *View) View() string {
	return v.viewport.View()
}

// SetDimensions sets the available area.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	if height < 3 {
		height = 3
	}
	v.viewport.Width = width
	v.viewport.Height = height
}

// ScrollOffset returns how far the page is scrolled.
func (v *View) ScrollOffset() int {
	return v.viewport.YOffset
}

// Ready reports whether the view has received its size.
func (v *View) Ready() bool {
	return v.ready
}

// Help returns the keybindings for this view.
func (v *View) Help() []key.Binding {
	return []key.Binding{v.keymap.Up, v.keymap.Down, v.keymap.NextTab, v.keymap.Quit}
}
