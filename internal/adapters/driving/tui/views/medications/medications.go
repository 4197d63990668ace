// Package medications provides the medication safety lookup view for the TUI.
package medications

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/bumpbook/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/bumpbook/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/bumpbook/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/bumpbook/internal/core/domain"
	"github.com/custodia-labs/bumpbook/internal/core/ports/driving"
)

// View filters medications by drug or brand name as the user types.
type View struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	input    *input.Field
	viewport viewport.Model

	lookupService driving.LookupService

	query  string
	count  int
	width  int
	height int
	ready  bool
}

// NewView creates a new medications view.
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
		input:         input.NewField(s, "Medication:", "drug or brand, e.g. tylenol"),
		viewport:      viewport.New(80, 18),
		lookupService: lookupService,
		width:         80,
		height:        24,
	}
	v.refresh()
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the medications view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		v.ready = true
		return v, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, v.keymap.Up):
			v.viewport.SetYOffset(v.viewport.YOffset - 1)
			return v, nil
		case key.Matches(msg, v.keymap.Down):
			v.viewport.SetYOffset(v.viewport.YOffset + 1)
			return v, nil
		}
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	if q := strings.TrimSpace(v.input.Value()); q != v.query {
		v.query = q
		v.refresh()
	}
	return v, cmd
}

func (v *View) refresh() {
	v.viewport.SetContent(v.content())
	v.viewport.GotoTop()
}

func (v *View) content() string {
	if v.lookupService == nil {
		v.count = 0
		return v.styles.Error.Render(ErrNoLookupService.Error())
	}

	if v.query == "" {
		groups := v.lookupService.Medications()
		v.count = 0
		if len(groups) == 0 {
			return v.styles.Muted.Render("No medications in the knowledge base.")
		}
		var b strings.Builder
		for i, g := range groups {
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString(v.styles.Subtitle.Render(g.Condition) + "\n")
			for _, m := range g.Medications {
				b.WriteString(v.medicationLine(m) + "\n")
				v.count++
			}
		}
		return strings.TrimRight(b.String(), "\n")
	}

	matches := v.lookupService.CheckMedicationSafety(v.query)
	v.count = len(matches)
	if len(matches) == 0 {
		return v.styles.Muted.Render(fmt.Sprintf("No medications match %q. Ask your pharmacist before taking it.", v.query))
	}
	lines := make([]string, 0, len(matches)+1)
	lines = append(lines, v.styles.Muted.Render(fmt.Sprintf("%d matches for %q", len(matches), v.query)))
	for _, match := range matches {
		lines = append(lines, v.styles.Subtitle.Render(match.Condition)+"\n"+v.medicationLine(match.Medication))
	}
	return strings.Join(lines, "\n")
}

func (v *View) medicationLine(m domain.Medication) string {
	name := m.Drug
	if m.Brand != "" {
		name = fmt.Sprintf("%s (%s)", m.Drug, m.Brand)
	}
	marker := v.styles.Marker(m.Marker).Render("[" + m.Marker + "]")
	line := fmt.Sprintf("  %s %s: %s", marker, name, v.styles.Marker(m.Marker).Render(m.SafetyLevel))
	if m.Note != "" {
		line += "\n      " + v.styles.Muted.Render(m.Note)
	}
	return line
}

// View renders the medications view.
func (v *View) View() string {
	return lipgloss.JoinVertical(lipgloss.Left, v.input.View(), v.viewport.View())
}

// SetDimensions sets the available area.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.input.SetWidth(width)

	vpHeight := height - 3
	if vpHeight < 3 {
		vpHeight = 3
	}
	v.viewport.Width = width
	v.viewport.Height = vpHeight
}

// Query returns the current filter.
func (v *View) Query() string {
	return v.query
}

// Count returns the number of medications shown.
func (v *View) Count() int {
	return v.count
}

// Ready reports whether the view has received its size.
func (v *View) Ready() bool {
	return v.ready
}

// Help returns the keybindings for this view.
func (v *View) Help() []key.Binding {
	return []key.Binding{v.keymap.Up, v.keymap.Down, v.keymap.NextTab, v.keymap.Quit}
}
