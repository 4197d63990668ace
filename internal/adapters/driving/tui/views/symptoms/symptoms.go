// Package symptoms provides the symptom lookup view for the TUI.
package symptoms

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

// View looks up symptoms by sign. With no filter it lists the emergency symptoms.
type View struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	input    *input.Field
	viewport viewport.Model

	lookupService driving.LookupService

	query   string
	matches []domain.SymptomMatch
	width   int
	height  int
	ready   bool
}

// NewView creates a new symptoms view.
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
		input:         input.NewField(s, "Symptom:", "e.g. bleeding, headache"),
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

// Update handles messages for the symptoms view.
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
	v.matches = nil
	if v.lookupService != nil {
		if v.query == "" {
			v.matches = v.lookupService.EmergencySymptoms()
		} else {
			v.matches = v.lookupService.LookupSymptom(v.query)
		}
	}
	v.viewport.SetContent(v.content())
	v.viewport.GotoTop()
}

func (v *View) content() string {
	if v.lookupService == nil {
		return v.styles.Error.Render(ErrNoLookupService.Error())
	}

	var header string
	switch {
	case v.query == "" && len(v.matches) == 0:
		return v.styles.Muted.Render("Type a symptom to look it up.")
	case v.query == "":
		header = v.styles.Error.Render("Seek medical help right away for any of these:")
	case len(v.matches) == 0:
		return v.styles.Muted.Render(
			fmt.Sprintf("No symptoms match %q. If you are worried, contact your midwife or doctor.", v.query))
	default:
		header = v.styles.Muted.Render(fmt.Sprintf("%d matches for %q", len(v.matches), v.query))
	}

	blocks := []string{header}
	for _, m := range v.matches {
		blocks = append(blocks, v.symptomBlock(m))
	}
	return strings.Join(blocks, "\n\n")
}

func (v *View) symptomBlock(m domain.SymptomMatch) string {
	sev := v.styles.Severity(m.Symptom.Severity).Render("[" + m.Symptom.Severity.String() + "]")
	lines := []string{
		fmt.Sprintf("%s %s %s", v.styles.Subtitle.Render(m.Category+":"), m.Symptom.Sign, sev),
	}
	if m.Symptom.Urgency != "" {
		lines = append(lines, "  Urgency: "+m.Symptom.Urgency)
	}
	if m.Symptom.Action != "" {
		lines = append(lines, "  Action:  "+m.Symptom.Action)
	}
	return strings.Join(lines, "\n")
}

// View renders the symptoms view.
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

// Matches returns the symptoms shown.
func (v *View) Matches() []domain.SymptomMatch {
	return v.matches
}

// Ready reports whether the view has received its size.
func (v *View) Ready() bool {
	return v.ready
}

// Help returns the keybindings for this view.
func (v *View) Help() []key.Binding {
	return []key.Binding{v.keymap.Up, v.keymap.Down, v.keymap.NextTab, v.keymap.Quit}
}
