// Package timeline provides the week-by-week pregnancy timeline view for the TUI.
package timeline

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/bumpbook/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/bumpbook/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/bumpbook/internal/core/domain"
	"github.com/custodia-labs/bumpbook/internal/core/ports/driving"
)

// View steps through the weeks of pregnancy. It opens on the current week
// when a due date is set.
type View struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	viewport viewport.Model

	lookupService      driving.LookupService
	preferencesService driving.PreferencesService
	now                func() time.Time

	week       int
	current    int
	hasCurrent bool
	err        error

	width  int
	height int
	ready  bool
}

// NewView creates a new timeline view.
// The preferences service is optional (can be nil); without it the view opens on week 1.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	lookupService driving.LookupService,
	preferencesService driving.PreferencesService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	v := &View{
		styles:             s,
		keymap:             km,
		viewport:           viewport.New(80, 20),
		lookupService:      lookupService,
		preferencesService: preferencesService,
		now:                time.Now,
		week:               1,
		width:              80,
		height:             24,
	}
	v.loadCurrentWeek()
	if v.hasCurrent {
		v.week = v.current
	}
	v.refresh()
	return v
}

// WithClock replaces the clock used to compute the current week.
func (v *View) WithClock(now func() time.Time) *View {
	v.now = now
	v.loadCurrentWeek()
	if v.hasCurrent {
		v.week = v.current
	}
	v.refresh()
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the timeline view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		v.ready = true

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, v.keymap.Up):
			v.SetWeek(v.week - 1)
		case key.Matches(msg, v.keymap.Down):
			v.SetWeek(v.week + 1)
		case key.Matches(msg, v.keymap.Today):
			v.loadCurrentWeek()
			if v.hasCurrent {
				v.SetWeek(v.current)
			} else {
				v.refresh()
			}
		}
	}
	return v, nil
}

func (v *View) loadCurrentWeek() {
	v.hasCurrent = false
	v.err = nil
	if v.preferencesService == nil {
		return
	}
	week, ok, err := v.preferencesService.CurrentWeek(v.now())
	if err != nil {
		v.err = err
		return
	}
	v.current = week
	v.hasCurrent = ok
}

// SetWeek moves to week, clamped to the gestational range.
func (v *View) SetWeek(week int) {
	if week < 1 {
		week = 1
	}
	if week > domain.MaxGestationalWeek {
		week = domain.MaxGestationalWeek
	}
	v.week = week
	v.refresh()
}

func (v *View) refresh() {
	v.viewport.SetContent(v.content())
	v.viewport.GotoTop()
}

func (v *View) content() string {
	header := v.styles.Title.Render(fmt.Sprintf("Week %d", v.week))
	switch {
	case v.hasCurrent && v.week == v.current:
		header += " " + v.styles.Success.Render("(this week)")
	case v.hasCurrent:
		header += " " + v.styles.Muted.Render(fmt.Sprintf("(you are in week %d)", v.current))
	}

	blocks := []string{header}
	if v.err != nil {
		blocks = append(blocks, v.styles.Error.Render("Could not read due date: "+v.err.Error()))
	} else if !v.hasCurrent && v.preferencesService != nil {
		blocks = append(blocks, v.styles.Muted.Render("Set your due date with 'bumpbook due-date set YYYY-MM-DD'."))
	}

	if v.lookupService == nil {
		return strings.Join(append(blocks, v.styles.Error.Render(ErrNoLookupService.Error())), "\n\n")
	}

	entries := v.lookupService.WeekInfo(v.week)
	if len(entries) == 0 {
		blocks = append(blocks, v.styles.Muted.Render("Nothing in the knowledge base for this week."))
	}
	for _, e := range entries {
		blocks = append(blocks, v.entryBlock(e))
	}
	return strings.Join(blocks, "\n\n")
}

func (v *View) entryBlock(e domain.TimelineEntry) string {
	title := fmt.Sprintf("Weeks %s", e.Weeks)
	if e.Trimester != "" {
		title += fmt.Sprintf(" (%s trimester)", e.Trimester)
	}
	if e.Title != "" {
		title += ": " + e.Title
	}
	lines := []string{v.styles.Subtitle.Render(title)}

	for _, s := range e.Symptoms {
		line := "  - " + s.Symptom
		if s.Status != "" {
			line += " " + v.styles.Muted.Render("("+s.Status+")")
		}
		lines = append(lines, line)
	}

	if ex := e.Exercise; ex != nil {
		lines = append(lines, "", v.styles.Success.Render("Exercise: "+ex.Name))
		if ex.Benefits != "" {
			lines = append(lines, "  "+ex.Benefits)
		}
		for i, step := range ex.Steps {
			lines = append(lines, fmt.Sprintf("  %d. %s", i+1, step))
		}
	}
	return strings.Join(lines, "\n")
}

// View renders the timeline view.
func (v *View) View() string {
	return lipgloss.JoinVertical(lipgloss.Left, v.viewport.View())
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

// Week returns the week shown.
func (v *View) Week() int {
	return v.week
}

// CurrentWeek returns the gestational week today, if a due date is set.
func (v *View) CurrentWeek() (int, bool) {
	return v.current, v.hasCurrent
}

// Err returns the last preferences error.
func (v *View) Err() error {
	return v.err
}

// Ready reports whether the view has received its size.
func (v *View) Ready() bool {
	return v.ready
}

// Help returns the keybindings for this view.
func (v *View) Help() []key.Binding {
	return v.keymap.TimelineHelp()
}
