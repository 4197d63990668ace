package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/bumpbook/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/bumpbook/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/bumpbook/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/bumpbook/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/bumpbook/internal/adapters/driving/tui/views/chat"
	"github.com/custodia-labs/bumpbook/internal/adapters/driving/tui/views/medications"
	"github.com/custodia-labs/bumpbook/internal/adapters/driving/tui/views/nutrition"
	"github.com/custodia-labs/bumpbook/internal/adapters/driving/tui/views/symptoms"
	"github.com/custodia-labs/bumpbook/internal/adapters/driving/tui/views/timeline"
	"github.com/custodia-labs/bumpbook/internal/core/domain"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	styles    *styles.Styles
	keymap    *keymap.KeyMap
	statusbar *status.Bar

	chatView        *chat.View
	medicationsView *medications.View
	symptomsView    *symptoms.View
	timelineView    *timeline.View
	nutritionView   *nutrition.View

	// activeTab tracks which tab receives key input.
	activeTab messages.TabType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has received its first size.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	a := &App{
		ports:           ports,
		ctx:             context.Background(),
		styles:          s,
		keymap:          km,
		statusbar:       status.NewBar(s, km),
		chatView:        chat.NewView(s, km, ports.Chat),
		medicationsView: medications.NewView(s, km, ports.Lookup),
		symptomsView:    symptoms.NewView(s, km, ports.Lookup),
		timelineView:    timeline.NewView(s, km, ports.Lookup, ports.Preferences),
		nutritionView:   nutrition.NewView(s, km, ports.Lookup),
		activeTab:       messages.TabChat,
	}
	if ports.Index != nil {
		a.statusbar.SetIndexStatus(ports.Index.Status())
	}
	a.statusbar.SetBindings(a.chatView.Help())
	return a, nil
}

// WithContext sets the context for the app and its service calls.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.chatView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
// It sets the title, starts the cursor blinking and builds the index in the background.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("bumpbook"),
		a.chatView.Init(),
		a.buildIndex(),
	)
}

// buildIndex embeds the knowledge sections unless the index is already usable.
// Until it completes, the chat falls back to keyword retrieval.
func (a *App) buildIndex() tea.Cmd {
	index := a.ports.Index
	if index == nil || index.Ready() {
		return nil
	}
	a.statusbar.SetIndexStatus(domain.IndexStatus{
		State:    domain.IndexBuilding,
		Sections: len(index.Sections()),
	})
	ctx := a.ctx
	return func() tea.Msg {
		return messages.IndexStatusUpdated{Status: index.Build(ctx)}
	}
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, a.keymap.Quit):
			return a, tea.Quit
		case key.Matches(msg, a.keymap.NextTab):
			a.switchTab(1)
			return a, nil
		case key.Matches(msg, a.keymap.PrevTab):
			a.switchTab(-1)
			return a, nil
		}
		return a, a.forward(msg)

	case messages.TabChanged:
		a.setTab(msg.Tab)
		return a, nil

	case messages.ReplyReceived:
		var cmd tea.Cmd
		a.chatView, cmd = a.chatView.Update(msg)
		a.setError(msg.Err)
		return a, cmd

	case messages.ConversationReset:
		var cmd tea.Cmd
		a.chatView, cmd = a.chatView.Update(msg)
		a.setError(msg.Err)
		if msg.Err == nil {
			a.statusbar.SetMessage("New conversation")
		}
		return a, cmd

	case messages.IndexStatusUpdated:
		a.statusbar.SetIndexStatus(msg.Status)
		return a, nil

	case messages.ErrorOccurred:
		a.setError(msg.Err)
		return a, nil
	}

	return a, a.forward(msg)
}

// forward passes msg to the active tab.
func (a *App) forward(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.activeTab {
	case messages.TabChat:
		a.chatView, cmd = a.chatView.Update(msg)
		if a.chatView.Thinking() {
			a.statusbar.SetState(status.StateThinking)
		}
	case messages.TabMedications:
		a.medicationsView, cmd = a.medicationsView.Update(msg)
	case messages.TabSymptoms:
		a.symptomsView, cmd = a.symptomsView.Update(msg)
	case messages.TabTimeline:
		a.timelineView, cmd = a.timelineView.Update(msg)
	case messages.TabNutrition:
		a.nutritionView, cmd = a.nutritionView.Update(msg)
	}
	return cmd
}

func (a *App) setError(err error) {
	a.err = err
	if err != nil {
		a.statusbar.SetState(status.StateError)
		a.statusbar.SetMessage(err.Error())
		return
	}
	a.statusbar.Clear()
}

func (a *App) switchTab(delta int) {
	tabs := messages.AllTabs()
	next := (int(a.activeTab) + delta + len(tabs)) % len(tabs)
	a.setTab(tabs[next])
}

func (a *App) setTab(tab messages.TabType) {
	a.activeTab = tab
	a.statusbar.SetBindings(a.help())
	if a.statusbar.State() == status.StateReady {
		a.statusbar.SetMessage("")
	}
}

func (a *App) help() []key.Binding {
	switch a.activeTab {
	case messages.TabChat:
		return a.chatView.Help()
	case messages.TabMedications:
		return a.medicationsView.Help()
	case messages.TabSymptoms:
		return a.symptomsView.Help()
	case messages.TabTimeline:
		return a.timelineView.Help()
	case messages.TabNutrition:
		return a.nutritionView.Help()
	default:
		return a.keymap.ShortHelp()
	}
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var body string
	switch a.activeTab {
	case messages.TabChat:
		body = a.chatView.View()
	case messages.TabMedications:
		body = a.medicationsView.View()
	case messages.TabSymptoms:
		body = a.symptomsView.View()
	case messages.TabTimeline:
		body = a.timelineView.View()
	case messages.TabNutrition:
		body = a.nutritionView.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		a.renderTabs(),
		body,
		a.statusbar.View(),
	)
}

func (a *App) renderTabs() string {
	tabs := messages.AllTabs()
	rendered := make([]string, len(tabs))
	for i, t := range tabs {
		if t == a.activeTab {
			rendered[i] = a.styles.ActiveTab.Render(t.String())
		} else {
			rendered[i] = a.styles.Tab.Render(t.String())
		}
	}
	return strings.Join(rendered, "")
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// ActiveTab returns the active tab.
func (a *App) ActiveTab() messages.TabType {
	return a.activeTab
}

// IndexStatus returns the index state shown in the status bar.
func (a *App) IndexStatus() domain.IndexStatus {
	return a.statusbar.IndexStatus()
}

// StatusState returns the status bar state.
func (a *App) StatusState() status.State {
	return a.statusbar.State()
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sizes the app and every tab. The tab bar and status bar take one line each.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true

	body := height - 2
	a.statusbar.SetWidth(width)
	a.chatView.SetDimensions(width, body)
	a.medicationsView.SetDimensions(width, body)
	a.symptomsView.SetDimensions(width, body)
	a.timelineView.SetDimensions(width, body)
	a.nutritionView.SetDimensions(width, body)
}
