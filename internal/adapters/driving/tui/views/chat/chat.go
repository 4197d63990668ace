// Package chat provides the assistant conversation view for the TUI.
package chat

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/bumpbook/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/bumpbook/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/bumpbook/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/bumpbook/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/bumpbook/internal/core/domain"
	"github.com/custodia-labs/bumpbook/internal/core/ports/driving"
)

// RenderFunc turns assistant markdown into terminal output of the given width.
type RenderFunc func(markdown string, width int) string

// View shows the conversation above a question input.
type View struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	input    *input.Field
	viewport viewport.Model
	render   RenderFunc

	chatService driving.ChatService
	ctx         context.Context

	history  []domain.ChatMessage
	thinking bool
	err      error

	width  int
	height int
	ready  bool
}

// NewView creates a new chat view.
func NewView(s *styles.Styles, km *keymap.KeyMap, chatService driving.ChatService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	v := &View{
		styles:      s,
		keymap:      km,
		input:       input.NewField(s, "Ask:", "Is acetaminophen safe during pregnancy?"),
		viewport:    viewport.New(80, 18),
		render:      GlamourRenderer,
		chatService: chatService,
		ctx:         context.Background(),
		width:       80,
		height:      24,
	}
	v.refresh()
	return v
}

// WithContext sets the context for service calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// WithRenderer replaces the markdown renderer.
func (v *View) WithRenderer(render RenderFunc) *View {
	if render != nil {
		v.render = render
		v.refresh()
	}
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the chat view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		v.ready = true
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.ReplyReceived:
		v.thinking = false
		if msg.Err != nil {
			v.err = msg.Err
		} else {
			v.err = nil
			v.history = append(v.history, msg.Message)
		}
		v.refresh()
		return v, nil

	case messages.ConversationReset:
		v.err = msg.Err
		if msg.Err == nil {
			v.history = nil
		}
		v.refresh()
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keymap.Submit):
		return v, v.submit()
	case key.Matches(msg, v.keymap.Reset):
		return v, v.reset()
	case key.Matches(msg, v.keymap.Up):
		v.viewport.SetYOffset(v.viewport.YOffset - 1)
		return v, nil
	case key.Matches(msg, v.keymap.Down):
		v.viewport.SetYOffset(v.viewport.YOffset + 1)
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// submit echoes the question locally and asks in the background.
// Only one question is in flight at a time.
func (v *View) submit() tea.Cmd {
	question := strings.TrimSpace(v.input.Value())
	if question == "" || v.thinking {
		return nil
	}
	v.input.Reset()
	v.history = append(v.history, domain.NewUserMessage(question))
	v.thinking = true
	v.err = nil
	v.refresh()

	chatService := v.chatService
	ctx := v.ctx
	return func() tea.Msg {
		if chatService == nil {
			return messages.ReplyReceived{Err: ErrNoChatService}
		}
		reply, err := chatService.Ask(ctx, question)
		return messages.ReplyReceived{Message: reply, Err: err}
	}
}

func (v *View) reset() tea.Cmd {
	if v.thinking {
		return nil
	}
	chatService := v.chatService
	ctx := v.ctx
	return func() tea.Msg {
		if chatService == nil {
			return messages.ConversationReset{}
		}
		return messages.ConversationReset{Err: chatService.Reset(ctx)}
	}
}

// refresh re-renders the transcript into the viewport and scrolls to the end.
func (v *View) refresh() {
	v.viewport.SetContent(v.transcript())
	v.viewport.GotoBottom()
}

func (v *View) transcript() string {
	if len(v.history) == 0 {
		return v.styles.Muted.Render(
			"Ask anything about pregnancy. Answers use the knowledge base when it has something relevant.")
	}

	wrap := v.width - 4
	if wrap < 20 {
		wrap = 20
	}

	blocks := make([]string, 0, len(v.history)+1)
	for _, m := range v.history {
		if m.Role == domain.RoleUser {
			blocks = append(blocks, v.styles.Subtitle.Render("You")+"\n"+m.Text)
			continue
		}
		label := v.styles.Provenance(m.Provenance).Render("[" + m.Provenance.Label() + "]")
		body := strings.TrimRight(v.render(m.Text, wrap), "\n")
		blocks = append(blocks, v.styles.Title.Render("bumpbook")+" "+label+"\n"+body)
	}
	if v.thinking {
		blocks = append(blocks, v.styles.Muted.Render("Thinking..."))
	}
	return strings.Join(blocks, "\n\n")
}

// View renders the chat view.
func (v *View) View() string {
	parts := []string{v.viewport.View()}
	if v.err != nil {
		parts = append(parts, v.styles.Error.Render("Error: "+v.err.Error()))
	}
	parts = append(parts, v.input.View())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
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
	v.refresh()
}

// Thinking reports whether a question is awaiting a reply.
func (v *View) Thinking() bool {
	return v.thinking
}

// History returns the messages shown in the transcript.
func (v *View) History() []domain.ChatMessage {
	return v.history
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}

// Input returns the question input.
func (v *View) Input() *input.Field {
	return v.input
}

// Ready reports whether the view has received its size.
func (v *View) Ready() bool {
	return v.ready
}

// Help returns the keybindings for this view.
func (v *View) Help() []key.Binding {
	return v.keymap.ChatHelp()
}

// GlamourRenderer renders markdown with glamour's dark style, falling back to the raw text.
func GlamourRenderer(markdown string, width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return markdown
	}
	out, err := r.Render(markdown)
	if err != nil {
		return markdown
	}
	return out
}
