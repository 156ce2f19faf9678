// Package tui shows the rating prompt in a terminal.
package tui

import (
	"context"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ryhazerus/appirater"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))
	messageStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Width(60)
	buttonStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("238"))
	focusedButtonStyle = buttonStyle.
				Foreground(lipgloss.Color("229")).
				Background(lipgloss.Color("62"))
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2)
	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// buttons in display order.
var buttons = []appirater.Response{appirater.Rate, appirater.RemindLater, appirater.Decline}

// Model is the bubbletea model of the rating prompt.
type Model struct {
	prompt   appirater.Prompt
	focus    int
	response appirater.Response
	done     bool
}

// NewModel creates a prompt model with the rate button focused.
func NewModel(p appirater.Prompt) Model {
	return Model{prompt: p}
}

// Response returns the user's answer. It is Dismissed until a button has
// been chosen.
func (m Model) Response() appirater.Response {
	return m.response
}

// Done reports whether the prompt has been answered or closed.
func (m Model) Done() bool {
	return m.done
}

// Focused returns the response of the focused button.
func (m Model) Focused() appirater.Response {
	return buttons[m.focus]
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || m.done {
		return m, nil
	}

	switch key.String() {
	case "esc", "q", "ctrl+c":
		return m.finish(appirater.Dismissed)
	case "left", "h", "shift+tab":
		m.focus = (m.focus + len(buttons) - 1) % len(buttons)
	case "right", "l", "tab":
		m.focus = (m.focus + 1) % len(buttons)
	case "enter", " ":
		return m.finish(buttons[m.focus])
	case "1", "2", "3":
		return m.finish(buttons[int(key.Runes[0]-'1')])
	}
	return m, nil
}

func (m Model) finish(r appirater.Response) (tea.Model, tea.Cmd) {
	m.response = r
	m.done = true
	return m, tea.Quit
}

func (m Model) View() string {
	if m.done {
		return ""
	}

	labels := []string{m.prompt.RateButton, m.prompt.LaterButton, m.prompt.DeclineButton}
	rendered := make([]string, len(labels))
	for i, label := range labels {
		style := buttonStyle
		if i == m.focus {
			style = focusedButtonStyle
		}
		rendered[i] = style.Render(label)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.prompt.Title))
	b.WriteString("\n\n")
	b.WriteString(messageStyle.Render(m.prompt.Message))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, rendered[0], " ", rendered[1], " ", rendered[2]))
	b.WriteString("\n\n")
	b.WriteString(hintStyle.Render("←/→ move • enter choose • esc close"))

	return boxStyle.Render(b.String()) + "\n"
}

// Presenter shows the prompt as an inline bubbletea program.
type Presenter struct {
	in  io.Reader
	out io.Writer
}

var _ appirater.Presenter = (*Presenter)(nil)

// NewPresenter creates a Presenter reading keys from in and drawing to out.
func NewPresenter(in io.Reader, out io.Writer) *Presenter {
	return &Presenter{in: in, out: out}
}

// Present runs the prompt until the user answers or closes it. A cancelled
// context closes the prompt and counts as Dismissed.
func (p *Presenter) Present(ctx context.Context, prompt appirater.Prompt) (appirater.Response, error) {
	prog := tea.NewProgram(NewModel(prompt),
		tea.WithContext(ctx),
		tea.WithInput(p.in),
		tea.WithOutput(p.out),
	)

	final, err := prog.Run()
	if err != nil {
		if ctx.Err() != nil {
			return appirater.Dismissed, nil
		}
		return appirater.Dismissed, fmt.Errorf("run prompt: %w", err)
	}

	m, ok := final.(Model)
	if !ok {
		return appirater.Dismissed, fmt.Errorf("run prompt: unexpected model %T", final)
	}
	return m.Response(), nil
}
