// Package tui is an interactive terminal front end for the repository panel.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/stahnma/gh-repopanel/internal/panel"
)

// Panel is the subset of *panel.Panel driven by the terminal UI.
type Panel interface {
	Load(ctx context.Context, handle string) error
	Render() panel.View
	OnFacetChange(value string) (panel.View, error)
	OnSortChange(value string) (panel.View, error)
}

// loadedMsg reports the end of a Load started by the model.
type loadedMsg struct {
	handle string
	err    error
}

// Model is the bubbletea model for the panel.
type Model struct {
	ctx     context.Context
	panel   Panel
	input   textinput.Model
	styles  Styles
	view    panel.View
	initial string
	width   int
}

// New returns a model driving p. When initial is not empty it is loaded on start.
func New(ctx context.Context, p Panel, initial string) Model {
	ti := textinput.New()
	ti.Placeholder = "GitHub username"
	ti.Prompt = "user> "
	ti.CharLimit = 39
	ti.SetValue(initial)
	ti.Focus()

	return Model{
		ctx:     ctx,
		panel:   p,
		input:   ti,
		styles:  DefaultStyles(),
		view:    p.Render(),
		initial: strings.TrimSpace(initial),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if m.initial == "" {
		return textinput.Blink
	}
	return tea.Batch(textinput.Blink, m.load(m.initial))
}

// load runs Load off the UI goroutine.
func (m Model) load(handle string) tea.Cmd {
	ctx, p := m.ctx, m.panel
	return func() tea.Msg {
		return loadedMsg{handle: handle, err: p.Load(ctx, handle)}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case loadedMsg:
		if errors.Is(msg.err, panel.ErrSuperseded) {
			return m, nil
		}
		m.view = m.panel.Render()
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.input.Focused() {
			return m.updateInput(msg)
		}
		return m.updateNavigation(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		handle := m.input.Value()
		m.input.Blur()
		if strings.TrimSpace(handle) != "" {
			m.view.Loading = true
			m.view.Status = panel.StatusLoading
			m.view.Error = ""
		}
		return m, m.load(handle)
	case tea.KeyEsc, tea.KeyTab:
		m.input.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateNavigation(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "/", "i", "tab":
		m.input.Focus()
		return m, textinput.Blink
	case "f", "right":
		m.view = m.selectFacet(1)
	case "F", "left":
		m.view = m.selectFacet(-1)
	case "s":
		m.view = m.selectSort(1)
	case "S":
		m.view = m.selectSort(-1)
	}
	return m, nil
}

func (m Model) selectFacet(step int) panel.View {
	next := cycle(m.view.Options, m.view.Facet, step)
	if next == "" {
		return m.view
	}
	view, err := m.panel.OnFacetChange(next)
	if err != nil {
		return m.panel.Render()
	}
	return view
}

func (m Model) selectSort(step int) panel.View {
	view, err := m.panel.OnSortChange(cycle(panel.SortKeys, m.view.Sort, step))
	if err != nil {
		return m.panel.Render()
	}
	return view
}

// cycle returns the element step positions after current in list, wrapping.
func cycle(list []string, current string, step int) string {
	if len(list) == 0 {
		return ""
	}
	idx := 0
	for i, v := range list {
		if v == current {
			idx = i
			break
		}
	}
	n := len(list)
	return list[((idx+step)%n+n)%n]
}

// View implements tea.Model.
func (m Model) View() string {
	s := m.styles
	var b strings.Builder

	b.WriteString(s.Title.Render("GitHub repositories"))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	b.WriteString(m.selectors())
	b.WriteString("\n")

	if m.view.Status != "" {
		b.WriteString(s.Status.Render(m.view.Status))
		b.WriteString("\n")
	}
	if m.view.Error != "" {
		b.WriteString(s.Error.Render(m.view.Error))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.view.Empty {
		b.WriteString(s.Empty.Render(panel.EmptyIndicator))
		b.WriteString("\n")
	}
	for _, c := range m.view.Cards {
		b.WriteString(m.card(c))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.input.Focused() {
		b.WriteString(s.Help.Render("enter: load • esc: browse • ctrl+c: quit"))
	} else {
		b.WriteString(s.Help.Render("f/F: language • s/S: sort • /: username • q: quit"))
	}
	b.WriteString("\n")
	return b.String()
}

func (m Model) selectors() string {
	s := m.styles
	parts := make([]string, 0, len(m.view.Options))
	for _, opt := range m.view.Options {
		if opt == m.view.Facet {
			parts = append(parts, s.Selected.Render(opt))
		} else {
			parts = append(parts, s.Selector.Render(opt))
		}
	}
	sorts := make([]string, 0, len(panel.SortKeys))
	for _, k := range panel.SortKeys {
		if k == m.view.Sort {
			sorts = append(sorts, s.Selected.Render(k))
		} else {
			sorts = append(sorts, s.Selector.Render(k))
		}
	}
	return fmt.Sprintf("Language: %s\nSort: %s", strings.Join(parts, " "), strings.Join(sorts, " "))
}

func (m Model) card(c panel.Card) string {
	s := m.styles
	badge := s.Badge.Render(c.Visibility)
	if c.Visibility == "Private" {
		badge = s.Private.Render(c.Visibility)
	}
	header := lipgloss.JoinHorizontal(lipgloss.Top, s.CardName.Render(c.Name), " ", badge)
	meta := s.Meta.Render(fmt.Sprintf("%s • ★ %d • Updated %s", c.Language, c.Stars, c.Updated))

	body := lipgloss.JoinVertical(lipgloss.Left, header, c.Description, meta, s.URL.Render(c.URL))
	style := s.Card
	if m.width > 4 {
		style = style.Width(m.width - 4)
	}
	return style.Render(body)
}

// Run starts the interactive UI and blocks until the user quits.
func Run(ctx context.Context, p Panel, initial string, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}, opts...)
	_, err := tea.NewProgram(New(ctx, p, initial), opts...).Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
