package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case NavigateMsg:
		m.previousScene = m.currentScene
		m.currentScene = msg.Scene
		return m, nil

	case ErrorMsg:
		m.loading = false
		m.err = msg.Err
		return m, nil

	case ProfileLoadedMsg:
		m.profile = msg.Config
		m.loadingMessage = "Searching strategies..."
		return m, m.searchCmd()

	case SearchCompleteMsg:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.err = nil
		m.search = msg.Result
		m.refreshRows()
		return m, nil
	}

	return m, nil
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, key.NewBinding(key.WithKeys("ctrl+c", "q"))):
		return m, tea.Quit

	case key.Matches(msg, key.NewBinding(key.WithKeys("?"))):
		if m.currentScene != SceneHelp {
			return m, navigate(SceneHelp)
		}
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("esc"))):
		if m.currentScene != SceneResults {
			return m, navigate(SceneResults)
		}
		return m, nil
	}

	if m.loading {
		return m, nil
	}

	switch {
	case key.Matches(msg, key.NewBinding(key.WithKeys("r"))):
		if m.profile == nil {
			return m, nil
		}
		m.loading = true
		m.err = nil
		m.loadingMessage = "Searching strategies..."
		return m, tea.Batch(m.spinner.Tick, m.searchCmd())
	}

	if m.currentScene != SceneResults {
		return m, nil
	}

	switch {
	case key.Matches(msg, key.NewBinding(key.WithKeys("tab", "f"))):
		m.filter = m.filter.Next()
		m.refreshRows()
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("enter"))):
		if m.Selected() == nil {
			return m, nil
		}
		return m, navigate(SceneDetail)
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func navigate(scene Scene) tea.Cmd {
	return func() tea.Msg {
		return NavigateMsg{Scene: scene}
	}
}
