package core

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case StatusMsg:
		m.status = msg.Text
		m.statusErr = msg.IsErr
		return m, nil
	case PushScreenMsg:
		m.screens.Push(msg.Screen)
		return m, nil
	case PopScreenMsg:
		m.screens.Pop()
		return m, nil
	case CommandExecuteMsg:
		return m, m.commands.Execute(msg.CommandID, &m)
	case TabSwitchMsg:
		m.SwitchTab(msg.Index)
		return m, nil
	case JumpTargetSelectedMsg:
		if len(m.tabs) == 0 {
			return m, nil
		}
		provider, ok := m.tabs[m.activeTab].(JumpTargetProvider)
		if !ok {
			return m, nil
		}
		_, cmd := provider.JumpToTarget(&m, msg.Key)
		return m, cmd
	case tea.KeyMsg:
		return m.updateKey(msg)
	}

	// Async results reach every tab so a pane updates even when it is not
	// on screen.
	cmds := make([]tea.Cmd, 0, len(m.tabs)+1)
	if top := m.screens.Top(); top != nil {
		cmds = append(cmds, m.updateTopScreen(msg))
	}
	for _, t := range m.tabs {
		cmds = append(cmds, t.Update(&m, msg))
	}
	return m, tea.Batch(cmds...)
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}
	if m.screens.Top() != nil {
		return m, m.updateTopScreen(msg)
	}

	scope := m.ActiveScope()
	// Printable keys belong to a focused text input.
	globals := !(m.capturingInput() && isTextKey(msg))

	if globals && m.keys.IsAction(msg, "quit", scope) {
		m.quitting = true
		return m, tea.Quit
	}
	if globals && m.keys.IsAction(msg, "jump", scope) {
		return m, m.activateJumpPicker()
	}
	if len(m.tabs) > 0 {
		if handler, ok := m.tabs[m.activeTab].(PaneKeyHandler); ok {
			if handled, cmd := handler.HandlePaneKey(&m, msg); handled {
				return m, cmd
			}
		}
	}
	if globals {
		if m.keys.IsAction(msg, "open-command-palette", scope) && m.OpenCommandModal != nil {
			m.screens.Push(m.OpenCommandModal(&m, scope))
			return m, nil
		}
		for i := range m.tabs {
			if m.keys.IsAction(msg, fmt.Sprintf("switch-tab-%d", i+1), scope) {
				m.SwitchTab(i)
				return m, nil
			}
		}
	}
	if len(m.tabs) > 0 {
		return m, m.tabs[m.activeTab].Update(&m, msg)
	}
	return m, nil
}

func (m *Model) updateTopScreen(msg tea.Msg) tea.Cmd {
	top := m.screens.Top()
	if top == nil {
		return nil
	}
	next, cmd, pop := top.Update(msg)
	if pop {
		m.screens.Pop()
		return cmd
	}
	if next != nil {
		m.screens.Replace(next)
	}
	return cmd
}

func (m *Model) activateJumpPicker() tea.Cmd {
	if len(m.tabs) == 0 {
		return nil
	}
	provider, ok := m.tabs[m.activeTab].(JumpTargetProvider)
	if !ok {
		return StatusCmd("No jump targets on this tab")
	}
	targets := provider.JumpTargets()
	if len(targets) == 0 {
		return StatusCmd("No jump targets on this tab")
	}
	m.screens.Push(NewJumpScreen(targets))
	return nil
}

func isTextKey(msg tea.KeyMsg) bool {
	return msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace
}
