package screens

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/soldash/core"
	"github.com/jask/soldash/core/widgets"
)

type CommandOption struct {
	ID       string
	Name     string
	Desc     string
	Disabled bool
	Reason   string
}

func (i CommandOption) Title() string {
	if i.Disabled && i.Reason != "" {
		return fmt.Sprintf("%s (%s)", i.Name, i.Reason)
	}
	return i.Name
}
func (i CommandOption) Description() string { return i.Desc }
func (i CommandOption) FilterValue() string { return i.Name + " " + i.Desc + " " + i.ID }

// CommandScreen is the ctrl+k palette. Typing narrows the list; the select
// action runs the highlighted command.
type CommandScreen struct {
	scope    string
	keys     *core.KeyRegistry
	search   func(query string) []CommandOption
	onSelect func(id string) tea.Msg
	input    textinput.Model
	list     list.Model
}

func NewCommandScreen(scope string, keys *core.KeyRegistry, search func(query string) []CommandOption, onSelect func(id string) tea.Msg) *CommandScreen {
	inp := textinput.New()
	inp.Placeholder = "Search commands"
	inp.Prompt = "cmd> "
	inp.Focus()
	lst := list.New(nil, list.NewDefaultDelegate(), 64, 14)
	lst.SetShowStatusBar(false)
	lst.SetFilteringEnabled(false)
	lst.SetShowHelp(false)
	lst.SetShowTitle(false)
	lst.DisableQuitKeybindings()
	if keys == nil {
		keys = core.NewKeyRegistry(core.DefaultKeyBindings())
	}
	s := &CommandScreen{scope: scope, keys: keys, search: search, onSelect: onSelect, input: inp, list: lst}
	s.refresh()
	return s
}

// OpenCommandPalette builds a palette over the model's command registry.
// It fits core.Model.OpenCommandModal.
func OpenCommandPalette(m *core.Model, scope string) core.Screen {
	reg := m.CommandRegistry()
	search := func(query string) []CommandOption {
		results := reg.Search(query, scope, m)
		out := make([]CommandOption, 0, len(results))
		for _, r := range results {
			out = append(out, CommandOption{ID: r.CommandID, Name: r.Name, Desc: r.Desc, Disabled: r.Disabled, Reason: r.Reason})
		}
		return out
	}
	onSelect := func(id string) tea.Msg { return core.CommandExecuteMsg{CommandID: id} }
	return NewCommandScreen(scope, m.Keys(), search, onSelect)
}

func (s *CommandScreen) Title() string { return "Command Palette" }
func (s *CommandScreen) Scope() string { return core.ScopeCommand }

func (s *CommandScreen) Update(msg tea.Msg) (core.Screen, tea.Cmd, bool) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch {
		case s.keys.IsAction(key, "close", core.ScopeCommand):
			return s, nil, true
		case s.keys.IsAction(key, "select", core.ScopeCommand):
			it, ok := s.list.SelectedItem().(CommandOption)
			if !ok {
				return s, core.StatusCmd("No matching command"), true
			}
			if it.Disabled {
				return s, core.StatusCmd(it.Reason), true
			}
			if s.onSelect != nil {
				return s, func() tea.Msg { return s.onSelect(it.ID) }, true
			}
			return s, nil, true
		}
	}
	var cmd1 tea.Cmd
	s.input, cmd1 = s.input.Update(msg)
	s.refresh()
	// Letters belong to the query; the list only sees navigation keys.
	if key, ok := msg.(tea.KeyMsg); ok && (key.Type == tea.KeyRunes || key.Type == tea.KeySpace) {
		return s, cmd1, false
	}
	var cmd2 tea.Cmd
	s.list, cmd2 = s.list.Update(msg)
	return s, tea.Batch(cmd1, cmd2), false
}

// Query returns the current search text.
func (s *CommandScreen) Query() string { return s.input.Value() }

// Options returns the commands currently listed.
func (s *CommandScreen) Options() []CommandOption {
	items := s.list.Items()
	out := make([]CommandOption, 0, len(items))
	for _, it := range items {
		if opt, ok := it.(CommandOption); ok {
			out = append(out, opt)
		}
	}
	return out
}

func (s *CommandScreen) refresh() {
	if s.search == nil {
		return
	}
	query := strings.TrimSpace(s.input.Value())
	items := s.search(query)
	ls := make([]list.Item, 0, len(items))
	for _, it := range items {
		ls = append(ls, it)
	}
	_ = s.list.SetItems(ls)
	s.list.Select(0)
}

func (s *CommandScreen) View(width, height int) string {
	inner := max(20, width-4)
	s.list.SetWidth(inner)
	s.list.SetHeight(max(6, height-6))
	body := s.input.View() + "\n" + s.list.View()
	return widgets.Pane{Title: "Commands", Height: height, Content: body, Hint: "esc close · enter run", Focused: true}.Render(width, height)
}
