package core

import (
	"fmt"
	"strings"
	"unicode"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/soldash/core/widgets"
)

type Pane interface {
	ID() string
	Title() string
	Scope() string
	JumpKey() byte
	Focusable() bool
	Init() tea.Cmd
	Update(msg tea.Msg) tea.Cmd
	View(width, height int, selected, focused bool) string
	OnSelect() tea.Cmd
	OnDeselect() tea.Cmd
	OnFocus() tea.Cmd
	OnBlur() tea.Cmd
}

// BasePane carries pane metadata and no-op hooks. Concrete panes embed it.
type BasePane struct {
	PaneID    string
	PaneTitle string
	PaneScope string
	Jump      byte
	Focus     bool
}

func BasePaneFrom(spec PaneSpec) BasePane {
	return BasePane{PaneID: spec.ID, PaneTitle: spec.Title, PaneScope: spec.Scope, Jump: spec.JumpKey, Focus: spec.Focusable}
}

func (p BasePane) ID() string          { return p.PaneID }
func (p BasePane) Title() string       { return p.PaneTitle }
func (p BasePane) Scope() string       { return p.PaneScope }
func (p BasePane) JumpKey() byte       { return p.Jump }
func (p BasePane) Focusable() bool     { return p.Focus }
func (p BasePane) Init() tea.Cmd       { return nil }
func (p BasePane) OnSelect() tea.Cmd   { return nil }
func (p BasePane) OnDeselect() tea.Cmd { return nil }
func (p BasePane) OnFocus() tea.Cmd    { return nil }
func (p BasePane) OnBlur() tea.Cmd     { return nil }

type StaticPane struct {
	BasePane
	text   string
	height int
}

func NewStaticPane(id, title, scope string, jumpKey byte, focusable bool, text string, height int) *StaticPane {
	return &StaticPane{
		BasePane: BasePane{PaneID: id, PaneTitle: title, PaneScope: scope, Jump: jumpKey, Focus: focusable},
		text:     text,
		height:   height,
	}
}

func (p *StaticPane) Update(tea.Msg) tea.Cmd { return nil }
func (p *StaticPane) View(width, height int, selected, focused bool) string {
	return widgets.Pane{Title: p.PaneTitle, Height: p.height, Content: p.text, Selected: selected, Focused: focused}.Render(width, height)
}

type PaneHost struct {
	panes    []Pane
	selected int
	focused  int
}

func NewPaneHost(panes ...Pane) PaneHost {
	seen := make(map[byte]string, len(panes))
	for _, pane := range panes {
		if pane == nil {
			continue
		}
		key := normalizePaneJumpKey(pane.JumpKey())
		if key == 0 {
			panic(fmt.Sprintf("pane %q must declare a single alphanumeric jump key", pane.ID()))
		}
		if other, exists := seen[key]; exists {
			panic(fmt.Sprintf("duplicate jump key %q across panes %q and %q", string(key), other, pane.ID()))
		}
		seen[key] = pane.ID()
	}
	return PaneHost{panes: panes, selected: 0, focused: -1}
}

func (h *PaneHost) Init() tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(h.panes))
	for _, p := range h.panes {
		if p == nil {
			continue
		}
		if cmd := p.Init(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

func (h *PaneHost) activeIndex() int {
	if h.focused >= 0 && h.focused < len(h.panes) {
		return h.focused
	}
	if h.selected >= 0 && h.selected < len(h.panes) {
		return h.selected
	}
	return -1
}

func (h *PaneHost) Scope() string {
	if idx := h.activeIndex(); idx >= 0 {
		return h.panes[idx].Scope()
	}
	return ""
}

func (h *PaneHost) ActivePaneTitle() string {
	if idx := h.activeIndex(); idx >= 0 {
		return h.panes[idx].Title()
	}
	return ""
}

// Pane returns the pane with id, or nil.
func (h *PaneHost) Pane(id string) Pane {
	for _, p := range h.panes {
		if p != nil && p.ID() == id {
			return p
		}
	}
	return nil
}

// CapturingInput reports whether the focused pane holds a text cursor.
func (h *PaneHost) CapturingInput() bool {
	if h.focused < 0 || h.focused >= len(h.panes) {
		return false
	}
	c, ok := h.panes[h.focused].(InputCapturer)
	return ok && c.CapturingInput()
}

// Update sends keys to the active pane and every other message to all panes.
// A key bound to an action in the active pane's scope arrives as ActionMsg.
func (h *PaneHost) Update(m *Model, msg tea.Msg) tea.Cmd {
	key, isKey := msg.(tea.KeyMsg)
	if !isKey {
		cmds := make([]tea.Cmd, 0, len(h.panes))
		for _, p := range h.panes {
			if p != nil {
				cmds = append(cmds, p.Update(msg))
			}
		}
		return tea.Batch(cmds...)
	}
	idx := h.activeIndex()
	if idx < 0 {
		return nil
	}
	pane := h.panes[idx]
	if m != nil && m.keys != nil {
		if action, ok := m.keys.ScopedAction(key, pane.Scope()); ok {
			return pane.Update(ActionMsg{Action: action, Key: key})
		}
	}
	return pane.Update(key)
}

func (h *PaneHost) HandlePaneKey(m *Model, msg tea.KeyMsg) (bool, tea.Cmd) {
	if len(h.panes) == 0 {
		return false, nil
	}
	if h.focused >= 0 && h.focused < len(h.panes) {
		if msg.String() == "esc" {
			return true, h.unfocus(m)
		}
		return false, nil
	}
	switch msg.String() {
	case "left", "up", "right", "down":
		if h.ownsKey(m, msg) {
			return false, nil
		}
		if msg.String() == "left" || msg.String() == "up" {
			return true, h.move(m, -1)
		}
		return true, h.move(m, 1)
	case "enter":
		if !h.panes[h.selected].Focusable() {
			return false, nil
		}
		return true, h.focusSelected(m)
	default:
		return false, nil
	}
}

// ownsKey reports whether the selected pane binds msg itself.
func (h *PaneHost) ownsKey(m *Model, msg tea.KeyMsg) bool {
	if m == nil || m.keys == nil || h.selected < 0 || h.selected >= len(h.panes) {
		return false
	}
	_, ok := m.keys.ScopedAction(msg, h.panes[h.selected].Scope())
	return ok
}

func (h *PaneHost) move(m *Model, delta int) tea.Cmd {
	if len(h.panes) <= 1 {
		return nil
	}
	prev := h.selected
	h.selected = (h.selected + delta + len(h.panes)) % len(h.panes)
	if prev == h.selected {
		return nil
	}
	h.focused = -1
	m.SetStatus("Selected pane: " + h.panes[h.selected].Title())
	return tea.Batch(h.panes[prev].OnDeselect(), h.panes[h.selected].OnSelect())
}

func (h *PaneHost) focusSelected(m *Model) tea.Cmd {
	if h.selected < 0 || h.selected >= len(h.panes) {
		return nil
	}
	h.focused = h.selected
	m.SetStatus("Focused pane: " + h.panes[h.focused].Title())
	return h.panes[h.focused].OnFocus()
}

func (h *PaneHost) unfocus(m *Model) tea.Cmd {
	if h.focused < 0 || h.focused >= len(h.panes) {
		return nil
	}
	idx := h.focused
	h.focused = -1
	m.SetStatus("Pane unfocused: " + h.panes[idx].Title())
	return h.panes[idx].OnBlur()
}

type paneWidget struct {
	pane     Pane
	selected bool
	focused  bool
}

func (w paneWidget) Render(width, height int) string {
	return w.pane.View(width, height, w.selected, w.focused)
}

func (h *PaneHost) BuildPane(id string, m *Model) widgets.Widget {
	_ = m
	for idx, p := range h.panes {
		if p.ID() == id {
			return paneWidget{pane: p, selected: idx == h.selected, focused: idx == h.focused}
		}
	}
	return widgets.Pane{Title: "Missing Pane", Height: 10, Content: id}
}

func (h *PaneHost) JumpTargets() []JumpTarget {
	out := make([]JumpTarget, 0, len(h.panes))
	for _, pane := range h.panes {
		if pane == nil || !pane.Focusable() {
			continue
		}
		if key := normalizePaneJumpKey(pane.JumpKey()); key != 0 {
			out = append(out, JumpTarget{Key: string(key), Label: pane.Title()})
		}
	}
	return out
}

func (h *PaneHost) JumpToTarget(m *Model, key string) (bool, tea.Cmd) {
	jumpKey := normalizeJumpTargetKey(key)
	if jumpKey == 0 {
		return false, nil
	}
	target := -1
	for idx, pane := range h.panes {
		if pane != nil && pane.Focusable() && normalizePaneJumpKey(pane.JumpKey()) == jumpKey {
			target = idx
			break
		}
	}
	if target < 0 {
		return false, nil
	}

	prevSelected, prevFocused := h.selected, h.focused
	h.selected, h.focused = target, target
	m.SetStatus("Focused pane: " + h.panes[target].Title())

	cmds := make([]tea.Cmd, 0, 4)
	if prevSelected != target && prevSelected >= 0 && prevSelected < len(h.panes) {
		cmds = append(cmds, h.panes[prevSelected].OnDeselect(), h.panes[target].OnSelect())
	}
	if prevFocused != target {
		if prevFocused >= 0 && prevFocused < len(h.panes) {
			cmds = append(cmds, h.panes[prevFocused].OnBlur())
		}
		cmds = append(cmds, h.panes[target].OnFocus())
	}
	return true, tea.Batch(cmds...)
}

func normalizePaneJumpKey(key byte) byte {
	if key == 0 {
		return 0
	}
	r := rune(key)
	if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
		return 0
	}
	return byte(unicode.ToLower(r))
}

func normalizeJumpTargetKey(key string) byte {
	key = strings.TrimSpace(strings.ToLower(key))
	if len(key) != 1 {
		return 0
	}
	return normalizePaneJumpKey(key[0])
}

type PaneSpec struct {
	ID        string
	Title     string
	Scope     string
	JumpKey   byte
	Focusable bool
	Text      string
	Height    int
	Factory   func(spec PaneSpec) Pane
}

type LayoutBuilder func(host *PaneHost, m *Model) widgets.Widget

type GeneratedTab struct {
	id     string
	title  string
	host   PaneHost
	layout LayoutBuilder
}

func NewGeneratedTab(id, title string, specs []PaneSpec, layout LayoutBuilder) *GeneratedTab {
	panes := make([]Pane, 0, len(specs))
	for _, spec := range specs {
		if spec.Factory != nil {
			panes = append(panes, spec.Factory(spec))
			continue
		}
		panes = append(panes, NewStaticPane(spec.ID, spec.Title, spec.Scope, spec.JumpKey, spec.Focusable, spec.Text, spec.Height))
	}
	return &GeneratedTab{id: id, title: title, host: NewPaneHost(panes...), layout: layout}
}

func (t *GeneratedTab) ID() string                { return t.id }
func (t *GeneratedTab) Title() string             { return t.title }
func (t *GeneratedTab) Scope() string             { return t.host.Scope() }
func (t *GeneratedTab) ActivePaneTitle() string   { return t.host.ActivePaneTitle() }
func (t *GeneratedTab) CapturingInput() bool      { return t.host.CapturingInput() }
func (t *GeneratedTab) Pane(id string) Pane       { return t.host.Pane(id) }
func (t *GeneratedTab) JumpTargets() []JumpTarget { return t.host.JumpTargets() }
func (t *GeneratedTab) JumpToTarget(m *Model, key string) (bool, tea.Cmd) {
	return t.host.JumpToTarget(m, key)
}
func (t *GeneratedTab) InitTab(m *Model) tea.Cmd {
	_ = m
	return t.host.Init()
}
func (t *GeneratedTab) HandlePaneKey(m *Model, msg tea.KeyMsg) (bool, tea.Cmd) {
	return t.host.HandlePaneKey(m, msg)
}
func (t *GeneratedTab) Update(m *Model, msg tea.Msg) tea.Cmd {
	return t.host.Update(m, msg)
}
func (t *GeneratedTab) Build(m *Model) widgets.Widget {
	if t.layout == nil {
		return widgets.Pane{Title: t.title, Height: 10, Content: ""}
	}
	return t.layout(&t.host, m)
}
