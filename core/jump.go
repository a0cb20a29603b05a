package core

import (
	"fmt"
	"strings"
	"unicode"

	tea "github.com/charmbracelet/bubbletea"
)

type JumpTarget struct {
	Key   string
	Label string
}

type JumpTargetProvider interface {
	JumpTargets() []JumpTarget
	JumpToTarget(m *Model, key string) (bool, tea.Cmd)
}

// JumpScreen lists the focusable panes of the active tab. Pressing a pane's
// key selects it; anything else cancels.
type JumpScreen struct {
	targets []JumpTarget
}

func NewJumpScreen(targets []JumpTarget) *JumpScreen {
	out := make([]JumpTarget, 0, len(targets))
	for _, t := range targets {
		if key := normalizeJumpKey(t.Key); key != "" {
			out = append(out, JumpTarget{Key: key, Label: t.Label})
		}
	}
	return &JumpScreen{targets: out}
}

func (s *JumpScreen) Title() string { return "Jump" }
func (s *JumpScreen) Scope() string { return ScopeJump }

func (s *JumpScreen) Update(msg tea.Msg) (Screen, tea.Cmd, bool) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil, false
	}
	k := normalizeJumpKey(keyMsg.String())
	for _, t := range s.targets {
		if t.Key == k {
			return s, func() tea.Msg { return JumpTargetSelectedMsg{Key: k} }, true
		}
	}
	return s, StatusCmd("Jump cancelled"), true
}

func (s *JumpScreen) View(width, height int) string {
	lines := make([]string, 0, len(s.targets)+3)
	lines = append(lines, "Jump to pane", "")
	for _, t := range s.targets {
		lines = append(lines, fmt.Sprintf("  [%s] %s", t.Key, t.Label))
	}
	lines = append(lines, "", "Press a key. Any other key cancels.")
	return ClipHeight(TrimToWidth(strings.Join(lines, "\n"), max(20, width)), max(4, height))
}

func normalizeJumpKey(k string) string {
	k = strings.ToLower(strings.TrimSpace(k))
	r := []rune(k)
	if len(r) != 1 || !(unicode.IsLetter(r[0]) || unicode.IsDigit(r[0])) {
		return ""
	}
	return k
}
