package core

import (
	"testing"
)

func TestJumpModeOpensPickerAndSelectsTarget(t *testing.T) {
	one := newRecordingPane("one", "pane:j:one", 'a', false)
	two := newRecordingPane("two", "pane:j:two", 't', false)
	tab := recordingTab(one, two)
	m := NewModel([]Tab{tab}, NewKeyRegistry(DefaultKeyBindings()), nil)

	next, _ := m.Update(runes("v"))
	m = next.(Model)
	if m.ScreenDepth() != 1 || m.ActiveScope() != ScopeJump {
		t.Fatalf("expected jump screen to open")
	}

	next, cmd := m.Update(runes("t"))
	m = next.(Model)
	if m.ScreenDepth() != 0 {
		t.Fatalf("expected jump screen to close after selecting target")
	}
	if cmd == nil {
		t.Fatalf("expected jump selection command")
	}
	next, _ = m.Update(cmd())
	m = next.(Model)
	if got := tab.ActivePaneTitle(); got != "two" {
		t.Fatalf("jump target mismatch: %s", got)
	}
	if m.ActiveScope() != "pane:j:two" {
		t.Fatalf("scope should follow jumped pane, got %s", m.ActiveScope())
	}
}

func TestJumpScreenCancelsOnUnknownKey(t *testing.T) {
	s := NewJumpScreen([]JumpTarget{{Key: "a", Label: "Airdrop"}, {Key: "??", Label: "ignored"}})
	_, cmd, pop := s.Update(runes("z"))
	if !pop {
		t.Fatalf("unknown key should close the jump screen")
	}
	if msg, ok := cmd().(StatusMsg); !ok || msg.Text != "Jump cancelled" {
		t.Fatalf("unexpected cancel message %#v", msg)
	}
	if len(s.targets) != 1 {
		t.Fatalf("invalid keys should be dropped")
	}
}
