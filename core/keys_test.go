package core

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestKeyRegistryScopeMatch(t *testing.T) {
	reg := NewKeyRegistry([]KeyBinding{
		{Keys: []string{"ctrl+k"}, Action: "palette", Scopes: []string{"tab:a"}},
		{Keys: []string{"q"}, Action: "quit", Scopes: []string{"*"}},
	})
	if !reg.IsAction(tea.KeyMsg{Type: tea.KeyCtrlK}, "palette", "tab:a") {
		t.Fatalf("expected ctrl+k in tab:a")
	}
	if reg.IsAction(tea.KeyMsg{Type: tea.KeyCtrlK}, "palette", "tab:b") {
		t.Fatalf("did not expect ctrl+k in tab:b")
	}
	if !reg.IsAction(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}, "quit", "tab:b") {
		t.Fatalf("expected q to match wildcard scope")
	}
}

func TestScopedActionIgnoresWildcards(t *testing.T) {
	reg := NewKeyRegistry(DefaultKeyBindings(ScopeSendPrefix + "sol"))
	q := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}
	if _, ok := reg.ScopedAction(q, ScopeSendPrefix+"sol"); ok {
		t.Fatalf("wildcard quit must not resolve as a pane action")
	}
	action, ok := reg.ScopedAction(tea.KeyMsg{Type: tea.KeyEnter}, ScopeSendPrefix+"sol")
	if !ok || action != "submit" {
		t.Fatalf("enter in send form = %q, %v", action, ok)
	}
	action, ok = reg.ScopedAction(tea.KeyMsg{Type: tea.KeyEnter}, ScopeAirdrop)
	if !ok || action != "airdrop" {
		t.Fatalf("enter in airdrop pane = %q, %v", action, ok)
	}
}

func TestApplyActionKeybindingsOverridesEveryScope(t *testing.T) {
	bindings, err := ApplyActionKeybindings(DefaultKeyBindings(), map[string][]string{"refresh": {"f5"}})
	if err != nil {
		t.Fatalf("apply overrides: %v", err)
	}
	reg := NewKeyRegistry(bindings)
	if !reg.IsAction(tea.KeyMsg{Type: tea.KeyF5}, "refresh", ScopeWalletBalances) {
		t.Fatalf("expected f5 to refresh after override")
	}
	if reg.IsAction(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}}, "refresh", ScopeWalletBalances) {
		t.Fatalf("r should no longer refresh")
	}
	byAction := DefaultKeybindingsByAction(bindings)
	if got := byAction["post"]; len(got) != 1 || got[0] != "ctrl+s" {
		t.Fatalf("post keys = %v", got)
	}
}

func TestApplyActionKeybindingsRejectsUnknownActions(t *testing.T) {
	_, err := ApplyActionKeybindings(DefaultKeyBindings(), map[string][]string{
		"refresh":          {"f5"},
		"refresh-balances": {"r"},
		"launch":           {"l"},
	})
	if err == nil || err.Error() != "unknown action(s): launch, refresh-balances" {
		t.Fatalf("expected unknown actions to be reported, got %v", err)
	}
}

func TestBindingsForScopeListsPaneKeysFirst(t *testing.T) {
	reg := NewKeyRegistry(DefaultKeyBindings())
	got := reg.BindingsForScope(ScopeWalletConnection)
	if len(got) == 0 || got[0].Action != "connect" {
		t.Fatalf("expected connect first, got %+v", got)
	}
}
