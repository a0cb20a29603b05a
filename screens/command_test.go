package screens

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/soldash/core"
)

func paletteModel() core.Model {
	reg := core.NewCommandRegistry([]core.Command{
		{ID: "wallet:connect", Name: "Connect wallet", Description: "Load the keypair", Scopes: []string{"*"}},
		{ID: "faucet:airdrop", Name: "Request airdrop", Description: "Ask the faucet for SOL", Scopes: []string{"*"},
			Disabled: func(*core.Model) (bool, string) { return true, "Connect a wallet first" }},
	})
	return core.NewModel(nil, core.NewKeyRegistry(core.DefaultKeyBindings()), reg)
}

func typeText(s *CommandScreen, text string) {
	for _, r := range text {
		s.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestCommandPaletteFiltersAndRunsSelection(t *testing.T) {
	m := paletteModel()
	s := OpenCommandPalette(&m, "pane:wallet:connection").(*CommandScreen)
	if got := len(s.Options()); got != 2 {
		t.Fatalf("expected every command with an empty query, got %d", got)
	}

	typeText(s, "conect")
	opts := s.Options()
	if len(opts) != 1 || opts[0].ID != "wallet:connect" {
		t.Fatalf("typo should still find connect, got %#v", opts)
	}

	_, cmd, pop := s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !pop || cmd == nil {
		t.Fatalf("enter should close the palette and run the command")
	}
	if msg, ok := cmd().(core.CommandExecuteMsg); !ok || msg.CommandID != "wallet:connect" {
		t.Fatalf("unexpected message %#v", msg)
	}
}

func TestCommandPaletteReportsDisabledReason(t *testing.T) {
	m := paletteModel()
	s := OpenCommandPalette(&m, "pane:wallet:connection").(*CommandScreen)
	typeText(s, "airdrop")

	_, cmd, pop := s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !pop {
		t.Fatalf("expected palette to close")
	}
	if msg, ok := cmd().(core.StatusMsg); !ok || msg.Text != "Connect a wallet first" {
		t.Fatalf("expected disabled reason, got %#v", msg)
	}
}

func TestCommandPaletteEscCloses(t *testing.T) {
	m := paletteModel()
	s := OpenCommandPalette(&m, "app")
	_, cmd, pop := s.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !pop || cmd != nil {
		t.Fatalf("esc should close without a command")
	}
	if s.Scope() != core.ScopeCommand {
		t.Fatalf("unexpected scope %q", s.Scope())
	}
}
