package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/soldash/core"
	"github.com/jask/soldash/internal/wallet"
	"github.com/jask/soldash/screens"
)

// KeyBindings returns the stock bindings with every transfer form's scope.
func KeyBindings(deps *Deps) []core.KeyBinding {
	return core.DefaultKeyBindings(SendScopes(deps.Assets)...)
}

// ConfigureModel attaches the palette, header badge and commands to m.
func ConfigureModel(m *core.Model, deps *Deps) {
	if m == nil {
		return
	}
	m.OpenCommandModal = screens.OpenCommandPalette
	m.Badge = func() string {
		label := deps.Config.Network.ClusterLabel
		pk, ok := deps.identity()
		if !ok {
			return label + " · disconnected"
		}
		board := deps.Config.Board
		return label + " · " + wallet.ShortIdentity(pk, board.AuthorPrefix, board.AuthorSuffix)
	}
	RegisterCommands(m.CommandRegistry(), deps)
}

func RegisterCommands(reg *core.CommandRegistry, deps *Deps) {
	needsWallet := func(*core.Model) (bool, string) {
		if deps.connected() {
			return false, ""
		}
		return true, "Connect a wallet first"
	}
	switchTo := func(id, label string) func(m *core.Model) tea.Cmd {
		return func(m *core.Model) tea.Cmd {
			m.SwitchTab(m.TabIndex(id))
			return core.StatusCmd(label)
		}
	}

	reg.Register(core.Command{
		ID: "switch-wallet", Name: "Switch to wallet", Description: "Activate wallet tab",
		Scopes: []string{"*"}, Execute: switchTo("wallet", "Wallet"),
	})
	reg.Register(core.Command{
		ID: "switch-transactions", Name: "Switch to transactions", Description: "Activate transactions tab",
		Scopes: []string{"*"}, Execute: switchTo("transactions", "Transactions"),
	})
	reg.Register(core.Command{
		ID: "switch-messages", Name: "Switch to messages", Description: "Activate messages tab",
		Scopes: []string{"*"}, Execute: switchTo("messages", "Messages"),
	})
	reg.Register(core.Command{
		ID: "wallet-connect", Name: "Connect wallet", Description: "Load the configured keypair",
		Scopes: []string{"*"},
		Execute: func(*core.Model) tea.Cmd { return connectWallet(deps) },
		Disabled: func(*core.Model) (bool, string) {
			if deps.connected() {
				return true, "Already connected"
			}
			return false, ""
		},
	})
	reg.Register(core.Command{
		ID: "wallet-disconnect", Name: "Disconnect wallet", Description: "Forget the current identity",
		Scopes: []string{"*"}, Disabled: needsWallet,
		Execute: func(*core.Model) tea.Cmd { return disconnectWallet(deps) },
	})
	reg.Register(core.Command{
		ID: "wallet-refresh", Name: "Refresh balances", Description: "Reload every tracked balance",
		Scopes: []string{"*"}, Disabled: needsWallet,
		Execute: func(*core.Model) tea.Cmd { return emit(refreshRequestMsg{}) },
	})
	reg.Register(core.Command{
		ID: "faucet-airdrop", Name: "Request airdrop", Description: "Ask the faucet for test SOL",
		Scopes: []string{"*"}, Disabled: needsWallet,
		Execute: func(*core.Model) tea.Cmd { return emit(airdropRequestMsg{}) },
	})
}
