package app

import (
	"strings"

	"github.com/jask/soldash/core"
	"github.com/jask/soldash/core/widgets"
	"github.com/jask/soldash/internal/service"
)

// Tabs builds the wallet, transactions and messages tabs in that order.
func Tabs(deps *Deps) []core.Tab {
	return []core.Tab{
		NewWalletTab(deps),
		NewTransactionsTab(deps),
		NewMessagesTab(deps),
	}
}

func NewWalletTab(deps *Deps) core.Tab {
	specs := []core.PaneSpec{
		{ID: "connection", Title: "Connection", Scope: core.ScopeWalletConnection, JumpKey: 'c', Focusable: true, Factory: func(spec core.PaneSpec) core.Pane {
			return NewConnectionPane(spec, deps)
		}},
		{ID: "balances", Title: "Balances", Scope: core.ScopeWalletBalances, JumpKey: 'b', Focusable: true, Factory: func(spec core.PaneSpec) core.Pane {
			return NewBalancesPane(spec, deps)
		}},
		{ID: "history", Title: "Balance History", Scope: core.ScopeWalletHistory, JumpKey: 'h', Focusable: true, Factory: func(spec core.PaneSpec) core.Pane {
			return NewHistoryPane(spec, deps)
		}},
	}
	layout := func(host *core.PaneHost, m *core.Model) widgets.Widget {
		top := widgets.HStack{
			Widgets: []widgets.Widget{host.BuildPane("connection", m), host.BuildPane("balances", m)},
			Ratios:  []float64{0.55, 0.45},
			Gap:     1,
		}
		return widgets.VStack{
			Widgets: []widgets.Widget{top, host.BuildPane("history", m)},
			Ratios:  []float64{0.4, 0.6},
		}
	}
	return core.NewGeneratedTab("wallet", "Wallet", specs, layout)
}

// SendScope is the key scope of the transfer form for asset.
func SendScope(asset service.Asset) string {
	return core.ScopeSendPrefix + strings.ToLower(asset.Symbol)
}

// SendScopes lists the scope of every transfer form, for key binding.
func SendScopes(assets []service.Asset) []string {
	out := make([]string, 0, len(assets))
	for _, a := range assets {
		out = append(out, SendScope(a))
	}
	return out
}

// sendJumpKeys are handed out to transfer forms in order. a is the airdrop.
const sendJumpKeys = "sdefgijklmnopqrtuwxyz"

func NewTransactionsTab(deps *Deps) core.Tab {
	specs := []core.PaneSpec{
		{ID: "airdrop", Title: "Airdrop", Scope: core.ScopeAirdrop, JumpKey: 'a', Focusable: false, Factory: func(spec core.PaneSpec) core.Pane {
			return NewAirdropPane(spec, deps)
		}},
	}
	sendIDs := make([]string, 0, len(deps.Assets))
	for i, asset := range deps.Assets {
		if i >= len(sendJumpKeys) {
			break
		}
		asset := asset
		id := "send-" + strings.ToLower(asset.Symbol)
		sendIDs = append(sendIDs, id)
		specs = append(specs, core.PaneSpec{
			ID: id, Title: "Send " + asset.Symbol, Scope: SendScope(asset), JumpKey: sendJumpKeys[i], Focusable: true,
			Factory: func(spec core.PaneSpec) core.Pane { return NewSendPane(spec, deps, asset) },
		})
	}
	layout := func(host *core.PaneHost, m *core.Model) widgets.Widget {
		forms := make([]widgets.Widget, 0, len(sendIDs))
		for _, id := range sendIDs {
			forms = append(forms, host.BuildPane(id, m))
		}
		return widgets.VStack{
			Widgets: []widgets.Widget{
				host.BuildPane("airdrop", m),
				widgets.HStack{Widgets: forms, Gap: 1},
			},
			Ratios: []float64{0.25, 0.75},
		}
	}
	return core.NewGeneratedTab("transactions", "Transactions", specs, layout)
}

func NewMessagesTab(deps *Deps) core.Tab {
	specs := []core.PaneSpec{
		{ID: "compose", Title: "Compose", Scope: core.ScopeCompose, JumpKey: 'c', Focusable: true, Factory: func(spec core.PaneSpec) core.Pane {
			return NewComposePane(spec, deps)
		}},
		{ID: "board", Title: "Message Board", Scope: core.ScopeBoard, JumpKey: 'b', Focusable: true, Factory: func(spec core.PaneSpec) core.Pane {
			return NewBoardPane(spec, deps)
		}},
	}
	layout := func(host *core.PaneHost, m *core.Model) widgets.Widget {
		return widgets.VStack{
			Widgets: []widgets.Widget{host.BuildPane("compose", m), host.BuildPane("board", m)},
			Ratios:  []float64{0.35, 0.65},
		}
	}
	return core.NewGeneratedTab("messages", "Messages", specs, layout)
}
