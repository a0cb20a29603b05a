package core

import (
	"fmt"
	"slices"
	"strings"
)

const (
	ScopeWalletConnection = "pane:wallet:connection"
	ScopeWalletBalances   = "pane:wallet:balances"
	ScopeWalletHistory    = "pane:wallet:history"
	ScopeAirdrop          = "pane:transactions:airdrop"
	ScopeSendPrefix       = "pane:transactions:send-"
	ScopeCompose          = "pane:messages:compose"
	ScopeBoard            = "pane:messages:board"
	ScopeCommand          = "screen:command"
	ScopeJump             = "screen:jump"
)

// DefaultKeyBindings returns the stock bindings. sendScopes lists the scope of
// every transfer form so submit and field keys bind there.
func DefaultKeyBindings(sendScopes ...string) []KeyBinding {
	wallet := []string{ScopeWalletConnection, ScopeWalletBalances, ScopeWalletHistory}
	return []KeyBinding{
		{Keys: []string{"c"}, Action: "connect", Description: "connect", Scopes: []string{ScopeWalletConnection}},
		{Keys: []string{"d"}, Action: "disconnect", Description: "disconnect", Scopes: []string{ScopeWalletConnection}},
		{Keys: []string{"r"}, Action: "refresh", Description: "refresh", Scopes: wallet},
		{Keys: []string{"enter"}, Action: "airdrop", Description: "request airdrop", Scopes: []string{ScopeAirdrop}},
		{Keys: []string{"tab", "shift+tab"}, Action: "next-field", Description: "next field", Scopes: sendScopes},
		{Keys: []string{"enter"}, Action: "submit", Description: "send", Scopes: sendScopes},
		{Keys: []string{"ctrl+s"}, Action: "post", Description: "post", Scopes: []string{ScopeCompose}},
		{Keys: []string{"j"}, Action: "scroll-down", Description: "scroll", Scopes: []string{ScopeBoard}},
		{Keys: []string{"k"}, Action: "scroll-up", Description: "scroll", Scopes: []string{ScopeBoard}},
		{Keys: []string{"q"}, Action: "quit", Description: "quit", Scopes: []string{"*"}},
		{Keys: []string{"v"}, Action: "jump", Description: "jump", Scopes: []string{"*"}},
		{Keys: []string{"ctrl+k"}, Action: "open-command-palette", Description: "commands", Scopes: []string{"*"}},
		{Keys: []string{"1"}, Action: "switch-tab-1", Description: "wallet", Scopes: []string{"*"}},
		{Keys: []string{"2"}, Action: "switch-tab-2", Description: "transactions", Scopes: []string{"*"}},
		{Keys: []string{"3"}, Action: "switch-tab-3", Description: "messages", Scopes: []string{"*"}},
		{Keys: []string{"esc"}, Action: "close", Description: "close", Scopes: []string{ScopeCommand, ScopeJump}},
		{Keys: []string{"enter"}, Action: "select", Description: "select", Scopes: []string{ScopeCommand}},
	}
}

// DefaultKeybindingsByAction maps each action to the keys of its first binding.
func DefaultKeybindingsByAction(bindings []KeyBinding) map[string][]string {
	out := make(map[string][]string, len(bindings))
	for _, b := range bindings {
		if strings.TrimSpace(b.Action) == "" || len(b.Keys) == 0 {
			continue
		}
		if _, exists := out[b.Action]; exists {
			continue
		}
		out[b.Action] = append([]string(nil), b.Keys...)
	}
	return out
}

// ApplyActionKeybindings replaces the keys of every binding whose action has
// an override. Overrides naming an action that bindings do not define fail.
func ApplyActionKeybindings(bindings []KeyBinding, actionKeys map[string][]string) ([]KeyBinding, error) {
	known := DefaultKeybindingsByAction(bindings)
	var unknown []string
	for action := range actionKeys {
		if _, ok := known[action]; !ok {
			unknown = append(unknown, action)
		}
	}
	if len(unknown) > 0 {
		slices.Sort(unknown)
		return nil, fmt.Errorf("unknown action(s): %s", strings.Join(unknown, ", "))
	}
	out := make([]KeyBinding, 0, len(bindings))
	for _, b := range bindings {
		next := KeyBinding{
			Keys:        append([]string(nil), b.Keys...),
			Action:      b.Action,
			Description: b.Description,
			Scopes:      append([]string(nil), b.Scopes...),
		}
		if keys, ok := actionKeys[b.Action]; ok && len(keys) > 0 {
			next.Keys = append([]string(nil), keys...)
		}
		out = append(out, next)
	}
	return out, nil
}
