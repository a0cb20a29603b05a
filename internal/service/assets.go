package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gagliardetto/solana-go"

	"github.com/jask/soldash/internal/config"
)

var (
	// ErrNotConnected means no wallet identity is present.
	ErrNotConnected = errors.New("wallet not connected")
	// ErrIncomplete means a required input is missing or the quantity is not
	// positive. Callers decline without notifying.
	ErrIncomplete = errors.New("incomplete request")
)

// nativeDecimals is the lamport scale of the native asset.
const nativeDecimals = 9

// Asset is one tracked balance.
type Asset struct {
	Symbol   string
	Mint     solana.PublicKey
	Decimals uint8
	Places   int32
	Native   bool
}

// ID identifies the asset in UI messages.
func (a Asset) ID() string {
	if a.Native {
		return "native"
	}
	return a.Mint.String()
}

// AssetsFromConfig returns the native asset followed by every configured token.
// Symbols must be unique ignoring case; they key the transfer forms.
func AssetsFromConfig(cfg config.AssetsConfig) ([]Asset, error) {
	symbol := strings.TrimSpace(cfg.NativeSymbol)
	if symbol == "" {
		symbol = "SOL"
	}
	out := []Asset{{Symbol: symbol, Decimals: nativeDecimals, Places: cfg.NativePlaces, Native: true}}
	seen := map[string]struct{}{strings.ToLower(symbol): {}}
	for _, t := range cfg.Tokens {
		sym := strings.TrimSpace(t.Symbol)
		key := strings.ToLower(sym)
		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("token %s: duplicate symbol", sym)
		}
		seen[key] = struct{}{}
		mint, err := t.MintKey()
		if err != nil {
			return nil, fmt.Errorf("token %s: invalid mint: %w", sym, err)
		}
		out = append(out, Asset{Symbol: sym, Mint: mint, Decimals: t.Decimals, Places: t.Places})
	}
	return out, nil
}
