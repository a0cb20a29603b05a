package service

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"

	"github.com/jask/soldash/internal/config"
)

func TestAssetsFromConfig(t *testing.T) {
	mint := solana.NewWallet().PublicKey()
	assets, err := AssetsFromConfig(config.AssetsConfig{
		NativePlaces: 4,
		Tokens:       []config.TokenConfig{{Symbol: " USDC ", Mint: mint.String(), Decimals: 6, Places: 2}},
	})
	require.NoError(t, err)
	require.Len(t, assets, 2)
	require.True(t, assets[0].Native)
	require.Equal(t, "SOL", assets[0].Symbol)
	require.Equal(t, "USDC", assets[1].Symbol)
	require.Equal(t, mint.String(), assets[1].ID())
}

func TestAssetsFromConfigRejectsDuplicateSymbols(t *testing.T) {
	a, b := solana.NewWallet().PublicKey().String(), solana.NewWallet().PublicKey().String()

	_, err := AssetsFromConfig(config.AssetsConfig{Tokens: []config.TokenConfig{
		{Symbol: "USDC", Mint: a, Decimals: 6},
		{Symbol: "usdc", Mint: b, Decimals: 6},
	}})
	require.ErrorContains(t, err, "duplicate symbol")

	_, err = AssetsFromConfig(config.AssetsConfig{NativeSymbol: "SOL", Tokens: []config.TokenConfig{
		{Symbol: "sol", Mint: a, Decimals: 9},
	}})
	require.ErrorContains(t, err, "duplicate symbol")
}
