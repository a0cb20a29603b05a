package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("SOLDASH_CONFIG", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	require.Equal(t, "https://api.devnet.solana.com", cfg.Network.RPCEndpoint)
	require.Equal(t, "confirmed", cfg.Network.Commitment)
	require.Equal(t, 60*time.Second, cfg.Network.ConfirmTimeout)
	require.Len(t, cfg.Assets.Tokens, 2)
	for _, tok := range cfg.Assets.Tokens {
		require.EqualValues(t, 6, tok.Decimals)
	}
	require.EqualValues(t, 2_000_000_000, cfg.Faucet.Lamports)
	require.Equal(t, 2*time.Second, cfg.Board.PostDelay)
	require.Equal(t, 280, cfg.Board.MaxLength)
	require.Len(t, cfg.Board.Seed, 3)
	require.Equal(t, time.Hour, cfg.Board.Seed[0].Age)
}

func TestLoadFileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	path := filepath.Join(dir, "soldash.toml")
	body := `
[network]
rpc_endpoint = "http://127.0.0.1:8899"
commitment = "finalized"

[board]
post_delay = "250ms"
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	t.Setenv("SOLDASH_CONFIG", path)
	t.Setenv("SOLDASH_NETWORK_CLUSTER_LABEL", "Localnet")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "http://127.0.0.1:8899", cfg.Network.RPCEndpoint)
	require.Equal(t, "finalized", cfg.Network.Commitment)
	require.Equal(t, "Localnet", cfg.Network.ClusterLabel)
	require.Equal(t, 250*time.Millisecond, cfg.Board.PostDelay)
	require.Empty(t, cfg.Wallet.SecretKey)
}

func TestLoadWalletSecretFromEnv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("SOLDASH_CONFIG", "")
	t.Setenv("SOLDASH_WALLET_SECRET_KEY", "5Kd3NBUAdUnhyzenEwVLy9pBKxSwXvE9FMPyR4UKZvpe")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "5Kd3NBUAdUnhyzenEwVLy9pBKxSwXvE9FMPyR4UKZvpe", cfg.Wallet.SecretKey)
}

func TestValidateRejectsBadValues(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("SOLDASH_CONFIG", "")
	base, err := Load()
	require.NoError(t, err)

	cases := map[string]func(c *Config){
		"empty endpoint":  func(c *Config) { c.Network.RPCEndpoint = " " },
		"bad commitment":  func(c *Config) { c.Network.Commitment = "recent" },
		"bad mint":        func(c *Config) { c.Assets.Tokens[0].Mint = "not-a-key" },
		"zero faucet":     func(c *Config) { c.Faucet.Lamports = 0 },
		"negative delay":  func(c *Config) { c.Board.PostDelay = -time.Second },
		"too many places": func(c *Config) { c.Assets.Tokens[1].Decimals = 19 },
		"duplicate token": func(c *Config) { c.Assets.Tokens[1].Symbol = "usdc" },
		"shadows native":  func(c *Config) { c.Assets.Tokens[0].Symbol = "Sol" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := base
			c.Assets.Tokens = append([]TokenConfig(nil), base.Assets.Tokens...)
			mutate(&c)
			require.Error(t, c.Validate())
		})
	}
}

func TestLoadKeybindings(t *testing.T) {
	dir := t.TempDir()

	got, err := LoadKeybindings(filepath.Join(dir, "missing.toml"))
	require.NoError(t, err)
	require.Nil(t, got)

	path := filepath.Join(dir, "keybindings.toml")
	require.NoError(t, os.WriteFile(path, []byte("version = 1\n[bindings]\nquit = [\" Q \"]\nrefresh = [\"r\", \"f5\"]\n"), 0o600))
	got, err = LoadKeybindings(path)
	require.NoError(t, err)
	require.Equal(t, []string{"q"}, got["quit"])
	require.Equal(t, []string{"r", "f5"}, got["refresh"])

	require.NoError(t, os.WriteFile(path, []byte("[bindings]\nquit = []\n"), 0o600))
	_, err = LoadKeybindings(path)
	require.Error(t, err)
}
