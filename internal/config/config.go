package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Network NetworkConfig
	Wallet  WalletConfig
	Assets  AssetsConfig
	Faucet  FaucetConfig
	Board   BoardConfig
	UI      UIConfig
	Log     LogConfig
}

// NetworkConfig holds RPC settings.
type NetworkConfig struct {
	RPCEndpoint    string        `mapstructure:"rpc_endpoint"`
	Commitment     string        `mapstructure:"commitment"`
	ConfirmTimeout time.Duration `mapstructure:"confirm_timeout"`
	ClusterLabel   string        `mapstructure:"cluster_label"`
}

// WalletConfig holds keypair wallet settings. A base58 SecretKey wins over
// KeypairPath when both are set.
type WalletConfig struct {
	KeypairPath string `mapstructure:"keypair_path"`
	SecretKey   string `mapstructure:"secret_key"`
	AutoConnect bool   `mapstructure:"auto_connect"`
}

// AssetsConfig lists the tracked assets.
type AssetsConfig struct {
	NativeSymbol string        `mapstructure:"native_symbol"`
	NativePlaces int32         `mapstructure:"native_places"`
	Tokens       []TokenConfig `mapstructure:"tokens"`
}

// TokenConfig describes one tracked token mint.
type TokenConfig struct {
	Symbol   string `mapstructure:"symbol"`
	Mint     string `mapstructure:"mint"`
	Decimals uint8  `mapstructure:"decimals"`
	Places   int32  `mapstructure:"places"`
}

// MintKey parses the mint address.
func (t TokenConfig) MintKey() (solana.PublicKey, error) {
	return solana.PublicKeyFromBase58(t.Mint)
}

// FaucetConfig holds airdrop settings.
type FaucetConfig struct {
	Lamports uint64 `mapstructure:"lamports"`
}

// BoardConfig holds message board settings.
type BoardConfig struct {
	PostDelay    time.Duration `mapstructure:"post_delay"`
	MaxLength    int           `mapstructure:"max_length"`
	AuthorPrefix int           `mapstructure:"author_prefix"`
	AuthorSuffix string        `mapstructure:"author_suffix"`
	Seed         []SeedPost    `mapstructure:"seed"`
}

// SeedPost is a message shown on a fresh board. Age is relative to startup.
type SeedPost struct {
	Author  string        `mapstructure:"author"`
	Content string        `mapstructure:"content"`
	Age     time.Duration `mapstructure:"age"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	RefreshInterval time.Duration `mapstructure:"refresh_interval"`
	KeybindingsPath string        `mapstructure:"keybindings_path"`
}

// LogConfig holds logrus settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

var commitments = map[string]struct{}{
	"processed": {},
	"confirmed": {},
	"finalized": {},
}

// Load reads configuration from file and env. Env var overrides use prefix SOLDASH_.
func Load() (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")

	cfgPath := os.Getenv("SOLDASH_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "soldash"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("SOLDASH")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	c.Wallet.KeypairPath = expandHome(c.Wallet.KeypairPath)
	c.UI.KeybindingsPath = expandHome(c.UI.KeybindingsPath)
	c.Log.File = expandHome(c.Log.File)
	return c, nil
}

func setDefaults(v *viper.Viper) {
	home := os.Getenv("HOME")

	v.SetDefault("network.rpc_endpoint", "https://api.devnet.solana.com")
	v.SetDefault("network.commitment", "confirmed")
	v.SetDefault("network.confirm_timeout", "60s")
	v.SetDefault("network.cluster_label", "Devnet")

	v.SetDefault("wallet.keypair_path", filepath.Join(home, ".config", "solana", "id.json"))
	v.SetDefault("wallet.secret_key", "")
	v.SetDefault("wallet.auto_connect", true)

	v.SetDefault("assets.native_symbol", "SOL")
	v.SetDefault("assets.native_places", 4)
	v.SetDefault("assets.tokens", []map[string]any{
		{"symbol": "USDC", "mint": "4zMMC9srt5Ri5X14GAgXhaHii3GnPAEERYPJgZJDncDU", "decimals": 6, "places": 2},
		{"symbol": "BOOT", "mint": "Gh9ZwEmdLJ8DscKNTkTqPbNwLNNBjuSzaG9Vp2KGtKJr", "decimals": 6, "places": 2},
	})

	v.SetDefault("faucet.lamports", solana.LAMPORTS_PER_SOL*2)

	v.SetDefault("board.post_delay", "2s")
	v.SetDefault("board.max_length", 280)
	v.SetDefault("board.author_prefix", 8)
	v.SetDefault("board.author_suffix", "...")
	v.SetDefault("board.seed", []map[string]any{
		{"author": "DemoUser1", "content": "Welcome to the Solana Message Board! This is where we learn about blockchain data.", "age": "1h"},
		{"author": "DemoUser2", "content": "Building on Solana is amazing! The speed and low costs are incredible.", "age": "30m"},
		{"author": "DemoUser3", "content": "Day 3 of the bootcamp: Learning about Anchor and program interactions!", "age": "15m"},
	})

	v.SetDefault("ui.refresh_interval", "0s")
	v.SetDefault("ui.keybindings_path", filepath.Join(home, ".config", "soldash", "keybindings.toml"))

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", defaultLogFile())
}

func defaultLogFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "soldash", "soldash.log")
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		return filepath.Join(os.Getenv("HOME"), strings.TrimPrefix(path, "~"))
	}
	return path
}

// Validate checks values that would otherwise fail deep inside an RPC call.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Network.RPCEndpoint) == "" {
		return fmt.Errorf("network.rpc_endpoint is required")
	}
	if _, ok := commitments[strings.ToLower(c.Network.Commitment)]; !ok {
		return fmt.Errorf("network.commitment %q must be processed, confirmed or finalized", c.Network.Commitment)
	}
	if c.Network.ConfirmTimeout < 0 {
		return fmt.Errorf("network.confirm_timeout must not be negative")
	}
	native := strings.TrimSpace(c.Assets.NativeSymbol)
	if native == "" {
		native = "SOL"
	}
	symbols := map[string]struct{}{strings.ToLower(native): {}}
	for i, t := range c.Assets.Tokens {
		sym := strings.ToLower(strings.TrimSpace(t.Symbol))
		if sym == "" {
			return fmt.Errorf("assets.tokens[%d]: symbol is required", i)
		}
		if _, dup := symbols[sym]; dup {
			return fmt.Errorf("assets.tokens[%d] (%s): duplicate symbol", i, t.Symbol)
		}
		symbols[sym] = struct{}{}
		if _, err := t.MintKey(); err != nil {
			return fmt.Errorf("assets.tokens[%d] (%s): invalid mint: %w", i, t.Symbol, err)
		}
		if t.Decimals > 18 {
			return fmt.Errorf("assets.tokens[%d] (%s): decimals must be at most 18", i, t.Symbol)
		}
	}
	if c.Faucet.Lamports == 0 {
		return fmt.Errorf("faucet.lamports must be greater than 0")
	}
	if c.Board.PostDelay < 0 {
		return fmt.Errorf("board.post_delay must not be negative")
	}
	if c.Board.MaxLength <= 0 {
		return fmt.Errorf("board.max_length must be greater than 0")
	}
	return nil
}
