package app

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gagliardetto/solana-go"
	"github.com/sirupsen/logrus"

	"github.com/jask/soldash/core"
	"github.com/jask/soldash/internal/chain"
	"github.com/jask/soldash/internal/config"
	"github.com/jask/soldash/internal/database"
	"github.com/jask/soldash/internal/database/repository"
	"github.com/jask/soldash/internal/service"
	"github.com/jask/soldash/internal/wallet"
)

var errRPC = errors.New("rpc unavailable")

type fakeLedger struct {
	mu      sync.Mutex
	native  func(solana.PublicKey) (uint64, error)
	token   func(solana.PublicKey) (uint64, error)
	exists  func(solana.PublicKey) (bool, error)
	sendErr    error
	airdropErr error
	sent       []*solana.Transaction
	drops      int
}

func (f *fakeLedger) NativeBalance(_ context.Context, owner solana.PublicKey) (uint64, error) {
	if f.native == nil {
		return 0, errRPC
	}
	return f.native(owner)
}

func (f *fakeLedger) TokenAccountAmount(_ context.Context, account solana.PublicKey) (uint64, error) {
	if f.token == nil {
		return 0, chain.ErrAccountNotFound
	}
	return f.token(account)
}

func (f *fakeLedger) AccountExists(_ context.Context, account solana.PublicKey) (bool, error) {
	if f.exists == nil {
		return true, nil
	}
	return f.exists(account)
}

func (f *fakeLedger) RequestAirdrop(context.Context, solana.PublicKey, uint64) (solana.Signature, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.drops++
	if f.airdropErr != nil {
		return solana.Signature{}, f.airdropErr
	}
	return solana.Signature{7}, nil
}

func (f *fakeLedger) LatestBlockhash(context.Context) (solana.Hash, error) {
	return solana.Hash{1}, nil
}

func (f *fakeLedger) SendTransaction(_ context.Context, tx *solana.Transaction) (solana.Signature, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return solana.Signature{}, f.sendErr
	}
	f.sent = append(f.sent, tx)
	return solana.Signature{3}, nil
}

func (f *fakeLedger) AwaitConfirmation(context.Context, solana.Signature) error {
	return nil
}

var _ chain.Ledger = (*fakeLedger)(nil)

type fixture struct {
	deps   *Deps
	ledger *fakeLedger
	owner  solana.PublicKey
	token  service.Asset
}

func newFixture(t *testing.T, ledger *fakeLedger) *fixture {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	key, err := solana.NewRandomPrivateKey()
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	session := wallet.NewSession(func() (wallet.SecureWallet, error) {
		return wallet.NewMemoryWallet(key), nil
	}, logger)

	accounts, err := chain.NewAssociatedAccounts(16)
	if err != nil {
		t.Fatalf("accounts cache: %v", err)
	}
	cfg := config.Config{
		Network: config.NetworkConfig{ClusterLabel: "Devnet", RPCEndpoint: "http://localhost:8899"},
		Assets: config.AssetsConfig{
			NativeSymbol: "SOL",
			NativePlaces: 4,
			Tokens: []config.TokenConfig{
				{Symbol: "USDC", Mint: solana.NewWallet().PublicKey().String(), Decimals: 6, Places: 2},
			},
		},
		Faucet: config.FaucetConfig{Lamports: 2 * solana.LAMPORTS_PER_SOL},
		Board:  config.BoardConfig{MaxLength: 280, AuthorPrefix: 8, AuthorSuffix: "..."},
	}
	assets, err := service.AssetsFromConfig(cfg.Assets)
	if err != nil {
		t.Fatalf("assets: %v", err)
	}

	board := newBoard(t, service.SimulatedPoster{}, cfg.Board, logger)

	deps := &Deps{
		Session:  session,
		Balances: &service.BalanceService{Ledger: ledger, Accounts: accounts, Logger: logger},
		Transfers: &service.TransferService{
			Ledger:         ledger,
			Wallet:         session,
			Accounts:       accounts,
			FaucetLamports: cfg.Faucet.Lamports,
			Logger:         logger,
		},
		Board:  board,
		Assets: assets,
		Config: cfg,
		Logger: logger,
	}
	return &fixture{deps: deps, ledger: ledger, owner: key.PublicKey(), token: assets[1]}
}

func newBoard(t *testing.T, poster service.Poster, cfg config.BoardConfig, logger *logrus.Logger) *service.MessageBoard {
	t.Helper()
	db, err := database.OpenSessionStore()
	if err != nil {
		t.Fatalf("session store: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return service.NewMessageBoard(repository.NewMessageRepo(db), poster, cfg, logger)
}

type failingPoster struct{ err error }

func (p failingPoster) Post(context.Context, solana.PublicKey, string) error { return p.err }

func (f *fixture) connect(t *testing.T) {
	t.Helper()
	if err := f.deps.Session.Connect(); err != nil {
		t.Fatalf("connect: %v", err)
	}
}

func (f *fixture) native() service.Asset { return f.deps.Assets[0] }

// drain runs cmd and every command batched inside it.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, drain(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

// deliver feeds msgs to pane and returns whatever the pane sends back.
func deliver(pane core.Pane, msgs []tea.Msg) []tea.Msg {
	var out []tea.Msg
	for _, msg := range msgs {
		out = append(out, drain(pane.Update(msg))...)
	}
	return out
}

func statusMessages(msgs []tea.Msg) []core.StatusMsg {
	var out []core.StatusMsg
	for _, m := range msgs {
		if s, ok := m.(core.StatusMsg); ok {
			out = append(out, s)
		}
	}
	return out
}

func hasMsg[T any](msgs []tea.Msg) bool {
	for _, m := range msgs {
		if _, ok := m.(T); ok {
			return true
		}
	}
	return false
}

func spec(id, scope string, jump byte, focusable bool) core.PaneSpec {
	return core.PaneSpec{ID: id, Title: id, Scope: scope, JumpKey: jump, Focusable: focusable}
}
