package wallet

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/gagliardetto/solana-go"
	"github.com/sirupsen/logrus"
)

var ErrNoWallet = errors.New("wallet not connected")

// Submitter is the part of the ledger a session needs to land a transaction.
type Submitter interface {
	LatestBlockhash(ctx context.Context) (solana.Hash, error)
	SendTransaction(ctx context.Context, tx *solana.Transaction) (solana.Signature, error)
}

// Loader produces the wallet a session connects to.
type Loader func() (SecureWallet, error)

// FileLoader loads the keypair at path on every connect.
func FileLoader(path string) Loader {
	return func() (SecureWallet, error) {
		return LoadKeypairFile(path)
	}
}

// Base58Loader decodes secret on every connect.
func Base58Loader(secret string) Loader {
	return func() (SecureWallet, error) {
		return NewMemoryWalletFromBase58(secret)
	}
}

// ConfiguredLoader prefers an inline base58 secret over the keypair file.
func ConfiguredLoader(secret, keypairPath string) Loader {
	if secret = strings.TrimSpace(secret); secret != "" {
		return Base58Loader(secret)
	}
	return FileLoader(keypairPath)
}

// Session holds the currently connected wallet, if any.
type Session struct {
	mu     sync.RWMutex
	load   Loader
	wallet SecureWallet
	logger *logrus.Logger
}

func NewSession(load Loader, logger *logrus.Logger) *Session {
	if logger == nil {
		logger = logrus.New()
	}
	return &Session{load: load, logger: logger}
}

// Connect loads the wallet. Connecting while connected replaces the identity.
func (s *Session) Connect() error {
	if s.load == nil {
		return fmt.Errorf("connect: no wallet loader configured")
	}
	w, err := s.load()
	if err != nil {
		s.logger.WithError(err).Warn("wallet connect failed")
		return fmt.Errorf("connect: %w", err)
	}
	s.mu.Lock()
	s.wallet = w
	s.mu.Unlock()
	s.logger.WithField("owner", w.PublicKey().String()).Info("wallet connected")
	return nil
}

func (s *Session) Disconnect() {
	s.mu.Lock()
	s.wallet = nil
	s.mu.Unlock()
	s.logger.Info("wallet disconnected")
}

// Identity returns the connected public key.
func (s *Session) Identity() (solana.PublicKey, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.wallet == nil {
		return solana.PublicKey{}, false
	}
	return s.wallet.PublicKey(), true
}

func (s *Session) Connected() bool {
	_, ok := s.Identity()
	return ok
}

// SignAndSubmit builds one transaction from instructions with the identity as
// fee payer, signs it and sends it.
func (s *Session) SignAndSubmit(ctx context.Context, ledger Submitter, instructions ...solana.Instruction) (solana.Signature, error) {
	s.mu.RLock()
	w := s.wallet
	s.mu.RUnlock()
	if w == nil {
		return solana.Signature{}, ErrNoWallet
	}

	blockhash, err := ledger.LatestBlockhash(ctx)
	if err != nil {
		return solana.Signature{}, err
	}
	tx, err := solana.NewTransaction(instructions, blockhash, solana.TransactionPayer(w.PublicKey()))
	if err != nil {
		return solana.Signature{}, fmt.Errorf("build transaction: %w", err)
	}
	if err := w.SignTransaction(tx); err != nil {
		return solana.Signature{}, fmt.Errorf("sign transaction: %w", err)
	}
	return ledger.SendTransaction(ctx, tx)
}

// ShortIdentity returns the first n characters of pk followed by suffix.
func ShortIdentity(pk solana.PublicKey, n int, suffix string) string {
	s := pk.String()
	if n <= 0 || n >= len(s) {
		return s
	}
	return s[:n] + suffix
}
