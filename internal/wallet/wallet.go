// Package wallet provides the keypair wallet and the connected session.
package wallet

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"
)

// SecureWallet signs on behalf of a single identity.
type SecureWallet interface {
	PublicKey() solana.PublicKey
	Sign(message []byte) ([]byte, error)
	SignTransaction(transaction *solana.Transaction) error
}

// MemoryWallet keeps the private key in memory.
type MemoryWallet struct {
	privateKey solana.PrivateKey
}

func NewMemoryWallet(privateKey solana.PrivateKey) *MemoryWallet {
	return &MemoryWallet{privateKey: privateKey}
}

// NewMemoryWalletFromBase58 accepts a base58 encoded 64-byte secret key.
func NewMemoryWalletFromBase58(secret string) (*MemoryWallet, error) {
	raw, err := base58.Decode(secret)
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}
	if len(raw) != 64 {
		return nil, fmt.Errorf("invalid private key: expected 64 bytes, got %d", len(raw))
	}
	return NewMemoryWallet(solana.PrivateKey(raw)), nil
}

// LoadKeypairFile reads a solana-keygen JSON keypair.
func LoadKeypairFile(path string) (*MemoryWallet, error) {
	key, err := solana.PrivateKeyFromSolanaKeygenFile(path)
	if err != nil {
		return nil, fmt.Errorf("load keypair %s: %w", path, err)
	}
	return NewMemoryWallet(key), nil
}

func (w *MemoryWallet) PublicKey() solana.PublicKey {
	return w.privateKey.PublicKey()
}

func (w *MemoryWallet) Sign(message []byte) ([]byte, error) {
	signature, err := w.privateKey.Sign(message)
	if err != nil {
		return nil, fmt.Errorf("failed to sign message: %w", err)
	}
	return signature[:], nil
}

func (w *MemoryWallet) SignTransaction(tx *solana.Transaction) error {
	_, err := tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		if key.Equals(w.PublicKey()) {
			return &w.privateKey
		}
		return nil
	})
	return err
}
