package chain

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	lru "github.com/hashicorp/golang-lru/v2"
)

type ownerMint struct {
	owner solana.PublicKey
	mint  solana.PublicKey
}

// AssociatedAccounts derives associated token addresses. Derivation is
// deterministic so cached entries never go stale.
type AssociatedAccounts struct {
	cache *lru.Cache[ownerMint, solana.PublicKey]
}

func NewAssociatedAccounts(size int) (*AssociatedAccounts, error) {
	if size <= 0 {
		size = 64
	}
	cache, err := lru.New[ownerMint, solana.PublicKey](size)
	if err != nil {
		return nil, fmt.Errorf("create address cache: %w", err)
	}
	return &AssociatedAccounts{cache: cache}, nil
}

// Derive returns the associated token address for (owner, mint).
func (a *AssociatedAccounts) Derive(owner, mint solana.PublicKey) (solana.PublicKey, error) {
	key := ownerMint{owner: owner, mint: mint}
	if addr, ok := a.cache.Get(key); ok {
		return addr, nil
	}
	addr, _, err := solana.FindAssociatedTokenAddress(owner, mint)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("derive associated account for %s: %w", mint, err)
	}
	a.cache.Add(key, addr)
	return addr, nil
}

// Len reports the number of cached derivations.
func (a *AssociatedAccounts) Len() int {
	return a.cache.Len()
}
