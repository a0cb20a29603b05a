package service

import (
	"context"
	"errors"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/jask/soldash/internal/chain"
	"github.com/jask/soldash/internal/wallet"
)

var errUnexpected = errors.New("unexpected call")

type fakeLedger struct {
	nativeBalance func(solana.PublicKey) (uint64, error)
	tokenAmount   func(solana.PublicKey) (uint64, error)
	accountExists func(solana.PublicKey) (bool, error)
	airdrop       func(solana.PublicKey, uint64) (solana.Signature, error)
	confirm       func(solana.Signature) error
}

func (f *fakeLedger) NativeBalance(_ context.Context, owner solana.PublicKey) (uint64, error) {
	if f.nativeBalance == nil {
		return 0, errUnexpected
	}
	return f.nativeBalance(owner)
}

func (f *fakeLedger) TokenAccountAmount(_ context.Context, account solana.PublicKey) (uint64, error) {
	if f.tokenAmount == nil {
		return 0, errUnexpected
	}
	return f.tokenAmount(account)
}

func (f *fakeLedger) AccountExists(_ context.Context, account solana.PublicKey) (bool, error) {
	if f.accountExists == nil {
		return false, errUnexpected
	}
	return f.accountExists(account)
}

func (f *fakeLedger) RequestAirdrop(_ context.Context, owner solana.PublicKey, lamports uint64) (solana.Signature, error) {
	if f.airdrop == nil {
		return solana.Signature{}, errUnexpected
	}
	return f.airdrop(owner, lamports)
}

func (f *fakeLedger) LatestBlockhash(context.Context) (solana.Hash, error) {
	return solana.Hash{9}, nil
}

func (f *fakeLedger) SendTransaction(context.Context, *solana.Transaction) (solana.Signature, error) {
	return solana.Signature{}, errUnexpected
}

func (f *fakeLedger) AwaitConfirmation(_ context.Context, sig solana.Signature) error {
	if f.confirm == nil {
		return nil
	}
	return f.confirm(sig)
}

var _ chain.Ledger = (*fakeLedger)(nil)

// fakeSigner records every submitted instruction batch.
type fakeSigner struct {
	owner     solana.PublicKey
	connected bool
	batches   [][]solana.Instruction
	err       error
}

func (f *fakeSigner) Identity() (solana.PublicKey, bool) {
	return f.owner, f.connected
}

func (f *fakeSigner) SignAndSubmit(_ context.Context, _ wallet.Submitter, ixs ...solana.Instruction) (solana.Signature, error) {
	if f.err != nil {
		return solana.Signature{}, f.err
	}
	f.batches = append(f.batches, ixs)
	return solana.Signature{byte(len(f.batches))}, nil
}

func newAccounts(t *testing.T) *chain.AssociatedAccounts {
	t.Helper()
	a, err := chain.NewAssociatedAccounts(16)
	require.NoError(t, err)
	return a
}

func newLogger() (*logrus.Logger, *test.Hook) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	return logger, hook
}

func randomKey() solana.PublicKey {
	return solana.NewWallet().PublicKey()
}
