package service

import (
	"context"
	"errors"

	"github.com/gagliardetto/solana-go"
	"github.com/sirupsen/logrus"

	"github.com/jask/soldash/internal/chain"
	"github.com/jask/soldash/internal/units"
)

// BalanceService reads balances for the connected identity.
type BalanceService struct {
	Ledger   chain.Ledger
	Accounts *chain.AssociatedAccounts
	Logger   *logrus.Logger
}

// Native returns the owner's lamports.
func (s *BalanceService) Native(ctx context.Context, owner solana.PublicKey) (uint64, error) {
	raw, err := s.Ledger.NativeBalance(ctx, owner)
	if err != nil {
		s.logger().WithError(err).WithField("owner", owner.String()).Warn("native balance fetch failed")
		return 0, err
	}
	return raw, nil
}

// Token returns the owner's raw balance of asset. A missing associated
// account is a zero balance.
func (s *BalanceService) Token(ctx context.Context, owner solana.PublicKey, asset Asset) (uint64, error) {
	fields := logrus.Fields{"owner": owner.String(), "asset": asset.Symbol}
	ata, err := s.Accounts.Derive(owner, asset.Mint)
	if err != nil {
		s.logger().WithError(err).WithFields(fields).Warn("token balance fetch failed")
		return 0, err
	}
	raw, err := s.Ledger.TokenAccountAmount(ctx, ata)
	if errors.Is(err, chain.ErrAccountNotFound) {
		s.logger().WithFields(fields).Debug("no token account yet")
		return 0, nil
	}
	if err != nil {
		s.logger().WithError(err).WithFields(fields).Warn("token balance fetch failed")
		return 0, err
	}
	return raw, nil
}

// Fetch returns the raw balance of any tracked asset.
func (s *BalanceService) Fetch(ctx context.Context, owner solana.PublicKey, asset Asset) (uint64, error) {
	if asset.Native {
		return s.Native(ctx, owner)
	}
	return s.Token(ctx, owner, asset)
}

// Display formats a raw balance of asset. The native asset keeps a fixed
// number of places, tokens show full precision with at least Places.
func Display(asset Asset, raw uint64) string {
	if asset.Native {
		return units.FormatFixed(raw, int32(asset.Decimals), asset.Places)
	}
	return units.FormatTrimmed(raw, int32(asset.Decimals), asset.Places)
}

func (s *BalanceService) logger() *logrus.Logger {
	if s.Logger == nil {
		return logrus.StandardLogger()
	}
	return s.Logger
}
