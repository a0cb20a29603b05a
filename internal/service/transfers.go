package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/gagliardetto/solana-go"
	associatedtokenaccount "github.com/gagliardetto/solana-go/programs/associated-token-account"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/sirupsen/logrus"

	"github.com/jask/soldash/internal/chain"
	"github.com/jask/soldash/internal/units"
	"github.com/jask/soldash/internal/wallet"
)

// Signer is the wallet session as seen by the transfer service.
type Signer interface {
	Identity() (solana.PublicKey, bool)
	SignAndSubmit(ctx context.Context, ledger wallet.Submitter, instructions ...solana.Instruction) (solana.Signature, error)
}

// TransferRequest is built per submission and never stored.
type TransferRequest struct {
	Destination string
	Quantity    string
	Asset       Asset
}

// TransferService composes, submits and confirms transfers and airdrops.
type TransferService struct {
	Ledger         chain.Ledger
	Wallet         Signer
	Accounts       *chain.AssociatedAccounts
	FaucetLamports uint64
	Logger         *logrus.Logger
}

// prepare checks for missing inputs and converts them. ErrIncomplete is
// returned for anything the caller should decline silently.
func (s *TransferService) prepare(req TransferRequest) (solana.PublicKey, solana.PublicKey, uint64, error) {
	owner, ok := s.Wallet.Identity()
	if !ok {
		return solana.PublicKey{}, solana.PublicKey{}, 0, ErrNotConnected
	}
	dest := strings.TrimSpace(req.Destination)
	if dest == "" || strings.TrimSpace(req.Quantity) == "" {
		return solana.PublicKey{}, solana.PublicKey{}, 0, ErrIncomplete
	}
	amount, err := units.ParseAmount(req.Quantity, int32(req.Asset.Decimals))
	if err != nil {
		return solana.PublicKey{}, solana.PublicKey{}, 0, err
	}
	if amount == 0 {
		return solana.PublicKey{}, solana.PublicKey{}, 0, ErrIncomplete
	}
	to, err := solana.PublicKeyFromBase58(dest)
	if err != nil {
		return solana.PublicKey{}, solana.PublicKey{}, 0, fmt.Errorf("invalid recipient: %w", err)
	}
	return owner, to, amount, nil
}

// SendNative transfers lamports to the destination and waits for confirmation.
func (s *TransferService) SendNative(ctx context.Context, req TransferRequest) (solana.Signature, error) {
	req.Asset = Asset{Symbol: req.Asset.Symbol, Decimals: nativeDecimals, Native: true}
	owner, to, lamports, err := s.prepare(req)
	if err != nil {
		return solana.Signature{}, err
	}
	ix := system.NewTransferInstruction(lamports, owner, to).Build()
	return s.submit(ctx, logrus.Fields{"asset": req.Asset.Symbol, "to": to.String(), "amount": lamports}, ix)
}

// TokenInstructions returns the instructions for a token transfer. A create
// instruction for the recipient's associated account comes first when that
// account does not exist.
func (s *TransferService) TokenInstructions(ctx context.Context, owner solana.PublicKey, to solana.PublicKey, amount uint64, asset Asset) ([]solana.Instruction, error) {
	source, err := s.Accounts.Derive(owner, asset.Mint)
	if err != nil {
		return nil, err
	}
	dest, err := s.Accounts.Derive(to, asset.Mint)
	if err != nil {
		return nil, err
	}
	exists, err := s.Ledger.AccountExists(ctx, dest)
	if err != nil {
		return nil, fmt.Errorf("check recipient token account: %w", err)
	}

	var ixs []solana.Instruction
	if !exists {
		ixs = append(ixs, associatedtokenaccount.NewCreateInstruction(owner, to, asset.Mint).Build())
	}
	ixs = append(ixs, token.NewTransferCheckedInstruction(
		amount,
		asset.Decimals,
		source,
		asset.Mint,
		dest,
		owner,
		[]solana.PublicKey{},
	).Build())
	return ixs, nil
}

// SendToken transfers a token and waits for confirmation.
func (s *TransferService) SendToken(ctx context.Context, req TransferRequest) (solana.Signature, error) {
	if req.Asset.Native {
		return s.SendNative(ctx, req)
	}
	owner, to, amount, err := s.prepare(req)
	if err != nil {
		return solana.Signature{}, err
	}
	ixs, err := s.TokenInstructions(ctx, owner, to, amount, req.Asset)
	if err != nil {
		s.logger().WithError(err).WithField("asset", req.Asset.Symbol).Warn("token transfer failed")
		return solana.Signature{}, err
	}
	return s.submit(ctx, logrus.Fields{"asset": req.Asset.Symbol, "to": to.String(), "amount": amount}, ixs...)
}

// RequestAirdrop asks the faucet for FaucetLamports and waits for confirmation.
func (s *TransferService) RequestAirdrop(ctx context.Context) (solana.Signature, error) {
	owner, ok := s.Wallet.Identity()
	if !ok {
		return solana.Signature{}, ErrNotConnected
	}
	fields := logrus.Fields{"owner": owner.String(), "lamports": s.FaucetLamports}
	sig, err := s.Ledger.RequestAirdrop(ctx, owner, s.FaucetLamports)
	if err != nil {
		s.logger().WithError(err).WithFields(fields).Warn("airdrop failed")
		return solana.Signature{}, err
	}
	if err := s.Ledger.AwaitConfirmation(ctx, sig); err != nil {
		s.logger().WithError(err).WithFields(fields).WithField("signature", sig.String()).Warn("airdrop not confirmed")
		return sig, err
	}
	return sig, nil
}

func (s *TransferService) submit(ctx context.Context, fields logrus.Fields, ixs ...solana.Instruction) (solana.Signature, error) {
	sig, err := s.Wallet.SignAndSubmit(ctx, s.Ledger, ixs...)
	if err != nil {
		s.logger().WithError(err).WithFields(fields).Warn("transfer submit failed")
		return solana.Signature{}, err
	}
	log := s.logger().WithFields(fields).WithField("signature", sig.String())
	if err := s.Ledger.AwaitConfirmation(ctx, sig); err != nil {
		log.WithError(err).Warn("transfer not confirmed")
		return sig, err
	}
	log.Info("transfer confirmed")
	return sig, nil
}

func (s *TransferService) logger() *logrus.Logger {
	if s.Logger == nil {
		return logrus.StandardLogger()
	}
	return s.Logger
}
