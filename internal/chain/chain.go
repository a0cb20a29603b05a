// Package chain wraps the network RPC endpoint used by the dashboard.
package chain

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/sirupsen/logrus"
)

var (
	// ErrAccountNotFound is the only lookup failure callers may treat specially.
	ErrAccountNotFound = errors.New("account not found")
	ErrConfirmTimeout  = errors.New("confirmation timed out")
)

// Ledger is the network RPC handle.
type Ledger interface {
	NativeBalance(ctx context.Context, owner solana.PublicKey) (uint64, error)
	TokenAccountAmount(ctx context.Context, account solana.PublicKey) (uint64, error)
	AccountExists(ctx context.Context, account solana.PublicKey) (bool, error)
	RequestAirdrop(ctx context.Context, owner solana.PublicKey, lamports uint64) (solana.Signature, error)
	LatestBlockhash(ctx context.Context) (solana.Hash, error)
	SendTransaction(ctx context.Context, tx *solana.Transaction) (solana.Signature, error)
	AwaitConfirmation(ctx context.Context, sig solana.Signature) error
}

// rpcAPI is the subset of *rpc.Client the Client uses.
type rpcAPI interface {
	GetBalance(ctx context.Context, account solana.PublicKey, commitment rpc.CommitmentType) (*rpc.GetBalanceResult, error)
	GetAccountInfoWithOpts(ctx context.Context, account solana.PublicKey, opts *rpc.GetAccountInfoOpts) (*rpc.GetAccountInfoResult, error)
	RequestAirdrop(ctx context.Context, account solana.PublicKey, lamports uint64, commitment rpc.CommitmentType) (solana.Signature, error)
	GetLatestBlockhash(ctx context.Context, commitment rpc.CommitmentType) (*rpc.GetLatestBlockhashResult, error)
	SendTransactionWithOpts(ctx context.Context, tx *solana.Transaction, opts rpc.TransactionOpts) (solana.Signature, error)
	GetSignatureStatuses(ctx context.Context, searchTransactionHistory bool, sigs ...solana.Signature) (*rpc.GetSignatureStatusesResult, error)
}

const defaultPollInterval = 500 * time.Millisecond

// Client implements Ledger over a solana-go RPC client.
type Client struct {
	rpc            rpcAPI
	commitment     rpc.CommitmentType
	confirmTimeout time.Duration
	pollInterval   time.Duration
	logger         *logrus.Logger
}

// NewClient dials nothing; the first request opens the HTTP connection.
func NewClient(endpoint, commitment string, confirmTimeout time.Duration, logger *logrus.Logger) *Client {
	return newClient(rpc.New(endpoint), commitment, confirmTimeout, logger)
}

func newClient(api rpcAPI, commitment string, confirmTimeout time.Duration, logger *logrus.Logger) *Client {
	if logger == nil {
		logger = logrus.New()
	}
	return &Client{
		rpc:            api,
		commitment:     ParseCommitment(commitment),
		confirmTimeout: confirmTimeout,
		pollInterval:   defaultPollInterval,
		logger:         logger,
	}
}

// ParseCommitment maps a config value to an RPC commitment. Unknown values
// fall back to confirmed.
func ParseCommitment(s string) rpc.CommitmentType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "processed":
		return rpc.CommitmentProcessed
	case "finalized":
		return rpc.CommitmentFinalized
	default:
		return rpc.CommitmentConfirmed
	}
}

func (c *Client) NativeBalance(ctx context.Context, owner solana.PublicKey) (uint64, error) {
	res, err := c.rpc.GetBalance(ctx, owner, c.commitment)
	if err != nil {
		return 0, fmt.Errorf("get balance %s: %w", owner, err)
	}
	return res.Value, nil
}

func (c *Client) accountData(ctx context.Context, account solana.PublicKey) ([]byte, error) {
	res, err := c.rpc.GetAccountInfoWithOpts(ctx, account, &rpc.GetAccountInfoOpts{
		Encoding:   solana.EncodingBase64,
		Commitment: c.commitment,
	})
	if errors.Is(err, rpc.ErrNotFound) || (err == nil && (res == nil || res.Value == nil)) {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get account %s: %w", account, err)
	}
	if res.Value.Data == nil {
		return nil, nil
	}
	return res.Value.Data.GetBinary(), nil
}

// TokenAccountAmount reads the raw amount held by a token account.
func (c *Client) TokenAccountAmount(ctx context.Context, account solana.PublicKey) (uint64, error) {
	data, err := c.accountData(ctx, account)
	if err != nil {
		return 0, err
	}
	var acct token.Account
	if err := bin.NewBinDecoder(data).Decode(&acct); err != nil {
		return 0, fmt.Errorf("decode token account %s: %w", account, err)
	}
	return acct.Amount, nil
}

func (c *Client) AccountExists(ctx context.Context, account solana.PublicKey) (bool, error) {
	_, err := c.accountData(ctx, account)
	if errors.Is(err, ErrAccountNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (c *Client) RequestAirdrop(ctx context.Context, owner solana.PublicKey, lamports uint64) (solana.Signature, error) {
	sig, err := c.rpc.RequestAirdrop(ctx, owner, lamports, c.commitment)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("request airdrop: %w", err)
	}
	c.logger.WithFields(logrus.Fields{"owner": owner.String(), "lamports": lamports, "signature": sig.String()}).Info("airdrop requested")
	return sig, nil
}

func (c *Client) LatestBlockhash(ctx context.Context) (solana.Hash, error) {
	res, err := c.rpc.GetLatestBlockhash(ctx, c.commitment)
	if err != nil {
		return solana.Hash{}, fmt.Errorf("get latest blockhash: %w", err)
	}
	if res == nil || res.Value == nil {
		return solana.Hash{}, fmt.Errorf("get latest blockhash: empty response")
	}
	return res.Value.Blockhash, nil
}

func (c *Client) SendTransaction(ctx context.Context, tx *solana.Transaction) (solana.Signature, error) {
	sig, err := c.rpc.SendTransactionWithOpts(ctx, tx, rpc.TransactionOpts{
		PreflightCommitment: c.commitment,
	})
	if err != nil {
		return solana.Signature{}, fmt.Errorf("send transaction: %w", err)
	}
	c.logger.WithField("signature", sig.String()).Debug("transaction sent")
	return sig, nil
}

// AwaitConfirmation polls the signature status until it reaches the client's
// commitment, reports an on-chain error, or the confirm timeout elapses.
func (c *Client) AwaitConfirmation(ctx context.Context, sig solana.Signature) error {
	if c.confirmTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.confirmTimeout)
		defer cancel()
	}

	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		done, err := c.checkStatus(ctx, sig)
		if done || err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return fmt.Errorf("%w: %s", ErrConfirmTimeout, sig)
			}
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (c *Client) checkStatus(ctx context.Context, sig solana.Signature) (bool, error) {
	res, err := c.rpc.GetSignatureStatuses(ctx, false, sig)
	if err != nil {
		if ctx.Err() != nil {
			return false, nil
		}
		c.logger.WithError(err).WithField("signature", sig.String()).Debug("signature status poll failed")
		return false, nil
	}
	if res == nil || len(res.Value) == 0 || res.Value[0] == nil {
		return false, nil
	}
	st := res.Value[0]
	if st.Err != nil {
		return true, fmt.Errorf("transaction %s failed: %v", sig, st.Err)
	}
	return reached(st.ConfirmationStatus, c.commitment), nil
}

func reached(status rpc.ConfirmationStatusType, want rpc.CommitmentType) bool {
	rank := map[string]int{"processed": 1, "confirmed": 2, "finalized": 3}
	return rank[string(status)] >= rank[string(want)] && rank[string(status)] > 0
}
