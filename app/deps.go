package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/gagliardetto/solana-go"
	"github.com/sirupsen/logrus"

	"github.com/jask/soldash/core"
	"github.com/jask/soldash/internal/config"
	"github.com/jask/soldash/internal/service"
	"github.com/jask/soldash/internal/wallet"
)

// Deps is everything the panes reach for. It is built once in main and
// shared by every tab.
type Deps struct {
	Session   *wallet.Session
	Balances  *service.BalanceService
	Transfers *service.TransferService
	Board     *service.MessageBoard
	Assets    []service.Asset
	Config    config.Config
	Logger    *logrus.Logger

	// Ctx is the parent of every network call. Defaults to Background.
	Ctx context.Context
	// Now defaults to time.Now.
	Now func() time.Time
}

func (d *Deps) context() context.Context {
	if d.Ctx == nil {
		return context.Background()
	}
	return d.Ctx
}

func (d *Deps) now() time.Time {
	if d.Now == nil {
		return time.Now()
	}
	return d.Now()
}

func (d *Deps) logger() *logrus.Logger {
	if d.Logger == nil {
		return logrus.StandardLogger()
	}
	return d.Logger
}

func (d *Deps) nativeAsset() service.Asset {
	for _, a := range d.Assets {
		if a.Native {
			return a
		}
	}
	return service.Asset{Symbol: "SOL", Decimals: 9, Places: 4, Native: true}
}

func (d *Deps) identity() (solana.PublicKey, bool) {
	if d.Session == nil {
		return solana.PublicKey{}, false
	}
	return d.Session.Identity()
}

func (d *Deps) connected() bool {
	_, ok := d.identity()
	return ok
}

// walletConnectedMsg and walletDisconnectedMsg reach every pane so each can
// reset or reload its own state.
type walletConnectedMsg struct {
	identity solana.PublicKey
}

type walletDisconnectedMsg struct{}

// refreshRequestMsg asks the balances pane to reload every asset.
type refreshRequestMsg struct{}

type refreshTickMsg struct{}

type balanceLoadedMsg struct {
	owner   solana.PublicKey
	assetID string
	raw     uint64
	at      time.Time
	err     error
}

type transferDoneMsg struct {
	paneID string
	amount string
	symbol string
	sig    solana.Signature
	err    error
}

type airdropRequestMsg struct{}

type airdropDoneMsg struct {
	sig solana.Signature
	err error
}

type postDoneMsg struct {
	post service.MessagePost
	err  error
}

type boardLoadedMsg struct {
	posts []service.MessagePost
	err   error
}

func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

// connectWallet loads the wallet and announces the identity to every pane.
func connectWallet(d *Deps) tea.Cmd {
	if d.Session == nil {
		return core.ErrorCmd(errors.New("no wallet configured"))
	}
	if err := d.Session.Connect(); err != nil {
		return core.ErrorCmd(fmt.Errorf("connect wallet: %w", err))
	}
	pk, _ := d.Session.Identity()
	return tea.Batch(
		core.StatusCmd("Wallet connected: "+pk.String()),
		emit(walletConnectedMsg{identity: pk}),
	)
}

func disconnectWallet(d *Deps) tea.Cmd {
	if d.Session == nil || !d.Session.Connected() {
		return core.StatusCmd("Wallet already disconnected")
	}
	d.Session.Disconnect()
	return tea.Batch(core.StatusCmd("Wallet disconnected"), emit(walletDisconnectedMsg{}))
}

// quietError reports whether err is an input or connection gap that the
// action declines without a notification.
func quietError(err error) bool {
	return errors.Is(err, service.ErrIncomplete) || errors.Is(err, service.ErrNotConnected) || errors.Is(err, wallet.ErrNoWallet)
}

// failCmd notifies that action failed, carrying the underlying message.
func failCmd(action string, err error) tea.Cmd {
	return emit(core.StatusMsg{Text: action + " failed: " + err.Error(), IsErr: true})
}

func shortSig(sig solana.Signature) string {
	s := sig.String()
	if len(s) <= 12 {
		return s
	}
	return s[:12] + "..."
}

var (
	textStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#cdd6f4"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#7f849c"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#bac2de"))
	accentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#89b4fa")).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#a6e3a1"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#fab387"))
)

// connectPlaceholder is what every pane shows without a wallet.
const connectPlaceholder = "Please connect your wallet (press c on the Wallet tab)."

func placeholder(width int) string {
	return mutedStyle.Render(ansi.Truncate(connectPlaceholder, max(1, width), "…"))
}
