package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/jask/soldash/app"
	"github.com/jask/soldash/core"
	"github.com/jask/soldash/internal/chain"
	"github.com/jask/soldash/internal/config"
	"github.com/jask/soldash/internal/database"
	"github.com/jask/soldash/internal/database/repository"
	"github.com/jask/soldash/internal/logging"
	"github.com/jask/soldash/internal/service"
	"github.com/jask/soldash/internal/wallet"
)

// associatedCacheSize bounds the derived token-address cache.
const associatedCacheSize = 256

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, logFile, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("logging: %v", err)
	}
	defer logFile.Close()

	db, err := database.OpenSessionStore()
	if err != nil {
		log.Fatalf("session store: %v", err)
	}
	defer db.Close()

	assets, err := service.AssetsFromConfig(cfg.Assets)
	if err != nil {
		log.Fatalf("assets: %v", err)
	}
	accounts, err := chain.NewAssociatedAccounts(associatedCacheSize)
	if err != nil {
		log.Fatalf("associated accounts: %v", err)
	}

	ledger := chain.NewClient(cfg.Network.RPCEndpoint, cfg.Network.Commitment, cfg.Network.ConfirmTimeout, logger)
	session := wallet.NewSession(wallet.ConfiguredLoader(cfg.Wallet.SecretKey, cfg.Wallet.KeypairPath), logger)

	board := service.NewMessageBoard(
		repository.NewMessageRepo(db),
		service.SimulatedPoster{Delay: cfg.Board.PostDelay},
		cfg.Board,
		logger,
	)
	if err := board.Seed(ctx, cfg.Board.Seed, time.Now()); err != nil {
		log.Fatalf("seed board: %v", err)
	}

	deps := &app.Deps{
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
		Ctx:    ctx,
	}

	if cfg.Wallet.AutoConnect {
		// A missing keypair is not fatal; the user can connect later.
		if err := session.Connect(); err != nil {
			logger.WithError(err).Warn("auto connect skipped")
		}
	}

	bindings := app.KeyBindings(deps)
	overrides, err := config.LoadKeybindings(cfg.UI.KeybindingsPath)
	if err != nil {
		log.Fatalf("keybindings: %v", err)
	}
	if len(overrides) > 0 {
		bindings, err = core.ApplyActionKeybindings(bindings, overrides)
		if err != nil {
			log.Fatalf("keybindings %s: %v", cfg.UI.KeybindingsPath, err)
		}
	}

	model := core.NewModel(app.Tabs(deps), core.NewKeyRegistry(bindings), core.NewCommandRegistry(nil))
	app.ConfigureModel(&model, deps)

	logger.WithFields(logrus.Fields{
		"endpoint": cfg.Network.RPCEndpoint,
		"assets":   len(assets),
	}).Info("soldash starting")

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
