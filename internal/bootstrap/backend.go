// Package bootstrap собирает леджер и FHE-сервис по конфигурации сервера.
package bootstrap

import (
	"context"
	"fmt"
	"math/big"
	"net/http"
	"time"

	"CreditScoreZ/internal/config"
	"CreditScoreZ/internal/fhe"
	"CreditScoreZ/internal/fhe/devfhe"
	"CreditScoreZ/internal/fhe/relayer"
	"CreditScoreZ/internal/ledger"
	"CreditScoreZ/internal/ledger/devchain"
	"CreditScoreZ/internal/ledger/evm"
	"CreditScoreZ/internal/repo"

	"github.com/ethereum/go-ethereum/crypto"
)

// DevAccount — подписант dev-леджера, если SIGNER_KEY не задан.
const DevAccount = "0x00000000000000000000000000000000000DE7A1"

// RelayerTimeout — таймаут HTTP-запросов к FHE relayer.
const RelayerTimeout = 60 * time.Second

// Backend — внешние сервисы дашборда.
type Backend struct {
	Reader ledger.Reader
	Writer ledger.Writer
	FHE    fhe.Service
}

// OpenBackend открывает леджер и FHE-сервис для cfg.LedgerMode
// и возвращает (backend, cleanup, error). cleanup закрывает соединения.
func OpenBackend(ctx context.Context, cfg *config.Config) (*Backend, func() error, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	switch cfg.LedgerMode {
	case config.LedgerModeEVM:
		return openEVM(ctx, cfg)
	default:
		return openDev(cfg)
	}
}

func openDev(cfg *config.Config) (*Backend, func() error, error) {
	db, err := repo.InitDB(cfg.DatabaseDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("open dev ledger db: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("dev ledger db handle: %w", err)
	}
	cleanup := func() error { return sqlDB.Close() }

	account := DevAccount
	if cfg.SignerKey != "" {
		key, err := evm.ParseKey(cfg.SignerKey)
		if err != nil {
			_ = cleanup()
			return nil, nil, fmt.Errorf("parse signer key: %w", err)
		}
		account = crypto.PubkeyToAddress(key.PublicKey).Hex()
	}

	svc, err := devfhe.New([]byte(cfg.DevFHESecret), devfhe.WithStore(repo.NewCiphertextRepository(db)))
	if err != nil {
		_ = cleanup()
		return nil, nil, err
	}
	chain := devchain.New(repo.NewLedgerRepository(db), svc, account)
	return &Backend{Reader: chain, Writer: chain, FHE: svc}, cleanup, nil
}

func openEVM(ctx context.Context, cfg *config.Config) (*Backend, func() error, error) {
	key, err := evm.ParseKey(cfg.SignerKey)
	if err != nil {
		return nil, nil, fmt.Errorf("parse signer key: %w", err)
	}
	client, err := evm.Dial(ctx, cfg.RPCURL)
	if err != nil {
		return nil, nil, fmt.Errorf("dial %s: %w", cfg.RPCURL, err)
	}
	contract, err := evm.New(client, cfg.ContractAddress, big.NewInt(cfg.ChainID), key)
	if err != nil {
		client.Close()
		return nil, nil, err
	}
	fheSvc := relayer.New(cfg.RelayerURL, &http.Client{Timeout: RelayerTimeout})
	cleanup := func() error {
		client.Close()
		return nil
	}
	return &Backend{Reader: contract, Writer: contract, FHE: fheSvc}, cleanup, nil
}
