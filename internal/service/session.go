package service

import (
	"context"
	"fmt"

	"CreditScoreZ/internal/state"
)

// Connect подключает кошелёк подписанта и один раз запускает инициализацию FHE.
// Повторный вызов во время инициализации ничего не делает.
func (d *Dashboard) Connect(ctx context.Context) error {
	account := d.writer.Account()
	if account == "" {
		return ErrNoAccount
	}
	d.store.Dispatch(state.WalletConnected{Account: account})

	prev, next := d.store.Dispatch(state.FHEInitRequested{})
	if prev.FHEInitializing || !next.FHEInitializing {
		// уже инициализирован или инициализация идёт в другом запросе
		return nil
	}

	if err := d.fhe.Initialize(ctx); err != nil {
		d.store.Dispatch(state.FHEInitFinished{OK: false})
		d.status.Error("FHEVM initialization failed")
		d.logger.Errorw("fhe initialization failed", "account", account, "error", err)
		return fmt.Errorf("initialize fhe: %w", err)
	}
	d.store.Dispatch(state.FHEInitFinished{OK: true})
	d.logger.Infow("fhe initialized", "account", account)

	if err := d.load(ctx); err != nil {
		d.logger.Warnw("first load failed", "error", err)
	}
	d.store.Dispatch(state.ContractResolved{Address: d.reader.Address()})
	return nil
}

// Disconnect закрывает шлюз и сбрасывает данные сессии.
func (d *Dashboard) Disconnect() {
	d.store.Dispatch(state.WalletDisconnected{})
	d.logger.Infow("wallet disconnected")
}
