// Package devchain — локальный леджер для dev-режима: те же вызовы, что у контракта,
// состояние хранится в БД через repo.LedgerRepository. Транзакции исполняются
// сразу при отправке, Wait только проверяет контекст.
package devchain

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"CreditScoreZ/internal/fhe"
	"CreditScoreZ/internal/ledger"
	"CreditScoreZ/internal/model"
	"CreditScoreZ/internal/repo"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultAddress — адрес контракта в dev-режиме.
const DefaultAddress = "0x00000000000000000000000000000000000C5C02"

// Verifier проверяет доказательства FHE-сервиса (в dev-режиме это devfhe.Service).
type Verifier interface {
	VerifyInput(handle ledger.Handle, contract, account string, proof []byte) error
	VerifyDecryption(handles []ledger.Handle, clearValues, proof []byte) error
}

// Ledger реализует ledger.Reader и ledger.Writer.
type Ledger struct {
	repo     repo.LedgerRepository
	verifier Verifier
	address  string
	account  string
	now      func() time.Time

	// mu упорядочивает записи, как блоки в настоящей цепочке
	mu sync.Mutex
}

var (
	_ ledger.Reader = (*Ledger)(nil)
	_ ledger.Writer = (*Ledger)(nil)
)

// New создаёт dev-леджер. account — адрес подписанта, от имени которого идут записи.
func New(r repo.LedgerRepository, v Verifier, account string) *Ledger {
	return &Ledger{
		repo:     r,
		verifier: v,
		address:  DefaultAddress,
		account:  common.HexToAddress(account).Hex(),
		now:      time.Now,
	}
}

func (l *Ledger) Address() string { return l.address }
func (l *Ledger) Account() string { return l.account }

func (l *Ledger) GetAllBusinessIds(ctx context.Context) ([]string, error) {
	return l.repo.ListIDs(ctx)
}

func (l *Ledger) GetBusinessData(ctx context.Context, id string) (ledger.BusinessData, error) {
	e, err := l.get(ctx, id)
	if err != nil {
		return ledger.BusinessData{}, err
	}
	return ledger.BusinessData{
		Name:           e.Name,
		Timestamp:      e.Timestamp,
		Creator:        e.Creator,
		PublicValue1:   e.PublicValue1,
		PublicValue2:   e.PublicValue2,
		IsVerified:     e.IsVerified,
		DecryptedValue: e.DecryptedValue,
	}, nil
}

func (l *Ledger) GetEncryptedValue(ctx context.Context, id string) (ledger.Handle, error) {
	e, err := l.get(ctx, id)
	if err != nil {
		return ledger.Handle{}, err
	}
	return common.HexToHash(e.EncryptedValue), nil
}

// CreateBusinessData проверяет доказательство входа и создаёт запись.
func (l *Ledger) CreateBusinessData(ctx context.Context, in ledger.CreateInput) (ledger.Tx, error) {
	if in.ID == "" || in.Name == "" {
		return nil, errors.New("devchain: empty id or name")
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.verifier.VerifyInput(in.EncryptedValue, l.address, l.account, in.Proof); err != nil {
		return nil, fmt.Errorf("execution reverted: %w", err)
	}
	created, err := l.repo.CreateIfAbsent(ctx, &model.LedgerEntry{
		BusinessID:     in.ID,
		Name:           in.Name,
		Description:    in.Description,
		EncryptedValue: in.EncryptedValue.Hex(),
		PublicValue1:   in.PublicValue1,
		PublicValue2:   in.PublicValue2,
		Creator:        l.account,
		Timestamp:      l.now().Unix(),
	})
	if err != nil {
		return nil, err
	}
	if !created {
		return nil, fmt.Errorf("execution reverted: %w", ledger.ErrAlreadyExists)
	}
	return newTx(), nil
}

// VerifyDecryption проверяет доказательство расшифровки и фиксирует значение.
func (l *Ledger) VerifyDecryption(ctx context.Context, id string, clearValues, proof []byte) (ledger.Tx, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e, err := l.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if e.IsVerified {
		return nil, fmt.Errorf("execution reverted: %w", ledger.ErrAlreadyVerified)
	}
	handle := common.HexToHash(e.EncryptedValue)
	if err := l.verifier.VerifyDecryption([]ledger.Handle{handle}, clearValues, proof); err != nil {
		return nil, fmt.Errorf("execution reverted: %w", err)
	}
	values, err := fhe.DecodeClearValues(clearValues, 1)
	if err != nil {
		return nil, fmt.Errorf("execution reverted: %w", err)
	}
	if !values[0].IsUint64() || values[0].Uint64() > uint64(^uint32(0)) {
		return nil, errors.New("execution reverted: clear value out of range")
	}
	updated, err := l.repo.MarkVerified(ctx, id, uint32(values[0].Uint64()))
	if err != nil {
		return nil, err
	}
	if !updated {
		// другая транзакция успела раньше
		return nil, fmt.Errorf("execution reverted: %w", ledger.ErrAlreadyVerified)
	}
	return newTx(), nil
}

func (l *Ledger) get(ctx context.Context, id string) (*model.LedgerEntry, error) {
	e, err := l.repo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", ledger.ErrNotFound, id)
	}
	return e, err
}

// tx — уже исполненная транзакция dev-леджера.
type tx struct {
	hash string
}

func newTx() *tx {
	return &tx{hash: uuid.NewString()}
}

func (t *tx) Hash() string { return t.hash }

func (t *tx) Wait(ctx context.Context) error {
	return ctx.Err()
}
