package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"CreditScoreZ/internal/ledger"
	"CreditScoreZ/internal/model"
	"CreditScoreZ/internal/state"

	"github.com/google/uuid"
)

// CreateForm — поля формы создания профиля в том виде, в каком их ввёл пользователь.
type CreateForm struct {
	Name     string `json:"name"`
	Score    string `json:"score"`
	Activity string `json:"activity"`
}

// CreateResult — итог успешного создания.
type CreateResult struct {
	ID     string `json:"id"`
	TxHash string `json:"tx_hash"`
}

// parse проверяет форму: все поля непустые, рейтинг — только цифры,
// активность — ведущее целое (нечитаемое значение даёт 0).
func (f CreateForm) parse() (score, activity uint32, err error) {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, f.Score)
	if f.Name == "" || digits == "" || f.Activity == "" {
		return 0, 0, ErrInvalidForm
	}
	v, err := strconv.ParseUint(digits, 10, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: score out of range", ErrInvalidForm)
	}
	a, err := leadingUint32(f.Activity)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: activity out of range", ErrInvalidForm)
	}
	return uint32(v), a, nil
}

// leadingUint32 разбирает ведущее неотрицательное целое: " 7 of 10" → 7, "abc" → 0, "-3" → 0.
func leadingUint32(s string) (uint32, error) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	s = strings.TrimPrefix(s, "+")
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, nil
	}
	v, err := strconv.ParseUint(s[:end], 10, 32)
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}

// Create шифрует рейтинг, отправляет запись в леджер и ждёт подтверждения.
func (d *Dashboard) Create(ctx context.Context, form CreateForm) (*CreateResult, error) {
	s, err := d.ready()
	if err != nil {
		return nil, err
	}
	score, activity, err := form.parse()
	if err != nil {
		d.status.Error("Please fill in all fields")
		return nil, err
	}

	d.status.Pending("Creating credit score with Zama FHE...")
	id := fmt.Sprintf("score-%d", d.now().UnixMilli())
	contract := d.contract(s)

	enc, err := d.fhe.Encrypt(ctx, contract, s.Account, score)
	if err != nil {
		return nil, d.createFailed(id, fmt.Errorf("encrypt: %w", err))
	}
	tx, err := d.writer.CreateBusinessData(ctx, ledger.CreateInput{
		ID:             id,
		Name:           form.Name,
		EncryptedValue: enc.Handle,
		Proof:          enc.Proof,
		PublicValue1:   activity,
		PublicValue2:   0,
		Description:    ledger.Description,
	})
	if err != nil {
		return nil, d.createFailed(id, err)
	}

	d.status.Pending("Waiting for transaction confirmation...")
	if err := tx.Wait(ctx); err != nil {
		return nil, d.createFailed(id, err)
	}
	d.logger.Infow("credit profile created", "id", id, "tx", tx.Hash())

	d.store.Dispatch(state.HistoryAppended{Entry: model.HistoryEntry{
		ID:        uuid.NewString(),
		Type:      model.HistoryCreate,
		Timestamp: d.now(),
		Name:      form.Name,
		Score:     score,
	}})
	d.status.Success("Credit score created successfully!")

	if err := d.load(ctx); err != nil {
		d.logger.Warnw("refresh after create failed", "id", id, "error", err)
	}
	d.store.Dispatch(state.CreateClosed{})
	return &CreateResult{ID: id, TxHash: tx.Hash()}, nil
}

func (d *Dashboard) createFailed(id string, err error) error {
	msg := "Submission failed: " + err.Error()
	if ledger.IsUserRejected(err) {
		msg = "Transaction rejected by user"
	}
	d.status.Error(msg)
	d.logger.Errorw("create failed", "id", id, "error", err)
	return fmt.Errorf("create %s: %w", id, err)
}

// OpenCreate показывает форму создания.
func (d *Dashboard) OpenCreate() error {
	if _, err := d.ready(); err != nil {
		return err
	}
	d.store.Dispatch(state.CreateOpened{})
	return nil
}

// CloseCreate скрывает форму; идущий Create при этом не отменяется.
func (d *Dashboard) CloseCreate() {
	d.store.Dispatch(state.CreateClosed{})
}
