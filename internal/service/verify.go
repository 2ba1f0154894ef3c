package service

import (
	"context"
	"errors"
	"fmt"

	"CreditScoreZ/internal/fhe"
	"CreditScoreZ/internal/ledger"
	"CreditScoreZ/internal/model"
	"CreditScoreZ/internal/state"

	"github.com/google/uuid"
	"github.com/holiman/uint256"
)

// VerifyResult — итог проверки расшифровки. Value == nil, если значение неизвестно.
type VerifyResult struct {
	ID              string  `json:"id"`
	Value           *uint32 `json:"value,omitempty"`
	AlreadyVerified bool    `json:"already_verified"`
	// Cleared — ToggleDecrypt сбросил локально расшифрованное значение.
	Cleared bool   `json:"cleared,omitempty"`
	TxHash  string `json:"tx_hash,omitempty"`
}

// Verify расшифровывает значение записи с доказательством и фиксирует его в леджере.
// Для уже проверенной записи возвращает сохранённое значение без записи в леджер.
func (d *Dashboard) Verify(ctx context.Context, id string) (*VerifyResult, error) {
	s, err := d.ready()
	if err != nil {
		return nil, err
	}

	bd, err := d.reader.GetBusinessData(ctx, id)
	if err != nil {
		return d.verifyFailed(ctx, id, err)
	}
	if bd.IsVerified {
		v := bd.DecryptedValue
		d.status.Success("Data already verified on-chain")
		return &VerifyResult{ID: id, Value: &v, AlreadyVerified: true}, nil
	}

	handle, err := d.reader.GetEncryptedValue(ctx, id)
	if err != nil {
		return d.verifyFailed(ctx, id, err)
	}
	res, err := d.fhe.PublicDecrypt(ctx, []ledger.Handle{handle}, d.contract(s))
	if err != nil {
		return d.verifyFailed(ctx, id, fmt.Errorf("public decrypt: %w", err))
	}
	value, err := clearValue(res, handle)
	if err != nil {
		return d.verifyFailed(ctx, id, err)
	}

	tx, err := d.writer.VerifyDecryption(ctx, id, res.AbiEncodedClearValues, res.DecryptionProof)
	if err != nil {
		return d.verifyFailed(ctx, id, err)
	}
	d.status.Pending("Verifying decryption on-chain...")
	if err := tx.Wait(ctx); err != nil {
		return d.verifyFailed(ctx, id, err)
	}
	d.logger.Infow("decryption verified", "id", id, "tx", tx.Hash())

	d.store.Dispatch(state.HistoryAppended{Entry: model.HistoryEntry{
		ID:        uuid.NewString(),
		Type:      model.HistoryDecrypt,
		Timestamp: d.now(),
		Score:     value,
	}})
	if err := d.load(ctx); err != nil {
		d.logger.Warnw("refresh after verify failed", "id", id, "error", err)
	}
	d.status.Success("Data decrypted and verified successfully!")
	return &VerifyResult{ID: id, Value: &value, TxHash: tx.Hash()}, nil
}

// verifyFailed разбирает ошибку: "Data already verified" — это успех без значения.
func (d *Dashboard) verifyFailed(ctx context.Context, id string, err error) (*VerifyResult, error) {
	if ledger.IsAlreadyVerified(err) {
		d.status.Success("Data is already verified on-chain")
		d.logger.Infow("record verified concurrently", "id", id)
		if lerr := d.load(ctx); lerr != nil {
			d.logger.Warnw("refresh after verify failed", "id", id, "error", lerr)
		}
		return &VerifyResult{ID: id, AlreadyVerified: true}, nil
	}
	d.status.Error("Decryption failed: " + err.Error())
	d.logger.Errorw("verify failed", "id", id, "error", err)
	return nil, fmt.Errorf("verify %s: %w", id, err)
}

// clearValue достаёт значение handle из результата расшифровки; оно должно влезать в uint32.
func clearValue(res fhe.DecryptionResult, handle ledger.Handle) (uint32, error) {
	v, ok := res.ClearValues[handle]
	if !ok || v == nil {
		return 0, fmt.Errorf("no clear value for handle %s", handle.Hex())
	}
	if v.Sign() < 0 {
		return 0, errors.New("negative clear value")
	}
	u, overflow := uint256.FromBig(v)
	if overflow || !u.IsUint64() || u.Uint64() > uint64(^uint32(0)) {
		return 0, fmt.Errorf("clear value %s does not fit uint32", v)
	}
	return uint32(u.Uint64()), nil
}

// ToggleDecrypt для выбранной записи: сбрасывает локальное значение, если оно есть,
// иначе запускает Verify и запоминает результат.
func (d *Dashboard) ToggleDecrypt(ctx context.Context) (*VerifyResult, error) {
	s, err := d.ready()
	if err != nil {
		return nil, err
	}
	if s.SelectedID == "" {
		return nil, ErrNoSelection
	}
	if s.LocalDecrypted != nil {
		d.store.Dispatch(state.LocalDecryptCleared{})
		return &VerifyResult{ID: s.SelectedID, Cleared: true}, nil
	}

	res, err := d.Verify(ctx, s.SelectedID)
	if err != nil {
		return nil, err
	}
	if res.Value != nil {
		d.store.Dispatch(state.LocalDecrypted{ID: res.ID, Value: *res.Value})
	}
	return res, nil
}
