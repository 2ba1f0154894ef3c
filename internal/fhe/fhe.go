// Package fhe описывает внешний FHE-сервис: шифрование входных значений
// и публичную расшифровку с доказательством.
package fhe

import (
	"context"
	"errors"
	"math/big"

	"CreditScoreZ/internal/ledger"
)

// ErrNotInitialized возвращается, если Initialize ещё не выполнен успешно.
var ErrNotInitialized = errors.New("fhe: service is not initialized")

// EncryptedInput — зашифрованное значение и доказательство его корректности.
type EncryptedInput struct {
	Handle ledger.Handle
	Proof  []byte
}

// DecryptionResult — промежуточный результат расшифровки, который затем
// отправляется в леджер на проверку.
type DecryptionResult struct {
	ClearValues           map[ledger.Handle]*big.Int
	AbiEncodedClearValues []byte
	DecryptionProof       []byte
}

// Service — клиент FHE SDK / relayer.
type Service interface {
	Initialize(ctx context.Context) error
	Encrypt(ctx context.Context, contract, account string, value uint32) (EncryptedInput, error)
	PublicDecrypt(ctx context.Context, handles []ledger.Handle, contract string) (DecryptionResult, error)
}
