// Package ledger описывает контракт кредитных профилей как внешний сервис:
// read-only вызовы и вызовы, подписываемые кошельком.
package ledger

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
)

// Handle — ссылка на зашифрованное значение, хранящееся в леджере (bytes32).
type Handle = common.Hash

// Description — метка, с которой создаются записи кредитного рейтинга.
const Description = "Encrypted Credit Score"

// BusinessData — поля записи в том виде, в каком их возвращает контракт.
type BusinessData struct {
	Name           string
	Timestamp      int64
	Creator        string
	PublicValue1   uint32
	PublicValue2   uint32
	IsVerified     bool
	DecryptedValue uint32
}

// CreateInput — аргументы createBusinessData.
type CreateInput struct {
	ID             string
	Name           string
	EncryptedValue Handle
	Proof          []byte
	PublicValue1   uint32
	PublicValue2   uint32
	Description    string
}

// Reader — read-only экземпляр контракта.
type Reader interface {
	// Address возвращает адрес контракта.
	Address() string
	GetAllBusinessIds(ctx context.Context) ([]string, error)
	GetBusinessData(ctx context.Context, id string) (BusinessData, error)
	GetEncryptedValue(ctx context.Context, id string) (Handle, error)
}

// Writer — экземпляр контракта, привязанный к подписанту.
type Writer interface {
	// Account возвращает адрес подписанта.
	Account() string
	CreateBusinessData(ctx context.Context, in CreateInput) (Tx, error)
	VerifyDecryption(ctx context.Context, id string, clearValues, proof []byte) (Tx, error)
}

// Tx — отправленная транзакция.
type Tx interface {
	Hash() string
	// Wait блокируется до подтверждения транзакции в леджере.
	Wait(ctx context.Context) error
}
