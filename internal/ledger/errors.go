package ledger

import (
	"errors"
	"strings"
)

var (
	// ErrAlreadyVerified — запись уже расшифрована и проверена в леджере.
	ErrAlreadyVerified = errors.New("Data already verified")
	// ErrUserRejected — пользователь отклонил подпись транзакции.
	ErrUserRejected = errors.New("user rejected transaction")
	// ErrNotFound — записи с таким id нет.
	ErrNotFound = errors.New("Business data does not exist")
	// ErrAlreadyExists — запись с таким id уже создана.
	ErrAlreadyExists = errors.New("Business data already exists")
	// ErrReverted — транзакция включена в блок, но откатилась.
	ErrReverted = errors.New("transaction reverted")
)

// IsAlreadyVerified распознаёт гонку "уже проверено" как по типу ошибки,
// так и по тексту revert-причины от узла.
func IsAlreadyVerified(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, ErrAlreadyVerified) || strings.Contains(err.Error(), ErrAlreadyVerified.Error())
}

// IsUserRejected распознаёт отказ пользователя от подписи.
func IsUserRejected(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrUserRejected) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "user rejected") || strings.Contains(msg, "user denied")
}

// IsNotFound распознаёт отсутствие записи.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, ErrNotFound) || strings.Contains(err.Error(), ErrNotFound.Error())
}
