package model

import "time"

// DevCiphertext — запечатанное значение dev FHE-сервиса, ключ — hex handle.
type DevCiphertext struct {
	Handle string `gorm:"primaryKey"`
	Nonce  []byte `gorm:"not null"`
	Cipher []byte `gorm:"not null"`
	AAD    []byte `gorm:"column:aad"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
}
