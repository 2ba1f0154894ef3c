package model

import "time"

// LedgerEntry — серверная модель записи dev-леджера (gorm).
type LedgerEntry struct {
	BusinessID string `gorm:"primaryKey"`

	Name        string `gorm:"not null"`
	Description string

	EncryptedValue string `gorm:"not null"` // hex handle зашифрованного значения
	PublicValue1   uint32 `gorm:"not null;default:0"`
	PublicValue2   uint32 `gorm:"not null;default:0"`
	Creator        string `gorm:"not null;index"`
	Timestamp      int64  `gorm:"not null"`

	IsVerified     bool   `gorm:"not null;default:false"`
	DecryptedValue uint32 `gorm:"not null;default:0"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
