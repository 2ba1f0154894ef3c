package repo

import (
	"CreditScoreZ/internal/model"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CiphertextRepository хранит шифртексты dev FHE-сервиса, чтобы записи
// оставались расшифровываемыми после перезапуска сервера.
type CiphertextRepository struct {
	db *gorm.DB
}

func NewCiphertextRepository(db *gorm.DB) *CiphertextRepository {
	return &CiphertextRepository{db: db}
}

// SaveCiphertext сохраняет шифртекст; повторное сохранение того же handle игнорируется.
func (r *CiphertextRepository) SaveCiphertext(ctx context.Context, c *model.DevCiphertext) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "handle"}},
		DoNothing: true,
	}).Create(c).Error
}

// GetCiphertext возвращает шифртекст или gorm.ErrRecordNotFound.
func (r *CiphertextRepository) GetCiphertext(ctx context.Context, handle string) (*model.DevCiphertext, error) {
	var c model.DevCiphertext
	if err := r.db.WithContext(ctx).Where("handle = ?", handle).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}
