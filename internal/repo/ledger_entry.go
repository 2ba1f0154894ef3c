package repo

import (
	"CreditScoreZ/internal/model"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LedgerRepository — доступ к записям dev-леджера.
type LedgerRepository interface {
	// CreateIfAbsent создаёт запись. Если запись с таким id уже есть — ничего не делает
	// и возвращает created=false.
	CreateIfAbsent(ctx context.Context, e *model.LedgerEntry) (created bool, err error)

	// ListIDs возвращает id всех записей в порядке создания.
	ListIDs(ctx context.Context) ([]string, error)

	// GetByID возвращает запись или gorm.ErrRecordNotFound.
	GetByID(ctx context.Context, id string) (*model.LedgerEntry, error)

	// MarkVerified фиксирует расшифрованное значение, только если запись ещё не проверена.
	// updated=false означает, что записи нет или она уже проверена.
	MarkVerified(ctx context.Context, id string, value uint32) (updated bool, err error)
}

type ledgerRepo struct {
	db *gorm.DB
}

// NewLedgerRepository создаёт реализацию LedgerRepository поверх gorm.
func NewLedgerRepository(db *gorm.DB) LedgerRepository {
	return &ledgerRepo{db: db}
}

func (r *ledgerRepo) CreateIfAbsent(ctx context.Context, e *model.LedgerEntry) (bool, error) {
	tx := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "business_id"}},
		DoNothing: true,
	}).Create(e)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (r *ledgerRepo) ListIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&model.LedgerEntry{}).
		Order("created_at ASC").
		Order("business_id ASC").
		Pluck("business_id", &ids).Error
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

func (r *ledgerRepo) GetByID(ctx context.Context, id string) (*model.LedgerEntry, error) {
	var e model.LedgerEntry
	if err := r.db.WithContext(ctx).Where("business_id = ?", id).First(&e).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *ledgerRepo) MarkVerified(ctx context.Context, id string, value uint32) (bool, error) {
	tx := r.db.WithContext(ctx).
		Model(&model.LedgerEntry{}).
		Where("business_id = ? AND is_verified = ?", id, false).
		Updates(map[string]any{"is_verified": true, "decrypted_value": value})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}
