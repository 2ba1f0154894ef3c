package service

import (
	"context"
	"fmt"

	"CreditScoreZ/internal/ledger"
	"CreditScoreZ/internal/model"
	"CreditScoreZ/internal/state"

	"golang.org/x/sync/errgroup"
)

// Refresh перечитывает все записи из леджера.
func (d *Dashboard) Refresh(ctx context.Context) error {
	if _, err := d.ready(); err != nil {
		return err
	}
	return d.load(ctx)
}

// load заменяет список записей. Ответ, обогнанный более новой загрузкой, отбрасывается редьюсером.
func (d *Dashboard) load(ctx context.Context) error {
	_, next := d.store.Dispatch(state.LoadStarted{})
	epoch := next.LoadEpoch

	records, err := d.fetchAll(ctx)
	if err != nil {
		d.store.Dispatch(state.LoadFailed{Epoch: epoch})
		d.status.Error("Failed to load data")
		d.logger.Errorw("load records failed", "epoch", epoch, "error", err)
		return fmt.Errorf("load records: %w", err)
	}
	d.store.Dispatch(state.RecordsLoaded{Epoch: epoch, Records: records})
	return nil
}

// fetchAll читает id и затем каждую запись. Ошибка отдельной записи пропускается.
func (d *Dashboard) fetchAll(ctx context.Context) ([]model.Record, error) {
	ids, err := d.reader.GetAllBusinessIds(ctx)
	if err != nil {
		return nil, err
	}

	slots := make([]*model.Record, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.loadLimit)
	for i, id := range ids {
		g.Go(func() error {
			bd, err := d.reader.GetBusinessData(gctx, id)
			if err != nil {
				d.logger.Warnw("skip record", "id", id, "error", err)
				return nil
			}
			r := toRecord(id, bd)
			slots[i] = &r
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	records := make([]model.Record, 0, len(ids))
	for _, r := range slots {
		if r != nil {
			records = append(records, *r)
		}
	}
	return records, nil
}

func toRecord(id string, bd ledger.BusinessData) model.Record {
	return model.Record{
		ID:             id,
		Name:           bd.Name,
		Timestamp:      bd.Timestamp,
		Creator:        bd.Creator,
		PublicValue1:   bd.PublicValue1,
		PublicValue2:   bd.PublicValue2,
		IsVerified:     bd.IsVerified,
		DecryptedValue: bd.DecryptedValue,
	}
}
