package gormrepo

import (
	"context"
	"errors"

	"runeforge/internal/adapter/repo/gorm/model"
	"runeforge/internal/app/ports"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SaveRepo struct {
	db *gorm.DB
}

func NewSaveRepo(db *gorm.DB) SaveRepo {
	return SaveRepo{db: db}
}

// Put upserts the whole snapshot; a save is never partially updated.
func (r SaveRepo) Put(ctx context.Context, rec ports.SaveRecord) error {
	row := model.PlayerSave{
		PlayerID:      rec.PlayerID,
		SchemaVersion: int32(rec.SchemaVersion),
		Payload:       rec.Payload,
		SavedAt:       rec.SavedAt,
	}
	return getDBFromCtx(ctx, r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "player_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"schema_version", "payload", "saved_at"}),
		}).
		Create(&row).Error
}

func (r SaveRepo) Get(ctx context.Context, playerID string) (ports.SaveRecord, error) {
	var m model.PlayerSave
	if err := getDBFromCtx(ctx, r.db).Where("player_id = ?", playerID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.SaveRecord{}, ports.ErrNotFound
		}
		return ports.SaveRecord{}, err
	}
	return ports.SaveRecord{
		PlayerID:      m.PlayerID,
		Payload:       m.Payload,
		SchemaVersion: int(m.SchemaVersion),
		SavedAt:       m.SavedAt,
	}, nil
}

func (r SaveRepo) Delete(ctx context.Context, playerID string) error {
	res := getDBFromCtx(ctx, r.db).Where("player_id = ?", playerID).Delete(&model.PlayerSave{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}
