package store

import (
	"context"
	"errors"
	"fmt"

	"empire-builder/internal/domain"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore keeps the record as one row of the saves table.
type GormStore struct {
	DB   *gorm.DB
	Name string
}

func (s *GormStore) Read(ctx context.Context) ([]byte, error) {
	var rec domain.SaveRecord
	if err := s.DB.WithContext(ctx).Where("name = ?", s.Name).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read save %q: %w", s.Name, err)
	}
	return []byte(rec.Payload), nil
}

// Write upserts the row in one statement so readers never see a half-written save.
func (s *GormStore) Write(ctx context.Context, payload []byte) error {
	rec := domain.SaveRecord{Name: s.Name, Payload: datatypes.JSON(payload)}
	err := s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updatedAt"}),
	}).Create(&rec).Error
	if err != nil {
		return fmt.Errorf("write save %q: %w", s.Name, err)
	}
	return nil
}

func (s *GormStore) Delete(ctx context.Context) error {
	if err := s.DB.WithContext(ctx).Where("name = ?", s.Name).Delete(&domain.SaveRecord{}).Error; err != nil {
		return fmt.Errorf("delete save %q: %w", s.Name, err)
	}
	return nil
}

func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
