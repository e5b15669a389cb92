package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"terrarium-api/internal/models"
)

// UpsertCommand sets the pending command for a device as a single atomic
// insert-or-update keyed on the device_id unique index. Concurrent calls for
// the same device resolve last-write-wins at the storage layer; there is no
// read-modify-write window.
func (s *Store) UpsertCommand(ctx context.Context, deviceID, command string) error {
	entry := models.DeviceCommand{
		DeviceID:  deviceID,
		Command:   command,
		UpdatedAt: time.Now().UTC(),
	}
	return s.orm.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "device_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"command", "updated_at"}),
		}).
		Create(&entry).Error
}

// PendingCommand returns the command row for a device, or ErrNotFound when no
// command has ever been set. The row is not modified by reading it: delivery
// is repeat-until-superseded, so polls keep observing the same value until an
// upsert replaces it.
func (s *Store) PendingCommand(ctx context.Context, deviceID string) (*models.DeviceCommand, error) {
	var entry models.DeviceCommand
	err := s.orm.WithContext(ctx).
		Where("device_id = ?", deviceID).
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}
