package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"terrarium-api/internal/models"
)

// HistoryLimit bounds the recent-history read. Callers needing more are out
// of scope for this interface.
const HistoryLimit = 100

// InsertReading appends one sensor reading.
func (s *Store) InsertReading(ctx context.Context, r *models.SensorReading) error {
	return s.orm.WithContext(ctx).Create(r).Error
}

// LatestReading returns the reading with the maximum timestamp for a device,
// or ErrNotFound if the device has never reported.
func (s *Store) LatestReading(ctx context.Context, deviceID string) (*models.SensorReading, error) {
	var r models.SensorReading
	err := s.orm.WithContext(ctx).
		Where("device_id = ?", deviceID).
		Order("timestamp DESC, id DESC").
		First(&r).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// RecentReadings returns up to HistoryLimit readings for a device, newest
// first. A device with no readings yields an empty slice, not an error.
func (s *Store) RecentReadings(ctx context.Context, deviceID string) ([]models.SensorReading, error) {
	var rows []models.SensorReading
	err := s.orm.WithContext(ctx).
		Where("device_id = ?", deviceID).
		Order("timestamp DESC, id DESC").
		Limit(HistoryLimit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
