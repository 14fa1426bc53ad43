package service

import (
	"context"

	"go.uber.org/zap"

	"roomtrooper/internal/domain"
)

// RoomLister is the slice of the remote client the exporter reads from.
type RoomLister interface {
	ListRooms(ctx context.Context) ([]domain.RoomRecord, error)
}

// Exporter pulls the tenant's full room inventory out of the directory.
type Exporter struct {
	rooms  RoomLister
	logger *zap.Logger
}

// NewExporter builds an exporter.
func NewExporter(rooms RoomLister, logger *zap.Logger) *Exporter {
	return &Exporter{rooms: rooms, logger: logger}
}

// Export fetches every room for the tenant. Rooms already collected before a
// mid-export failure are returned alongside the error.
func (e *Exporter) Export(ctx context.Context) ([]domain.RoomRecord, error) {
	e.logger.Info("room export started")
	rooms, err := e.rooms.ListRooms(ctx)
	if err != nil {
		e.logger.Error("room export failed", zap.Int("rooms_before_failure", len(rooms)), zap.Error(err))
		return rooms, err
	}
	e.logger.Info("room export finished", zap.Int("rooms", len(rooms)))
	return rooms, nil
}
