package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"roomtrooper/internal/directory"
	"roomtrooper/internal/domain"
)

// Rooms is the slice of the remote client the driver mutates rooms through.
type Rooms interface {
	UpsertRoom(ctx context.Context, payload domain.RoomPayload) (*domain.RoomRecord, error)
}

// BatchDriver runs one reconciliation batch: normalize each row, resolve its
// site, apply the room mutation, and classify whatever goes wrong. A failed
// row never stops the batch; every failure is recorded with its row index.
type BatchDriver struct {
	normalizer *RowNormalizer
	resolver   *SiteResolver
	rooms      Rooms
	logger     *zap.Logger
}

// NewBatchDriver wires a driver for one batch. The resolver (and its cache)
// must be batch-scoped: build a fresh pair per Run.
func NewBatchDriver(normalizer *RowNormalizer, resolver *SiteResolver, rooms Rooms, logger *zap.Logger) *BatchDriver {
	return &BatchDriver{
		normalizer: normalizer,
		resolver:   resolver,
		rooms:      rooms,
		logger:     logger,
	}
}

// Run processes rows in input order and returns the aggregate report.
func (d *BatchDriver) Run(ctx context.Context, rows []domain.RawRow) domain.Report {
	report := domain.Report{RunID: uuid.NewString()}
	log := d.logger.With(zap.String("run_id", report.RunID))
	log.Info("batch started", zap.Int("rows", len(rows)))

	for index, row := range rows {
		normalized := d.normalizer.Normalize(index, row)
		for _, warning := range normalized.Warnings {
			log.Warn("lossy coercion", zap.Int("row", index), zap.String("warning", warning))
			report.Warnings = append(report.Warnings, domain.RowWarning{Row: index, Message: warning})
		}

		resolution, err := d.resolver.Resolve(ctx, normalized.Site)
		if err != nil {
			outcome := resolutionOutcome(err)
			log.Error("site resolution failed",
				zap.Int("row", index),
				zap.String("outcome", string(outcome.Kind)),
				zap.Error(err),
			)
			report.Failed++
			report.Errors = append(report.Errors, domain.RowError{Row: index, Outcome: outcome})
			continue
		}
		if resolution.Advisory != nil {
			advisory := *resolution.Advisory
			advisory.Row = index
			report.Advisories = append(report.Advisories, advisory)
		}

		payload := normalized.Payload
		payload.SiteID = resolution.SiteID

		record, err := d.rooms.UpsertRoom(ctx, payload)
		if err != nil {
			outcome := mutationOutcome(err)
			log.Error("room mutation failed",
				zap.Int("row", index),
				zap.String("outcome", string(outcome.Kind)),
				zap.Error(err),
			)
			report.Failed++
			report.Errors = append(report.Errors, domain.RowError{Row: index, Outcome: outcome})
			continue
		}

		report.Succeeded++
		fields := []zap.Field{zap.Int("row", index)}
		if record != nil {
			fields = append(fields, zap.String("room_id", record.ID), zap.String("room_name", record.Name))
		}
		log.Info("row applied", fields...)
	}

	log.Info("batch finished",
		zap.Int("succeeded", report.Succeeded),
		zap.Int("failed", report.Failed),
		zap.Int("warnings", len(report.Warnings)),
	)
	return report
}

// resolutionOutcome maps a resolution error onto a row outcome by the
// directory error kind alone.
func resolutionOutcome(err error) domain.RowOutcome {
	switch directory.KindOf(err) {
	case directory.KindNotFound:
		return domain.RowOutcome{Kind: domain.OutcomeSiteNotFound, Reason: err.Error()}
	case directory.KindRemote:
		return domain.RowOutcome{Kind: domain.OutcomeRemoteRejected, Reason: err.Error()}
	default:
		return domain.RowOutcome{Kind: domain.OutcomeTransportFailed, Reason: err.Error()}
	}
}

// mutationOutcome maps a room upsert error onto a row outcome. The mutation
// has no not-found path; anything application-level is a rejection.
func mutationOutcome(err error) domain.RowOutcome {
	if directory.KindOf(err) == directory.KindTransport {
		return domain.RowOutcome{Kind: domain.OutcomeTransportFailed, Reason: err.Error()}
	}
	return domain.RowOutcome{Kind: domain.OutcomeRemoteRejected, Reason: err.Error()}
}
