package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"roomtrooper/internal/domain"
)

// BulkCreateParams describes a run of sequentially numbered room creations.
type BulkCreateParams struct {
	Count    int
	BaseName string
	Start    int
	SiteName string
	// Delay spaces out requests so a large run does not hammer the API.
	Delay time.Duration
}

// BulkCreator creates batches of empty rooms, optionally attached to a site
// resolved (or created) by name before the first room goes out.
type BulkCreator struct {
	resolver *SiteResolver
	rooms    Rooms
	tenantID string
	logger   *zap.Logger
}

// NewBulkCreator wires a bulk creator. The resolver must be batch-scoped,
// same as for BatchDriver.
func NewBulkCreator(resolver *SiteResolver, rooms Rooms, tenantID string, logger *zap.Logger) *BulkCreator {
	return &BulkCreator{
		resolver: resolver,
		rooms:    rooms,
		tenantID: tenantID,
		logger:   logger,
	}
}

// Run creates params.Count rooms. A site name that cannot be resolved aborts
// the run up front; individual room failures are recorded and skipped.
func (b *BulkCreator) Run(ctx context.Context, params BulkCreateParams) (domain.Report, error) {
	report := domain.Report{RunID: uuid.NewString()}
	log := b.logger.With(zap.String("run_id", report.RunID))

	var siteID *string
	if name := strings.TrimSpace(params.SiteName); name != "" {
		resolution, err := b.resolver.Resolve(ctx, domain.SiteReference{Name: name})
		if err != nil {
			return report, fmt.Errorf("resolve site %q: %w", name, err)
		}
		siteID = resolution.SiteID
	}

	log.Info("bulk create started",
		zap.Int("count", params.Count),
		zap.String("base_name", params.BaseName),
		zap.Int("start", params.Start),
	)

	counter := params.Start
	for i := 0; i < params.Count; i++ {
		name := roomName(params.BaseName, counter)
		counter++

		if params.Delay > 0 {
			select {
			case <-ctx.Done():
				return report, ctx.Err()
			case <-time.After(params.Delay):
			}
		}

		payload := domain.RoomPayload{
			TenantID: b.tenantID,
			Name:     &name,
			Size:     domain.DefaultSize,
			Floor:    new(string),
			SiteID:   siteID,
		}
		if _, err := b.rooms.UpsertRoom(ctx, payload); err != nil {
			outcome := mutationOutcome(err)
			log.Error("room create failed",
				zap.Int("row", i),
				zap.String("room_name", name),
				zap.Error(err),
			)
			report.Failed++
			report.Errors = append(report.Errors, domain.RowError{Row: i, Outcome: outcome})
			continue
		}
		report.Succeeded++
	}

	log.Info("bulk create finished",
		zap.Int("created", report.Succeeded),
		zap.Int("failed", report.Failed),
	)
	return report, nil
}

// roomName joins the base name and the counter; with no base the counter
// alone is the name.
func roomName(base string, n int) string {
	base = strings.TrimSpace(base)
	if base == "" {
		return strconv.Itoa(n)
	}
	return base + " " + strconv.Itoa(n)
}
