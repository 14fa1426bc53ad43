package service

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"roomtrooper/internal/domain"
)

// Normalized is one coerced row: the strict payload (site still unresolved),
// the raw site hints for the resolver, and any lossy-coercion warnings.
// Normalization never fails a row.
type Normalized struct {
	Payload  domain.RoomPayload
	Site     domain.SiteReference
	Warnings []string
}

// RowNormalizer coerces loosely typed row fields into the payload schema.
type RowNormalizer struct {
	tenantID string
	logger   *zap.Logger
}

// NewRowNormalizer builds a normalizer stamping tenantID on every payload.
func NewRowNormalizer(tenantID string, logger *zap.Logger) *RowNormalizer {
	return &RowNormalizer{tenantID: tenantID, logger: logger}
}

// Normalize applies the field coercion rules to one raw row. index is the
// row's position in the batch, used in warning text only.
func (n *RowNormalizer) Normalize(index int, row domain.RawRow) Normalized {
	out := Normalized{
		Payload: domain.RoomPayload{TenantID: n.tenantID},
		Site: domain.SiteReference{
			ID:   row.SiteID,
			Name: row.SiteName,
		},
	}

	if id := strings.TrimSpace(row.ID); id != "" {
		out.Payload.ID = &id
	}

	// A blank name is omitted from the payload entirely so an update leaves
	// the remote name unchanged.
	if name := strings.TrimSpace(row.Name); name != "" {
		out.Payload.Name = &name
	}

	capacity, warn := coerceCapacity(index, row.Capacity)
	out.Payload.Capacity = capacity
	if warn != "" {
		out.Warnings = append(out.Warnings, warn)
	}

	out.Payload.Size = coerceSize(row.Size)
	if raw := strings.TrimSpace(row.Size); raw != "" && out.Payload.Size != domain.RoomSize(strings.ToUpper(raw)) {
		n.logger.Debug("unrecognized size substituted",
			zap.Int("row", index),
			zap.String("raw", row.Size),
			zap.String("size", string(out.Payload.Size)),
		)
	}

	if floor := coerceFloor(row.Floor); floor != "" {
		out.Payload.Floor = &floor
	}

	return out
}

// Capacity values outside this range are treated as non-numeric rather than
// truncated; no head count comes anywhere near it.
const (
	minCapacity = -1_000_000
	maxCapacity = 1_000_000
)

// coerceCapacity turns the raw capacity cell into an optional integer.
// Blank means absent with no warning; a non-numeric, non-finite, or
// out-of-range value means absent plus a warning naming the row and the
// raw value.
func coerceCapacity(index int, raw string) (*int, string) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, ""
	}
	number, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(number) || number < minCapacity || number > maxCapacity {
		return nil, fmt.Sprintf(
			"row %d had capacity %q, which isn't a number; it has been set to null", index, raw)
	}
	capacity := int(number)
	return &capacity, ""
}

// coerceSize case-normalizes the size cell, substituting the default for
// anything outside the accepted set.
func coerceSize(raw string) domain.RoomSize {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return domain.DefaultSize
	}
	size := domain.RoomSize(strings.ToUpper(trimmed))
	if !domain.ValidSize(size) {
		return domain.DefaultSize
	}
	return size
}

// coerceFloor trims the floor cell and strips float artifacts from numeric
// floors, so a sheet cell of "3.0" comes through as "3".
func coerceFloor(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	if number, err := strconv.ParseFloat(trimmed, 64); err == nil && number == float64(int64(number)) {
		return strconv.FormatInt(int64(number), 10)
	}
	return trimmed
}
