package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"roomtrooper/internal/domain"
)

// Directory is the slice of the remote client the resolver needs.
type Directory interface {
	LookupSiteByID(ctx context.Context, id string) (*domain.SiteRecord, error)
	LookupSiteByName(ctx context.Context, name string) (*domain.SiteRecord, error)
	UpsertSite(ctx context.Context, upsert domain.SiteUpsert) (*domain.SiteRecord, error)
}

// Resolution is the outcome of resolving one site reference. A nil SiteID
// means the row has no site, which is not an error. Advisory is set when the
// row was redirected to an existing site instead of renaming the one it
// referenced by id.
type Resolution struct {
	SiteID   *string
	Advisory *domain.Advisory
}

// SiteResolver maps a row's loose site reference onto a canonical site id.
// It consults the batch cache first and falls back to the directory, and it
// is the only writer of the cache during a batch.
type SiteResolver struct {
	directory  Directory
	cache      *SiteCache
	overrideID string
	logger     *zap.Logger
}

// NewSiteResolver builds a resolver. overrideID, when non-empty, wins over
// any row-supplied site id.
func NewSiteResolver(directory Directory, cache *SiteCache, overrideID string, logger *zap.Logger) *SiteResolver {
	return &SiteResolver{
		directory:  directory,
		cache:      cache,
		overrideID: overrideID,
		logger:     logger,
	}
}

// Resolve applies the resolution policy: configured override id, then the
// row's id, then the row's name, then no site. Errors carry the directory
// error kind so the caller can classify the row outcome.
func (r *SiteResolver) Resolve(ctx context.Context, ref domain.SiteReference) (Resolution, error) {
	name := strings.TrimSpace(ref.Name)
	if r.overrideID != "" {
		return r.resolveByID(ctx, r.overrideID, name)
	}
	if ref.IsZero() {
		return Resolution{}, nil
	}
	if id := strings.TrimSpace(ref.ID); id != "" {
		return r.resolveByID(ctx, id, name)
	}
	return r.resolveByName(ctx, name)
}

func (r *SiteResolver) resolveByID(ctx context.Context, id, name string) (Resolution, error) {
	current, ok := r.cache.NameByID(id)
	if !ok {
		record, err := r.directory.LookupSiteByID(ctx, id)
		if err != nil {
			return Resolution{}, err
		}
		current = record.Name
	}
	r.cache.Set(id, current)

	if name == "" || name == current {
		return Resolution{SiteID: &id}, nil
	}

	// The row wants a different name. An existing site already holding that
	// name wins over renaming: the room goes to that site instead, so the
	// directory never ends up with two sites sharing one name.
	targetID, hit := r.cache.IDByName(name)
	if !hit {
		record, err := r.directory.LookupSiteByName(ctx, name)
		if err != nil {
			return Resolution{}, err
		}
		if record != nil {
			targetID = record.ID
			hit = true
		}
	}
	if hit && targetID != id {
		r.cache.Set(targetID, name)
		r.logger.Warn("site name already taken, reusing that site instead of renaming",
			zap.String("requested_name", name),
			zap.String("row_site_id", id),
			zap.String("existing_site_id", targetID),
		)
		return Resolution{
			SiteID: &targetID,
			Advisory: &domain.Advisory{
				RequestedName: name,
				FromSiteID:    id,
				ToSiteID:      targetID,
			},
		}, nil
	}

	renamed, err := r.directory.UpsertSite(ctx, domain.SiteUpsert{ID: &id, Name: name})
	if err != nil {
		return Resolution{}, err
	}
	r.logger.Info("site renamed",
		zap.String("site_id", id),
		zap.String("from", current),
		zap.String("to", renamed.Name),
	)
	r.cache.Set(id, renamed.Name)
	return Resolution{SiteID: &id}, nil
}

func (r *SiteResolver) resolveByName(ctx context.Context, name string) (Resolution, error) {
	if cached, ok := r.cache.IDByName(name); ok {
		return Resolution{SiteID: &cached}, nil
	}

	record, err := r.directory.LookupSiteByName(ctx, name)
	if err != nil {
		return Resolution{}, err
	}
	if record == nil {
		record, err = r.directory.UpsertSite(ctx, domain.SiteUpsert{Name: name})
		if err != nil {
			return Resolution{}, err
		}
		r.logger.Info("site created",
			zap.String("site_id", record.ID),
			zap.String("name", record.Name),
		)
	}
	r.cache.Set(record.ID, name)
	return Resolution{SiteID: &record.ID}, nil
}
