package domain

import "strings"

// SiteReference is the raw site hint carried by one input row.
// Either field may be blank; both blank means the row has no site.
type SiteReference struct {
	ID   string
	Name string
}

// IsZero reports whether the row carried no site hint at all.
// Whitespace-only hints count as absent.
func (r SiteReference) IsZero() bool {
	return strings.TrimSpace(r.ID) == "" && strings.TrimSpace(r.Name) == ""
}

// SiteRecord is the canonical remote truth for one site.
type SiteRecord struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SiteUpsert is the upsert request shape for sites.
// A nil ID creates a new site; a present ID renames the existing one.
type SiteUpsert struct {
	ID   *string
	Name string
}
