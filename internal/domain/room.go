package domain

// RoomSize is the fixed set of size classes the directory accepts for a room.
type RoomSize string

const (
	SizeNone   RoomSize = "NONE"
	SizeFocus  RoomSize = "FOCUS"
	SizeHuddle RoomSize = "HUDDLE"
	SizeSmall  RoomSize = "SMALL"
	SizeMedium RoomSize = "MEDIUM"
	SizeLarge  RoomSize = "LARGE"
)

// DefaultSize substitutes for missing or unrecognized size values.
const DefaultSize = SizeNone

var validSizes = map[RoomSize]bool{
	SizeNone:   true,
	SizeFocus:  true,
	SizeHuddle: true,
	SizeSmall:  true,
	SizeMedium: true,
	SizeLarge:  true,
}

// ValidSize reports whether s is one of the accepted size classes.
func ValidSize(s RoomSize) bool {
	return validSizes[s]
}

// RawRow is one tabular row as read from the sheet. All fields are kept as
// strings so malformed cells survive until the normalizer classifies them.
type RawRow struct {
	ID       string
	Name     string
	Capacity string
	Size     string
	Floor    string
	SiteID   string
	SiteName string
}

// RoomPayload is the strict upsert request shape for rooms.
// Name is omitted when blank so an update leaves the remote name untouched;
// the remaining optional fields are sent as explicit nulls.
type RoomPayload struct {
	TenantID string   `json:"tenantId"`
	ID       *string  `json:"id"`
	Name     *string  `json:"name,omitempty"`
	Capacity *int     `json:"capacity"`
	Size     RoomSize `json:"size"`
	Floor    *string  `json:"floor"`
	SiteID   *string  `json:"siteId"`
}

// RoomRecord is one room as returned by the directory.
type RoomRecord struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Capacity  *int        `json:"capacity"`
	Size      RoomSize    `json:"size"`
	Floor     *string     `json:"floor"`
	UpdatedAt string      `json:"updatedAt,omitempty"`
	Site      *SiteRecord `json:"site"`
}
