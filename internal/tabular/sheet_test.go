package tabular

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roomtrooper/internal/domain"
)

func sampleRooms() []domain.RoomRecord {
	capacity := 8
	floor := "3"
	return []domain.RoomRecord{
		{
			ID:       "r1",
			Name:     "Board Room",
			Capacity: &capacity,
			Size:     domain.SizeMedium,
			Floor:    &floor,
			Site:     &domain.SiteRecord{ID: "S1", Name: "Alpha"},
		},
		{
			ID:   "r2",
			Name: "Nook",
			Size: domain.SizeNone,
		},
	}
}

func TestCSVWriteThenRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rooms.csv")
	require.NoError(t, WriteCSV(path, sampleRooms()))

	rows, err := ReadCSV(path)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, domain.RawRow{
		Name:     "Board Room",
		ID:       "r1",
		Capacity: "8",
		Size:     "MEDIUM",
		Floor:    "3",
		SiteName: "Alpha",
		SiteID:   "S1",
	}, rows[0])

	// Absent optionals come back as blank cells, not literal "null".
	assert.Equal(t, "", rows[1].Capacity)
	assert.Equal(t, "", rows[1].SiteID)
}

func TestReadCSVToleratesReorderedColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rooms.csv")
	content := strings.Join([]string{
		"siteId,name,capacity",
		"S9,Huddle Corner,4",
	}, "\n")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	rows, err := ReadCSV(path)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "S9", rows[0].SiteID)
	assert.Equal(t, "Huddle Corner", rows[0].Name)
	assert.Equal(t, "4", rows[0].Capacity)
	assert.Equal(t, "", rows[0].Floor, "missing columns read as blank")
}

func TestReadCSVEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rooms.csv")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	rows, err := ReadCSV(path)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestXLSXWriteThenRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rooms.xlsx")
	require.NoError(t, WriteXLSX(path, sampleRooms()))

	rows, err := ReadXLSX(path)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Board Room", rows[0].Name)
	assert.Equal(t, "8", rows[0].Capacity)
	assert.Equal(t, "S1", rows[0].SiteID)
}

func TestReadAndWriteDispatchOnExtension(t *testing.T) {
	dir := t.TempDir()

	csvPath := filepath.Join(dir, "rooms.csv")
	require.NoError(t, Write(csvPath, sampleRooms()))
	rows, err := Read(csvPath)
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	xlsxPath := filepath.Join(dir, "rooms.XLSX")
	require.NoError(t, Write(xlsxPath, sampleRooms()))
	rows, err = Read(xlsxPath)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}
