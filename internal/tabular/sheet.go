// Package tabular reads and writes the room sheet in CSV and XLSX form.
// The column set is fixed; readers tolerate reordered columns by matching
// the header row.
package tabular

import (
	"fmt"
	"strings"

	"roomtrooper/internal/domain"
)

// Header is the canonical column order of the room sheet.
var Header = []string{"name", "id", "capacity", "size", "floor", "siteName", "siteId"}

// Read picks the reader by file extension: .xlsx via excelize, anything
// else as CSV.
func Read(path string) ([]domain.RawRow, error) {
	if strings.HasSuffix(strings.ToLower(path), ".xlsx") {
		return ReadXLSX(path)
	}
	return ReadCSV(path)
}

// Write picks the writer by file extension, mirroring Read.
func Write(path string, rooms []domain.RoomRecord) error {
	if strings.HasSuffix(strings.ToLower(path), ".xlsx") {
		return WriteXLSX(path, rooms)
	}
	return WriteCSV(path, rooms)
}

// columnIndex maps a header row onto column positions, case-insensitively.
// Unknown columns are ignored; missing columns read as blank cells.
func columnIndex(header []string) map[string]int {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return index
}

func cell(record []string, index map[string]int, column string) string {
	i, ok := index[strings.ToLower(column)]
	if !ok || i >= len(record) {
		return ""
	}
	return record[i]
}

func rowFromRecord(record []string, index map[string]int) domain.RawRow {
	return domain.RawRow{
		Name:     cell(record, index, "name"),
		ID:       cell(record, index, "id"),
		Capacity: cell(record, index, "capacity"),
		Size:     cell(record, index, "size"),
		Floor:    cell(record, index, "floor"),
		SiteName: cell(record, index, "siteName"),
		SiteID:   cell(record, index, "siteId"),
	}
}

// recordFromRoom flattens one exported room into sheet cells.
func recordFromRoom(room domain.RoomRecord) []string {
	capacity := ""
	if room.Capacity != nil {
		capacity = fmt.Sprintf("%d", *room.Capacity)
	}
	floor := ""
	if room.Floor != nil {
		floor = *room.Floor
	}
	siteName, siteID := "", ""
	if room.Site != nil {
		siteName = room.Site.Name
		siteID = room.Site.ID
	}
	return []string{room.Name, room.ID, capacity, string(room.Size), floor, siteName, siteID}
}
