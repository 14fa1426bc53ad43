package tabular

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"roomtrooper/internal/domain"
)

// ReadCSV loads the room sheet from a CSV file. The first record must be the
// header row.
func ReadCSV(path string) ([]domain.RawRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return readCSV(f)
}

func readCSV(r io.Reader) ([]domain.RawRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	index := columnIndex(header)

	var rows []domain.RawRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			return rows, fmt.Errorf("read row %d: %w", len(rows), err)
		}
		rows = append(rows, rowFromRecord(record, index))
	}
}

// WriteCSV writes exported rooms to a CSV file in the canonical column order.
func WriteCSV(path string, rooms []domain.RoomRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write(Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, room := range rooms {
		if err := writer.Write(recordFromRoom(room)); err != nil {
			return fmt.Errorf("write room %s: %w", room.ID, err)
		}
	}
	writer.Flush()
	return writer.Error()
}
