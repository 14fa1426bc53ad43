package tabular

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"roomtrooper/internal/domain"
)

const sheetName = "Rooms"

// ReadXLSX loads the room sheet from the first worksheet of an XLSX file.
func ReadXLSX(path string) ([]domain.RawRow, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}
	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	index := columnIndex(records[0])
	rows := make([]domain.RawRow, 0, len(records)-1)
	for _, record := range records[1:] {
		rows = append(rows, rowFromRecord(record, index))
	}
	return rows, nil
}

// WriteXLSX writes exported rooms to an XLSX file with a styled header row.
func WriteXLSX(path string, rooms []domain.RoomRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}

	for col, name := range Header {
		column, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, column, name); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}
	endColumn, _ := excelize.CoordinatesToCellName(len(Header), 1)
	if err := f.SetCellStyle(sheetName, "A1", endColumn, headerStyle); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	for i, room := range rooms {
		for col, value := range recordFromRoom(room) {
			column, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return fmt.Errorf("cell for room %s: %w", room.ID, err)
			}
			if err := f.SetCellValue(sheetName, column, value); err != nil {
				return fmt.Errorf("write room %s: %w", room.ID, err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
