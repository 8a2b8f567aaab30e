package xlsx

import (
	"bytes"
	"fmt"
	"io"

	"github.com/punchdeck/attendance-backend-go/internal/domain/summary"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Attendance"

// Fill colors for the conditional rules, matching the dashboard palette.
const (
	lateFillColor  = "FFCDD2"
	earlyFillColor = "BBDEFB"
)

const (
	minColWidth = 12
	maxColWidth = 40
)

// WriteDetail renders the detail table as a styled workbook: one sheet, a
// header row, auto-sized columns, and conditional row fills for Late and
// early-checkout rows.
func WriteDetail(rows []summary.Row) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("failed to name worksheet: %w", err)
	}

	header := make([]interface{}, len(summary.DetailHeader))
	for i, h := range summary.DetailHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write header row: %w", err)
	}

	for i, row := range rows {
		cells := []interface{}{
			row.UserID, row.Name, row.Date, row.CheckIn, row.CheckOut,
			row.Status, row.MinutesLate, row.EarlyCheckout, row.MinutesEarly,
		}
		addr := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheetName, addr, &cells); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := sizeColumns(f, rows); err != nil {
		return nil, err
	}
	if len(rows) > 0 {
		if err := addConditionalFills(f, len(rows)); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// sizeColumns fits each column to its longest value, clamped to a readable
// character range.
func sizeColumns(f *excelize.File, rows []summary.Row) error {
	for i, h := range summary.DetailHeader {
		maxLen := len(h)
		for _, row := range rows {
			if l := len(cellText(row, i)); l > maxLen {
				maxLen = l
			}
		}
		width := float64(maxLen + 2)
		if width < minColWidth {
			width = minColWidth
		}
		if width > maxColWidth {
			width = maxColWidth
		}
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("failed to resolve column name: %w", err)
		}
		if err := f.SetColWidth(sheetName, col, col, width); err != nil {
			return fmt.Errorf("failed to set column width: %w", err)
		}
	}
	return nil
}

// addConditionalFills shades Late rows red and early-checkout rows blue.
// The Status rule comes first so a row matching both stays red.
func addConditionalFills(f *excelize.File, rowCount int) error {
	lastCol, err := excelize.ColumnNumberToName(len(summary.DetailHeader))
	if err != nil {
		return fmt.Errorf("failed to resolve last column: %w", err)
	}
	area := fmt.Sprintf("A2:%s%d", lastCol, rowCount+1)

	lateStyle, err := f.NewConditionalStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{lateFillColor}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create late fill style: %w", err)
	}
	earlyStyle, err := f.NewConditionalStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{earlyFillColor}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create early fill style: %w", err)
	}

	return f.SetConditionalFormat(sheetName, area, []excelize.ConditionalFormatOptions{
		{Type: "formula", Criteria: `$F2="Late"`, Format: lateStyle},
		{Type: "formula", Criteria: `$H2="Yes"`, Format: earlyStyle},
	})
}

// ReadDetail reads back the first worksheet of an exported workbook and
// returns its header and data rows.
func ReadDetail(r io.Reader) ([]string, [][]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, err
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, nil, fmt.Errorf("no worksheet found")
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, err
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("worksheet is empty")
	}
	return rows[0], rows[1:], nil
}

func cellText(row summary.Row, col int) string {
	switch col {
	case 0:
		return row.UserID
	case 1:
		return row.Name
	case 2:
		return row.Date
	case 3:
		return row.CheckIn
	case 4:
		return row.CheckOut
	case 5:
		return row.Status
	case 6:
		return fmt.Sprintf("%d", row.MinutesLate)
	case 7:
		return row.EarlyCheckout
	case 8:
		return fmt.Sprintf("%d", row.MinutesEarly)
	default:
		return ""
	}
}
