package ledger

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
)

// ExportMonth builds the month's ledger summary as an .xlsx workbook.
func (svc *Service) ExportMonth(ctx context.Context, ownerID string, month, year int) (*bytes.Buffer, string, error) {
	summary, err := svc.MonthSummary(ctx, ownerID, month, year)
	if err != nil {
		return nil, "", err
	}
	buf, err := svc.exportSummary(summary)
	if err != nil {
		return nil, "", err
	}
	return buf, exportFilename(month, year), nil
}

func exportFilename(month, year int) string {
	return fmt.Sprintf("ledger-%04d-%02d.xlsx", year, month)
}

func (svc *Service) exportSummary(summary MonthSummary) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	if err := f.SetSheetName(sheet, fmt.Sprintf("%s %d", time.Month(summary.Month), summary.Year)); err != nil {
		return nil, err
	}
	sheet = f.GetSheetName(0)

	headers := []string{"Student", "Individual (h)", "Group (h)", "Total"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}
	_ = f.SetColWidth(sheet, "A", "A", 28)

	row := 2
	for _, ss := range summary.Students {
		values := []interface{}{ss.Name, ss.IndividualHours, ss.GroupHours, ss.Total.InexactFloat64()}
		for i, v := range values {
			cell, _ := excelize.CoordinatesToCellName(i+1, row)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
		row++
	}

	totalLabel, _ := excelize.CoordinatesToCellName(1, row)
	totalCell, _ := excelize.CoordinatesToCellName(4, row)
	if err := f.SetCellValue(sheet, totalLabel, "Grand total"); err != nil {
		return nil, err
	}
	if err := f.SetCellValue(sheet, totalCell, summary.GrandTotal.InexactFloat64()); err != nil {
		return nil, err
	}

	return f.WriteToBuffer()
}
