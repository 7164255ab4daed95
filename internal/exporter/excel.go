package exporter

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"orderpulse/internal/analytics"
	"orderpulse/internal/format"
)

// ExcelWriter builds a multi-sheet workbook from the dashboard summary tables.
type ExcelWriter struct {
	logger *slog.Logger
}

// NewExcelWriter creates an Excel writer
func NewExcelWriter(logger *slog.Logger) *ExcelWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExcelWriter{
		logger: logger.With(slog.String("component", "exporter.excel")),
	}
}

// WriteWorkbook streams a workbook with one sheet per summary table
// plus an overview sheet with the headline metrics.
func (w *ExcelWriter) WriteWorkbook(bundle *analytics.Bundle, out io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := w.writeOverviewSheet(f, bundle); err != nil {
		return err
	}

	for _, table := range BuildTables(bundle) {
		if err := w.writeTableSheet(f, table); err != nil {
			return fmt.Errorf("sheet %s: %w", table.Name, err)
		}
	}

	// The default sheet excelize creates is replaced by Overview.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to remove default sheet: %w", err)
	}
	idx, err := f.GetSheetIndex("Overview")
	if err != nil {
		return err
	}
	f.SetActiveSheet(idx)

	if err := f.Write(out); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// SaveWorkbook writes the workbook to a file under dir and returns its path.
func (w *ExcelWriter) SaveWorkbook(bundle *analytics.Bundle, dir, name string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}
	fullPath := filepath.Join(dir, name)

	file, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	if err := w.WriteWorkbook(bundle, file); err != nil {
		return "", err
	}

	w.logger.Info("Workbook written", slog.String("path", fullPath))
	return fullPath, nil
}

func (w *ExcelWriter) writeOverviewSheet(f *excelize.File, bundle *analytics.Bundle) error {
	const sheet = "Overview"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	totalOrders := 0
	totalRevenue := 0.0
	for _, p := range bundle.DailyOrders {
		totalOrders += p.OrderCount
		totalRevenue += p.Revenue
	}

	rows := [][]interface{}{
		{"Metric", "Value"},
		{"Total Orders", totalOrders},
		{"Total Revenue", format.BRL(totalRevenue)},
		{"Average Review Score", bundle.AverageReviewScore},
		{"RFM Customers", len(bundle.RFM)},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func (w *ExcelWriter) writeTableSheet(f *excelize.File, table Table) error {
	sheet := sheetName(table.Name)
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	header := make([]interface{}, len(table.Headers))
	for i, h := range table.Headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	for i, record := range table.Records {
		row := make([]interface{}, len(record))
		for j, v := range record {
			row[j] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

// sheetName maps a table name to an Excel sheet title (31 char limit).
func sheetName(table string) string {
	switch table {
	case TableDailyOrders:
		return "Daily Orders"
	case TableCustomersByState:
		return "Customers by State"
	case TableCustomersByCity:
		return "Customers by City"
	case TableReviewScores:
		return "Review Scores"
	case TableProductCategories:
		return "Product Categories"
	case TableRFM:
		return "RFM"
	default:
		return table
	}
}
