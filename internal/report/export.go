package report

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/Veraticus/orderplace/internal/common"
	"github.com/Veraticus/orderplace/internal/model"
	"github.com/Veraticus/orderplace/internal/service"
	"github.com/xuri/excelize/v2"
)

const exportStampLayout = "20060102_150405"

// Exporter writes filtered records to a file and returns its path.
type Exporter interface {
	Export(ctx context.Context, records []model.Transaction, currency string, at time.Time, progress service.Progress) (string, error)
}

// ExportName returns the export file name for a timestamp and extension.
func ExportName(at time.Time, ext string) string {
	return "records_" + at.Format(exportStampLayout) + ext
}

// TextExporter writes the plain-text export format.
type TextExporter struct {
	Dir string
}

// Export implements Exporter. A failed or canceled export leaves no file
// behind.
func (e TextExporter) Export(ctx context.Context, records []model.Transaction, currency string, at time.Time, progress service.Progress) (_ string, err error) {
	path := filepath.Join(e.Dir, ExportName(at, ".txt"))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("%w: failed to create %s: %w", common.ErrIO, path, err)
	}
	closed := false
	defer func() {
		if !closed {
			_ = f.Close()
		}
		if err != nil {
			if removeErr := os.Remove(path); removeErr != nil {
				slog.Warn("Failed to remove partial export", "path", path, "error", removeErr)
			}
		}
	}()

	w := bufio.NewWriter(f)
	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if err := writeTextRecord(w, rec, currency); err != nil {
			return "", fmt.Errorf("%w: failed to write %s: %w", common.ErrIO, path, err)
		}
		_ = progress.Add(1)
	}

	if err := w.Flush(); err != nil {
		return "", fmt.Errorf("%w: failed to write %s: %w", common.ErrIO, path, err)
	}
	closed = true
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("%w: failed to close %s: %w", common.ErrIO, path, err)
	}
	_ = progress.Finish()
	return path, nil
}

// SpreadsheetExporter writes records to an xlsx workbook: one row per line
// item followed by a grand-total row for each record.
type SpreadsheetExporter struct {
	Dir string
}

const sheetName = "Records"

// Export implements Exporter.
func (e SpreadsheetExporter) Export(ctx context.Context, records []model.Transaction, currency string, at time.Time, progress service.Progress) (string, error) {
	path := filepath.Join(e.Dir, ExportName(at, ".xlsx"))

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return "", fmt.Errorf("failed to name sheet: %w", err)
	}

	headers := []any{"Date", "Time", "Item", "Qty", "Total (" + currency + ")"}
	if err := f.SetSheetRow(sheetName, "A1", &headers); err != nil {
		return "", fmt.Errorf("failed to write header row: %w", err)
	}

	row := 2
	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		for _, it := range rec.Items {
			values := []any{rec.Date, rec.Time, it.Item, it.Qty, it.Total.InexactFloat64()}
			if err := setRow(f, row, values); err != nil {
				return "", err
			}
			row++
		}

		values := []any{rec.Date, rec.Time, "Grand Total", nil, rec.GrandTotal.InexactFloat64()}
		if err := setRow(f, row, values); err != nil {
			return "", err
		}
		row++
		_ = progress.Add(1)
	}

	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("%w: failed to save %s: %w", common.ErrIO, path, err)
	}
	_ = progress.Finish()
	return path, nil
}

func setRow(f *excelize.File, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("failed to address row %d: %w", row, err)
	}
	if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d: %w", row, err)
	}
	return nil
}
