package excel

import (
	"fmt"
	"io"
	"sort"
	"time"

	"pincheck/domain/core"
	"pincheck/domain/schema"
	"pincheck/internal"
	"pincheck/ports"

	"github.com/xuri/excelize/v2"
)

// Snapshot bundles everything worth freezing about one loaded sheet: the
// table itself, how its columns resolved, and how it was fetched.
type Snapshot struct {
	Table       *core.Table
	Resolution  *schema.Resolution
	Attempts    []ports.FetchAttempt
	SourceURL   string
	ContentHash core.ContentHash
	LoadedAt    time.Time
}

// SnapshotWriter renders a snapshot as an xlsx workbook for offline
// inspection: one sheet with the data, one with the resolved schema, one
// with the fetch attempt log.
type SnapshotWriter struct {
	logger *internal.Logger
}

// NewSnapshotWriter creates a snapshot writer.
func NewSnapshotWriter() *SnapshotWriter {
	return &SnapshotWriter{logger: internal.NewDefaultLogger()}
}

// Write renders the snapshot into out.
func (w *SnapshotWriter) Write(out io.Writer, snap Snapshot) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := w.writeDataSheet(f, snap); err != nil {
		return err
	}
	if err := w.writeSchemaSheet(f, snap); err != nil {
		return err
	}
	if err := w.writeAttemptsSheet(f, snap); err != nil {
		return err
	}

	if _, err := f.WriteTo(out); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}

	w.logger.Info("[Snapshot] wrote %d rows across %d columns",
		snap.Table.Len(), len(snap.Table.Headers))
	return nil
}

func (w *SnapshotWriter) writeDataSheet(f *excelize.File, snap Snapshot) error {
	const sheet = "Serviceability"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("failed to rename data sheet: %w", err)
	}

	for colIdx, header := range snap.Table.Headers {
		if err := f.SetCellValue(sheet, cellRef(colIdx, 1), header); err != nil {
			return fmt.Errorf("failed to write header %s: %w", header, err)
		}
	}
	for rowIdx, row := range snap.Table.Rows {
		for colIdx, header := range snap.Table.Headers {
			if err := f.SetCellValue(sheet, cellRef(colIdx, rowIdx+2), row.Get(header)); err != nil {
				return fmt.Errorf("failed to write row %d: %w", rowIdx+2, err)
			}
		}
	}
	return nil
}

func (w *SnapshotWriter) writeSchemaSheet(f *excelize.File, snap Snapshot) error {
	const sheet = "Schema"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create schema sheet: %w", err)
	}

	for colIdx, header := range []string{"field", "column", "synthetic"} {
		if err := f.SetCellValue(sheet, cellRef(colIdx, 1), header); err != nil {
			return fmt.Errorf("failed to write schema header: %w", err)
		}
	}

	if snap.Resolution == nil {
		return nil
	}

	keys := make([]string, 0, len(snap.Resolution.Fields))
	for key := range snap.Resolution.Fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	synthetic := make(map[string]bool, len(snap.Resolution.Synthetic))
	for _, col := range snap.Resolution.Synthetic {
		synthetic[col] = true
	}

	for i, key := range keys {
		column := snap.Resolution.Fields[key]
		mark := ""
		if synthetic[column] {
			mark = "yes"
		}
		for colIdx, value := range []string{key, column, mark} {
			if err := f.SetCellValue(sheet, cellRef(colIdx, i+2), value); err != nil {
				return fmt.Errorf("failed to write schema row %s: %w", key, err)
			}
		}
	}
	return nil
}

func (w *SnapshotWriter) writeAttemptsSheet(f *excelize.File, snap Snapshot) error {
	const sheet = "Fetch Attempts"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create attempts sheet: %w", err)
	}

	meta := [][2]string{
		{"source url", snap.SourceURL},
		{"content hash", snap.ContentHash.String()},
		{"loaded at", snap.LoadedAt.UTC().Format(time.RFC3339)},
	}
	for i, pair := range meta {
		if err := f.SetCellValue(sheet, cellRef(0, i+1), pair[0]); err != nil {
			return fmt.Errorf("failed to write metadata: %w", err)
		}
		if err := f.SetCellValue(sheet, cellRef(1, i+1), pair[1]); err != nil {
			return fmt.Errorf("failed to write metadata: %w", err)
		}
	}

	headerRow := len(meta) + 2
	for colIdx, header := range []string{"url", "outcome"} {
		if err := f.SetCellValue(sheet, cellRef(colIdx, headerRow), header); err != nil {
			return fmt.Errorf("failed to write attempts header: %w", err)
		}
	}
	for i, attempt := range snap.Attempts {
		if err := f.SetCellValue(sheet, cellRef(0, headerRow+1+i), attempt.URL); err != nil {
			return fmt.Errorf("failed to write attempt %d: %w", i, err)
		}
		if err := f.SetCellValue(sheet, cellRef(1, headerRow+1+i), attempt.Outcome); err != nil {
			return fmt.Errorf("failed to write attempt %d: %w", i, err)
		}
	}
	return nil
}

// cellRef converts a 0-based column index and 1-based row into an A1-style
// reference.
func cellRef(colIdx, row int) string {
	letter := ""
	colIdx++
	for colIdx > 0 {
		colIdx--
		letter = string(rune('A'+(colIdx%26))) + letter
		colIdx /= 26
	}
	return fmt.Sprintf("%s%d", letter, row)
}
