package export

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"investor-reporting/internal/metrics"
	"investor-reporting/internal/store"
)

// Service is a tiny façade over the report store that produces XLSX bytes.
type Service struct {
	store *store.Store
	log   *slog.Logger
}

func NewService(st *store.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: st, log: logger}
}

// ReportsXLSX returns an XLSX workbook (as bytes) with one row per report in
// chronological order: submission state first, then one column per metric in
// table order. Absent metrics stay empty cells.
func (s *Service) ReportsXLSX() ([]byte, error) {
	start := time.Now()
	reports := s.store.Reports()

	f := excelize.NewFile()
	const sheet = "Reports"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	write := func(col, row int, v any) {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		_ = f.SetCellValue(sheet, cell, v)
	}

	write(1, 1, "State")
	for i, fs := range metrics.Fields {
		write(i+2, 1, fs.Name)
	}

	for r, rep := range reports {
		row := r + 2
		write(1, row, string(rep.State))

		// Round-trip through JSON so the cell values follow the wire names
		// in the field table rather than struct field order.
		b, err := json.Marshal(rep.FormData)
		if err != nil {
			return nil, fmt.Errorf("encode report %d: %w", r, err)
		}
		var m map[string]any
		if err := json.Unmarshal(b, &m); err != nil {
			return nil, fmt.Errorf("decode report %d: %w", r, err)
		}
		for i, fs := range metrics.Fields {
			if v, ok := m[fs.Name]; ok && v != nil {
				write(i+2, row, v)
			}
		}
	}

	_ = f.SetColWidth(sheet, "A", "A", 12)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.log.Info("export.xlsx.ok",
		"reports", len(reports),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}
