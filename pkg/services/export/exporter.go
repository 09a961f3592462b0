package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/grc-tools/control-atlas/pkg/adapters"
	"github.com/grc-tools/control-atlas/pkg/models/api"
	"github.com/grc-tools/control-atlas/pkg/models/domain"
	"github.com/xuri/excelize/v2"
)

const timestampLayout = "20060102_150405"

// Filename names an export snapshot, timestamped at call time the way
// the dashboards' download buttons did.
func Filename(register string, format domain.ExportFormat, now time.Time) string {
	return fmt.Sprintf("%s_%s%s", register, now.UTC().Format(timestampLayout), format.FileExtension())
}

// Exporter serializes register records. Column order is the
// register's declared dimension and measure order, so exports are
// stable across runs.
type Exporter struct {
	register domain.Register
}

func NewExporter(register domain.Register) *Exporter {
	return &Exporter{register: register}
}

func (e *Exporter) Write(w io.Writer, format domain.ExportFormat, records []domain.RegisterRecord) error {
	switch format {
	case domain.ExportFormatCSV:
		return e.writeCSV(w, records)
	case domain.ExportFormatJSON:
		return e.writeJSON(w, records)
	case domain.ExportFormatXLSX:
		return e.writeXLSX(w, records)
	default:
		return fmt.Errorf("unsupported export format: %s", format)
	}
}

func (e *Exporter) header() []string {
	header := []string{"id", "name"}
	header = append(header, e.register.Dimensions...)
	header = append(header, e.register.Measures...)
	header = append(header, "created_at", "due_at", "closed_at")
	return header
}

func (e *Exporter) row(record domain.RegisterRecord) []string {
	row := []string{record.ID, record.Name}
	for _, dim := range e.register.Dimensions {
		row = append(row, record.Dimension(dim))
	}
	for _, measure := range e.register.Measures {
		row = append(row, strconv.FormatFloat(record.Measure(measure), 'f', -1, 64))
	}
	row = append(row, record.CreatedAt.UTC().Format(time.RFC3339))
	row = append(row, formatOptionalTime(record.DueAt))
	row = append(row, formatOptionalTime(record.ClosedAt))
	return row
}

func (e *Exporter) writeCSV(w io.Writer, records []domain.RegisterRecord) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(e.header()); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, record := range records {
		if err := writer.Write(e.row(record)); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

func (e *Exporter) writeJSON(w io.Writer, records []domain.RegisterRecord) error {
	out := make([]api.RegisterRecord, 0, len(records))
	for _, record := range records {
		out = append(out, adapters.MapDomainRecordToApi(record))
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

func (e *Exporter) writeXLSX(w io.Writer, records []domain.RegisterRecord) error {
	file := excelize.NewFile()
	defer file.Close()

	sheet := file.GetSheetName(0)
	for col, name := range e.header() {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := file.SetCellValue(sheet, cell, name); err != nil {
			return err
		}
	}

	for i, record := range records {
		for col, value := range e.row(record) {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return err
			}
			if err := file.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
		}
	}

	return file.Write(w)
}

func formatOptionalTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
