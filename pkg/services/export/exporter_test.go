package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"
	"time"

	"github.com/grc-tools/control-atlas/pkg/models/api"
	"github.com/grc-tools/control-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var testRegister = domain.Register{
	Name:       "assets",
	Title:      "Asset Management",
	Dimensions: []string{"category", "status"},
	Measures:   []string{"value"},
}

func testRecords() []domain.RegisterRecord {
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	return []domain.RegisterRecord{
		{ID: "a1", Register: "assets", Name: "web-01", Dims: map[string]string{"category": "server", "status": "active"}, Measures: map[string]float64{"value": 1200}, CreatedAt: created},
		{ID: "a2", Register: "assets", Name: "lt-14", Dims: map[string]string{"category": "laptop", "status": "retired"}, Measures: map[string]float64{"value": 900.5}, CreatedAt: created},
		{ID: "a3", Register: "assets", Name: "db-01", Dims: map[string]string{"category": "database", "status": "active"}, Measures: map[string]float64{"value": 5000}, CreatedAt: created},
	}
}

func TestFilename(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 30, 15, 0, time.UTC)

	assert.Equal(t, "assets_20260301_103015.csv", Filename("assets", domain.ExportFormatCSV, now))
	assert.Equal(t, "findings_20260301_103015.xlsx", Filename("findings", domain.ExportFormatXLSX, now))
}

func TestWriteCSV_RoundTripPreservesRecordCount(t *testing.T) {
	records := testRecords()
	var buf bytes.Buffer

	err := NewExporter(testRegister).Write(&buf, domain.ExportFormatCSV, records)
	require.NoError(t, err)

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)

	require.Len(t, rows, len(records)+1) // header + records
	assert.Equal(t, []string{"id", "name", "category", "status", "value", "created_at", "due_at", "closed_at"}, rows[0])
	assert.Equal(t, "a1", rows[1][0])
	assert.Equal(t, "server", rows[1][2])
	assert.Equal(t, "1200", rows[1][4])
}

func TestWriteJSON_RoundTripPreservesRecordCount(t *testing.T) {
	records := testRecords()
	var buf bytes.Buffer

	err := NewExporter(testRegister).Write(&buf, domain.ExportFormatJSON, records)
	require.NoError(t, err)

	var decoded []api.RegisterRecord
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	require.Len(t, decoded, len(records))
	assert.Equal(t, "web-01", decoded[0].Name)
	assert.InDelta(t, 1200.0, decoded[0].Measures["value"], 0.001)
}

func TestWriteXLSX_RoundTripPreservesRecordCount(t *testing.T) {
	records := testRecords()
	var buf bytes.Buffer

	err := NewExporter(testRegister).Write(&buf, domain.ExportFormatXLSX, records)
	require.NoError(t, err)

	file, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer file.Close()

	rows, err := file.GetRows(file.GetSheetName(0))
	require.NoError(t, err)
	assert.Len(t, rows, len(records)+1)
}

func TestWrite_UnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer

	err := NewExporter(testRegister).Write(&buf, "pdf", testRecords())
	assert.Error(t, err)
}

func TestWriteCSV_EmptyRegisterStillWritesHeader(t *testing.T) {
	var buf bytes.Buffer

	err := NewExporter(testRegister).Write(&buf, domain.ExportFormatCSV, nil)
	require.NoError(t, err)

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
