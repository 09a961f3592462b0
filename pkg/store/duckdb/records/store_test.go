package records

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/grc-tools/control-atlas/pkg/models/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStore_RequiresDB(t *testing.T) {
	_, err := NewStore(nil)
	assert.Error(t, err)
}

func TestAdd_InsertsEachRecord(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s, err := NewStore(db)
	require.NoError(t, err)

	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	records := []store.RegisterRecord{
		{ID: "a1", Name: "web-01", Dims: map[string]string{"status": "active"}, CreatedAt: created},
		{ID: "a2", Name: "web-02", Dims: map[string]string{"status": "retired"}, CreatedAt: created},
	}

	prep := mock.ExpectPrepare("INSERT INTO register_records")
	prep.ExpectExec().
		WithArgs("a1", "assets", "web-01", sqlmock.AnyArg(), sqlmock.AnyArg(), created, nil, nil).
		WillReturnResult(sqlmock.NewResult(0, 1))
	prep.ExpectExec().
		WithArgs("a2", "assets", "web-02", sqlmock.AnyArg(), sqlmock.AnyArg(), created, nil, nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = s.Add(context.Background(), "assets", records)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdd_NoRecordsIsNoop(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s, err := NewStore(db)
	require.NoError(t, err)

	err = s.Add(context.Background(), "assets", nil)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetRecords_ScansDimsAndMeasures(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s, err := NewStore(db)
	require.NoError(t, err)

	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "name", "dims", "measures", "created_at", "due_at", "closed_at"}).
		AddRow("a1", "web-01", []byte(`{"status":"active"}`), []byte(`{"value":1200}`), created, nil, nil)

	mock.ExpectQuery("SELECT id, name, dims, measures, created_at, due_at, closed_at").
		WithArgs("assets").
		WillReturnRows(rows)

	records, err := s.GetRecords(context.Background(), "assets")
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(t, "assets", records[0].Register)
	assert.Equal(t, "active", records[0].Dims["status"])
	assert.InDelta(t, 1200.0, records[0].Measures["value"], 0.001)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetStats_ReturnsCountAndEarliest(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s, err := NewStore(db)
	require.NoError(t, err)

	earliest := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT COUNT").
		WithArgs("incidents").
		WillReturnRows(sqlmock.NewRows([]string{"count", "min"}).AddRow(int64(42), earliest))

	stats, err := s.GetStats(context.Background(), "incidents")
	require.NoError(t, err)

	assert.Equal(t, int64(42), stats.RecordsCount)
	require.NotNil(t, stats.FirstRecordTime)
	assert.Equal(t, earliest, *stats.FirstRecordTime)
}
