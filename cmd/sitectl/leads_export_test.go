package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

var leadExportColumns = []string{
	"id", "full_name", "email", "phone", "company", "message",
	"source_form_name", "submission_url", "status", "ip_address",
	"submitted_at", "created_at", "updated_at",
}

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	return sqlx.NewDb(mockDB, "sqlmock"), mock
}

func TestBuildLeadExportQuery(t *testing.T) {
	t.Run("no filters", func(t *testing.T) {
		query, args := buildLeadExportQuery(leadExportFilters{})
		require.Contains(t, query, "WHERE 1 = 1")
		require.Contains(t, query, "ORDER BY submitted_at DESC")
		require.Empty(t, args)
	})

	t.Run("all filters positional", func(t *testing.T) {
		from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2026, 8, 16, 0, 0, 0, 0, time.UTC)
		query, args := buildLeadExportQuery(leadExportFilters{
			FormName:    "contact",
			Status:      "New",
			From:        from,
			ToExclusive: to,
		})
		require.Contains(t, query, "source_form_name = $1")
		require.Contains(t, query, "status = $2")
		require.Contains(t, query, "submitted_at >= $3")
		require.Contains(t, query, "submitted_at < $4")
		require.Equal(t, []interface{}{"contact", "New", from, to}, args)
	})
}

func TestWriteLeadsCSV(t *testing.T) {
	db, mock := newMockDB(t)

	submitted := time.Date(2026, 8, 15, 10, 30, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT id, full_name, email").
		WillReturnRows(sqlmock.NewRows(leadExportColumns).
			AddRow(
				"2f9a4c1e-0000-0000-0000-000000000001", `Quote "Me"`, "quote@example.com",
				"", "Comma, Inc.", "line one\nline two",
				"contact", "https://example.com/contact", "New", "203.0.113.9",
				submitted, submitted, submitted,
			).
			AddRow(
				"2f9a4c1e-0000-0000-0000-000000000002", "Plain Lead", "plain@example.com",
				"+15550100", "", "",
				"newsletter", "https://example.com/", "Contacted", "",
				submitted, submitted, submitted,
			))

	var buf bytes.Buffer
	count, err := writeLeadsCSV(context.Background(), db, &buf, leadExportFilters{})
	require.NoError(t, err)
	require.Equal(t, 2, count)
	require.NoError(t, mock.ExpectationsWereMet())

	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	require.Equal(t, leadExportHeader, records[0])
	require.Equal(t, `Quote "Me"`, records[1][1])
	require.Equal(t, "line one\nline two", records[1][5])
	require.Equal(t, "2026-08-15T10:30:00Z", records[1][10])
	require.Equal(t, "Contacted", records[2][8])
}

func TestWriteLeadsCSV_PassesFilterArgs(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery("source_form_name = \\$1 AND status = \\$2").
		WithArgs("contact", "New").
		WillReturnRows(sqlmock.NewRows(leadExportColumns))

	var buf bytes.Buffer
	count, err := writeLeadsCSV(context.Background(), db, &buf, leadExportFilters{
		FormName: "contact",
		Status:   "New",
	})
	require.NoError(t, err)
	require.Zero(t, count)
	require.NoError(t, mock.ExpectationsWereMet())

	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1, "header only when nothing matches")
}
