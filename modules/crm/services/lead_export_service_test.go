package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/solstice-web/sitekit/modules/crm/domain/aggregates/lead"
)

func TestExportFilename(t *testing.T) {
	now := time.Date(2026, 8, 28, 15, 4, 5, 0, time.UTC)
	require.Equal(t, "leads_export_2026-08-28.csv", ExportFilename(now, "csv"))
	require.Equal(t, "leads_export_2026-08-28.xlsx", ExportFilename(now, "xlsx"))
}

func TestLeadExportService_WriteCSV_EmptyResult(t *testing.T) {
	svc := NewLeadExportService(NewLeadService(&repoStub{}, quietBus()))

	var buf bytes.Buffer
	require.NoError(t, svc.WriteCSV(context.Background(), nil, &buf))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	// Header row is always present, even with zero matches.
	require.Len(t, records, 1)
	require.Equal(t, exportColumns, records[0])
}

func TestLeadExportService_WriteCSV_EscapesSeparators(t *testing.T) {
	repo := &repoStub{}
	_, err := repo.Create(context.Background(), lead.New(
		"Doe, Jane", "jane@example.com", "+1 555 123 4567", `Quote "Co"`, "line1\nline2",
		"Contact Us", "https://example.com/contact?a=1,2", "203.0.113.9",
	))
	require.NoError(t, err)

	svc := NewLeadExportService(NewLeadService(repo, quietBus()))

	var buf bytes.Buffer
	require.NoError(t, svc.WriteCSV(context.Background(), nil, &buf))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, "Doe, Jane", records[1][1])
	require.Equal(t, `Quote "Co"`, records[1][4])
	require.Equal(t, "line1\nline2", records[1][5])
}
