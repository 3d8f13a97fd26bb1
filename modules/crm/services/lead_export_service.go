package services

import (
	"context"
	"encoding/csv"
	"io"
	"time"

	"github.com/go-faster/errors"
	"github.com/xuri/excelize/v2"

	"github.com/solstice-web/sitekit/modules/crm/domain/aggregates/lead"
)

// exportColumns is the fixed header row for both export formats. Order is
// part of the contract: downstream spreadsheets key off positions.
var exportColumns = []string{
	"id",
	"fullName",
	"email",
	"phone",
	"company",
	"message",
	"sourceFormName",
	"submissionUrl",
	"status",
	"ipAddress",
	"submittedAt",
	"createdAt",
	"updatedAt",
}

type LeadExportService struct {
	leads *LeadService
}

func NewLeadExportService(leads *LeadService) *LeadExportService {
	return &LeadExportService{leads: leads}
}

// ExportFilename derives the attachment name from the current date, not the
// filter range.
func ExportFilename(now time.Time, ext string) string {
	return "leads_export_" + now.Format(time.DateOnly) + "." + ext
}

// WriteCSV streams every matching lead to w as RFC 4180 CSV with a header
// row. Filters are applied exactly as in the paginated listing.
func (s *LeadExportService) WriteCSV(ctx context.Context, params *lead.FindParams, w io.Writer) error {
	leads, err := s.leads.GetAll(ctx, params)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(exportColumns); err != nil {
		return errors.Wrap(err, "write csv header")
	}
	for _, l := range leads {
		if err := cw.Write(exportRow(l)); err != nil {
			return errors.Wrap(err, "write csv row")
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX renders the same rows as WriteCSV into a single-sheet workbook.
func (s *LeadExportService) WriteXLSX(ctx context.Context, params *lead.FindParams, w io.Writer) error {
	leads, err := s.leads.GetAll(ctx, params)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Leads"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return errors.Wrap(err, "create sheet")
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return errors.Wrap(err, "drop default sheet")
	}

	header := make([]interface{}, len(exportColumns))
	for i, c := range exportColumns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return errors.Wrap(err, "write header row")
	}

	for i, l := range leads {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := exportRow(l)
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return errors.Wrap(err, "write row")
		}
	}

	return f.Write(w)
}

func exportRow(l lead.Lead) []string {
	return []string{
		l.ID().String(),
		l.FullName(),
		l.Email(),
		l.Phone(),
		l.Company(),
		l.Message(),
		l.SourceFormName(),
		l.SubmissionURL(),
		string(l.Status()),
		l.IPAddress(),
		l.SubmittedAt().UTC().Format(time.RFC3339),
		l.CreatedAt().UTC().Format(time.RFC3339),
		l.UpdatedAt().UTC().Format(time.RFC3339),
	}
}
