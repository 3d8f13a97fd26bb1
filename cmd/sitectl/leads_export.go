package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
)

// leadExportFilters mirrors the admin API export filters; zero values mean
// unbounded.
type leadExportFilters struct {
	FormName    string
	Status      string
	From        time.Time
	ToExclusive time.Time
}

var leadExportHeader = []string{
	"id", "fullName", "email", "phone", "company", "message",
	"sourceFormName", "submissionUrl", "status", "ipAddress",
	"submittedAt", "createdAt", "updatedAt",
}

type leadExportRow struct {
	ID             string    `db:"id"`
	FullName       string    `db:"full_name"`
	Email          string    `db:"email"`
	Phone          string    `db:"phone"`
	Company        string    `db:"company"`
	Message        string    `db:"message"`
	SourceFormName string    `db:"source_form_name"`
	SubmissionURL  string    `db:"submission_url"`
	Status         string    `db:"status"`
	IPAddress      string    `db:"ip_address"`
	SubmittedAt    time.Time `db:"submitted_at"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

func buildLeadExportQuery(f leadExportFilters) (string, []interface{}) {
	where := []string{"1 = 1"}
	args := []interface{}{}

	if f.FormName != "" {
		args = append(args, f.FormName)
		where = append(where, fmt.Sprintf("source_form_name = $%d", len(args)))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if !f.From.IsZero() {
		args = append(args, f.From)
		where = append(where, fmt.Sprintf("submitted_at >= $%d", len(args)))
	}
	if !f.ToExclusive.IsZero() {
		args = append(args, f.ToExclusive)
		where = append(where, fmt.Sprintf("submitted_at < $%d", len(args)))
	}

	query := `SELECT id, full_name, email, phone, company, message,
		source_form_name, submission_url, status, ip_address,
		submitted_at, created_at, updated_at
		FROM leads WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY submitted_at DESC`
	return query, args
}

func writeLeadsCSV(ctx context.Context, db *sqlx.DB, w io.Writer, f leadExportFilters) (int, error) {
	query, args := buildLeadExportQuery(f)
	rows, err := db.QueryxContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	writer := csv.NewWriter(w)
	if err := writer.Write(leadExportHeader); err != nil {
		return 0, err
	}

	count := 0
	for rows.Next() {
		var row leadExportRow
		if err := rows.StructScan(&row); err != nil {
			return count, err
		}
		record := []string{
			row.ID, row.FullName, row.Email, row.Phone, row.Company, row.Message,
			row.SourceFormName, row.SubmissionURL, row.Status, row.IPAddress,
			row.SubmittedAt.UTC().Format(time.RFC3339),
			row.CreatedAt.UTC().Format(time.RFC3339),
			row.UpdatedAt.UTC().Format(time.RFC3339),
		}
		if err := writer.Write(record); err != nil {
			return count, err
		}
		count++
	}
	if err := rows.Err(); err != nil {
		return count, err
	}
	writer.Flush()
	return count, writer.Error()
}
