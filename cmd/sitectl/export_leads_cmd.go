package main

import (
	"fmt"
	"os"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"github.com/solstice-web/sitekit/modules/crm/domain/aggregates/lead"
	"github.com/solstice-web/sitekit/pkg/configuration"
)

func newExportLeadsCmd() *cobra.Command {
	var (
		formName string
		status   string
		from     string
		to       string
		outPath  string
	)

	cmd := &cobra.Command{
		Use:   "export-leads",
		Short: "Dump leads to CSV straight from the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			filters := leadExportFilters{FormName: formName, Status: status}

			if status != "" && !lead.IsKnownStatus(lead.Status(status)) {
				return fmt.Errorf("unknown status %q", status)
			}
			if from != "" {
				parsed, err := time.Parse(time.DateOnly, from)
				if err != nil {
					return fmt.Errorf("invalid --from, expected YYYY-MM-DD: %w", err)
				}
				filters.From = parsed
			}
			if to != "" {
				parsed, err := time.Parse(time.DateOnly, to)
				if err != nil {
					return fmt.Errorf("invalid --to, expected YYYY-MM-DD: %w", err)
				}
				// --to is inclusive; the query bound is exclusive.
				filters.ToExclusive = parsed.AddDate(0, 0, 1)
			}

			if outPath == "" {
				outPath = fmt.Sprintf("leads_export_%s.csv", time.Now().UTC().Format(time.DateOnly))
			}

			conf := configuration.Use()
			db, err := sqlx.Open("postgres", conf.Database.Opts)
			if err != nil {
				return err
			}
			defer db.Close()

			out, err := os.Create(outPath)
			if err != nil {
				return err
			}
			defer out.Close()

			count, err := writeLeadsCSV(cmd.Context(), db, out, filters)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d leads to %s\n", count, outPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&formName, "form", "", "Filter by source form name")
	cmd.Flags().StringVar(&status, "status", "", "Filter by lead status")
	cmd.Flags().StringVar(&from, "from", "", "Submitted on or after (UTC, YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "Submitted on or before (UTC, YYYY-MM-DD)")
	cmd.Flags().StringVar(&outPath, "out", "", "Output file (default leads_export_<date>.csv)")
	return cmd
}
