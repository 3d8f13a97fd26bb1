package main

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"github.com/solstice-web/sitekit/pkg/configuration"
)

// newSeedCmd inserts a small, recognizable content set for local development.
// Every statement is idempotent, so re-running is safe.
func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert sample content for local development",
		RunE: func(cmd *cobra.Command, args []string) error {
			conf := configuration.Use()
			db, err := sqlx.Open("postgres", conf.Database.Opts)
			if err != nil {
				return err
			}
			defer db.Close()

			ctx := cmd.Context()

			if _, err := db.ExecContext(ctx, `
				INSERT INTO cms_authors (name, slug, bio)
				VALUES ('Sample Author', 'sample-author', 'Writes the sample posts.')
				ON CONFLICT (slug) DO NOTHING`); err != nil {
				return fmt.Errorf("seed authors: %w", err)
			}

			if _, err := db.ExecContext(ctx, `
				INSERT INTO cms_categories (name, slug)
				VALUES ('General', 'general')
				ON CONFLICT (slug) DO NOTHING`); err != nil {
				return fmt.Errorf("seed categories: %w", err)
			}

			if _, err := db.ExecContext(ctx, `
				INSERT INTO cms_industries (name, slug, description)
				VALUES ('Software', 'software', 'Software and technology companies.')
				ON CONFLICT (slug) DO NOTHING`); err != nil {
				return fmt.Errorf("seed industries: %w", err)
			}

			if _, err := db.ExecContext(ctx, `
				INSERT INTO cms_posts (title, slug, excerpt, content, author_id, category_id, published, published_at)
				SELECT 'Hello World', 'hello-world', 'The first sample post.',
					'{"type":"doc","content":[{"type":"paragraph","content":[{"type":"text","text":"Hello from the seed data."}]}]}'::jsonb,
					a.id, c.id, true, now()
				FROM cms_authors a, cms_categories c
				WHERE a.slug = 'sample-author' AND c.slug = 'general'
				ON CONFLICT (slug) DO NOTHING`); err != nil {
				return fmt.Errorf("seed posts: %w", err)
			}

			if _, err := db.ExecContext(ctx, `
				INSERT INTO leads (full_name, email, source_form_name, submission_url, message)
				VALUES ('Sample Lead', 'sample.lead@example.com', 'contact', 'https://example.com/contact', 'Seeded lead.')
				ON CONFLICT (email) DO NOTHING`); err != nil {
				return fmt.Errorf("seed leads: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "seed data inserted")
			return nil
		},
	}
}
