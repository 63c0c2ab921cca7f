package seeder

import (
	"context"
	"fmt"
	"strings"

	"pitchmatch/internal/database"
)

// requireColumns fails when table lacks any of columns, so a seeder never
// writes against a schema that predates its migration.
func requireColumns(ctx context.Context, db database.DB, table string, columns ...string) error {
	if table == "" || len(columns) == 0 {
		return fmt.Errorf("require columns: empty table or column list")
	}

	rows, err := db.Query(ctx,
		`SELECT want FROM unnest($2::text[]) AS want
		 WHERE want NOT IN (
			SELECT column_name FROM information_schema.columns
			WHERE table_schema = 'public' AND table_name = $1
		 )`,
		table, columns,
	)
	if err != nil {
		return fmt.Errorf("inspect %s: %w", table, err)
	}
	defer rows.Close()

	var missing []string
	for rows.Next() {
		var col string
		if err := rows.Scan(&col); err != nil {
			return err
		}
		missing = append(missing, col)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	if len(missing) > 0 {
		return fmt.Errorf("%s is missing columns %s; run migrations first", table, strings.Join(missing, ", "))
	}
	return nil
}
