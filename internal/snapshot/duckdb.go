package snapshot

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/marcboeker/go-duckdb"
	"github.com/rotisserie/eris"

	"github.com/joeblew999/plat-bridges/internal/bridge"
)

// OpenDB opens an in-memory DuckDB connection for reading snapshot tables.
func OpenDB() (*sql.DB, error) {
	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, eris.Wrap(err, "snapshot: open duckdb")
	}
	return db, nil
}

// jsonTable returns a read_json_auto table expression for a file path.
func jsonTable(path string) string {
	return fmt.Sprintf("read_json_auto('%s')", strings.ReplaceAll(path, "'", "''"))
}

// ReadInspections loads {bars_number, type, due} rows grouped by bridge.
// Rows without an identifier are dropped; due dates are kept as text and
// validated later by the urgency scorer.
func ReadInspections(ctx context.Context, db *sql.DB, path string) (map[string][]bridge.Inspection, error) {
	q := fmt.Sprintf(`SELECT CAST(bars_number AS VARCHAR), CAST("type" AS VARCHAR), CAST(due AS VARCHAR)
FROM %s WHERE bars_number IS NOT NULL`, jsonTable(path))
	rows, err := db.QueryContext(ctx, q)
	if err != nil {
		return nil, eris.Wrapf(err, "snapshot: query inspections %s", path)
	}
	defer rows.Close()

	out := make(map[string][]bridge.Inspection)
	for rows.Next() {
		var id string
		var typ, due sql.NullString
		if err := rows.Scan(&id, &typ, &due); err != nil {
			return nil, eris.Wrap(err, "snapshot: scan inspection")
		}
		out[id] = append(out[id], bridge.Inspection{Type: typ.String, Due: due.String})
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "snapshot: read inspections")
	}
	return out, nil
}

// ReadSufficiency loads {bars_number, sufficiency} rows. Missing or
// non-numeric scores are left out so they stay unknown.
func ReadSufficiency(ctx context.Context, db *sql.DB, path string) (map[string]float64, error) {
	q := fmt.Sprintf(`SELECT CAST(bars_number AS VARCHAR), TRY_CAST(sufficiency AS DOUBLE)
FROM %s WHERE bars_number IS NOT NULL AND TRY_CAST(sufficiency AS DOUBLE) IS NOT NULL`, jsonTable(path))
	rows, err := db.QueryContext(ctx, q)
	if err != nil {
		return nil, eris.Wrapf(err, "snapshot: query sufficiency %s", path)
	}
	defer rows.Close()

	out := make(map[string]float64)
	for rows.Next() {
		var id string
		var score float64
		if err := rows.Scan(&id, &score); err != nil {
			return nil, eris.Wrap(err, "snapshot: scan sufficiency")
		}
		out[id] = score
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "snapshot: read sufficiency")
	}
	return out, nil
}

// ReadProjects loads project rows as opaque maps grouped by bridge.
func ReadProjects(ctx context.Context, db *sql.DB, path string) (map[string][]bridge.Project, error) {
	rows, err := db.QueryContext(ctx, "SELECT * FROM "+jsonTable(path))
	if err != nil {
		return nil, eris.Wrapf(err, "snapshot: query projects %s", path)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, eris.Wrap(err, "snapshot: project columns")
	}

	out := make(map[string][]bridge.Project)
	for rows.Next() {
		values := make([]any, len(columns))
		valuePtrs := make([]any, len(columns))
		for i := range values {
			valuePtrs[i] = &values[i]
		}
		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, eris.Wrap(err, "snapshot: scan project")
		}

		row := make(bridge.Project, len(columns))
		for i, col := range columns {
			row[col] = values[i]
		}
		id := idString(row[propID])
		if id == "" {
			continue
		}
		out[id] = append(out[id], row)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "snapshot: read projects")
	}
	return out, nil
}
