package repositories

import (
	"database/sql"
	"fmt"

	"github.com/playerz/playerz-api/models"
)

// ProjectRow maps every column of one row to its value. Nulls stay nil.
func ProjectRow(columns []string, values []interface{}) models.Record {
	rec := make(models.Record, len(columns))
	for i, col := range columns {
		var v interface{}
		if i < len(values) {
			v = values[i]
		}
		rec[col] = v
	}
	return rec
}

// collectRecords projects every row of rows, in the order the store returned them.
func collectRecords(rows *sql.Rows) ([]models.Record, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read result columns: %w", err)
	}

	records := make([]models.Record, 0)
	for rows.Next() {
		values := make([]interface{}, len(columns))
		ptrs := make([]interface{}, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		// lib/pq hands numeric and some text-like types back as []byte.
		for i, v := range values {
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		records = append(records, ProjectRow(columns, values))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return records, nil
}
