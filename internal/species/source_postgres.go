package species

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"fishlog-identify/internal/models"
)

// PostgresSource scans a species table. Columns are read generically so
// the table may use any of the LabelFields column names.
type PostgresSource struct {
	db      *sql.DB
	table   string
	maxRows int
}

func NewPostgresSource(db *sql.DB, table string, maxRows int) *PostgresSource {
	return &PostgresSource{db: db, table: table, maxRows: maxRows}
}

func (s *PostgresSource) Name() string { return "postgres" }

// FetchAll returns up to maxRows rows in table order.
func (s *PostgresSource) FetchAll(ctx context.Context) ([]models.Record, error) {
	query := fmt.Sprintf("SELECT * FROM %s LIMIT $1", pq.QuoteIdentifier(s.table))

	rows, err := s.db.QueryContext(ctx, query, s.maxRows)
	if err != nil {
		return nil, fmt.Errorf("query species: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read columns: %w", err)
	}

	var out []models.Record
	for rows.Next() {
		values := make([]interface{}, len(columns))
		ptrs := make([]interface{}, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan species row: %w", err)
		}

		rec := make(models.Record, len(columns))
		for i, col := range columns {
			if b, ok := values[i].([]byte); ok {
				rec[col] = string(b)
				continue
			}
			rec[col] = values[i]
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate species rows: %w", err)
	}
	return out, nil
}

// Ping reports whether the database is reachable.
func (s *PostgresSource) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
