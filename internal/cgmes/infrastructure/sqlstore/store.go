package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"

	cgmes "cim-mapping/internal/cgmes/domain"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

const defaultTriplesTable = "cim_triples"

// Driver is a database/sql driver name.
type Driver string

const (
	DriverPostgres Driver = "pgx"
	DriverSQLite   Driver = "sqlite"
)

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func validTableName(table string) bool {
	return tableNamePattern.MatchString(table)
}

// DetectDriver picks the driver from the DSN. Postgres URLs use pgx,
// everything else is treated as a SQLite path.
func DetectDriver(dsn string) Driver {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return DriverPostgres
	}
	return DriverSQLite
}

// Store keeps CGMES triples in one SQL table and answers catalog queries
// against it. It implements cgmes.QueryExecutor.
type Store struct {
	db     *sql.DB
	driver Driver
	table  string
}

// Option configures the store.
type Option func(*Store)

// WithTable overrides the default triple table name.
func WithTable(table string) Option {
	return func(s *Store) {
		if table != "" {
			s.table = table
		}
	}
}

// Open connects to dsn with the detected driver.
func Open(ctx context.Context, dsn string, opts ...Option) (*Store, error) {
	if dsn == "" {
		return nil, errors.New("sqlstore: empty dsn")
	}
	driver := DetectDriver(dsn)
	db, err := sql.Open(string(driver), dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: open: %w", err)
	}
	if driver == DriverSQLite {
		// An in-memory database lives on a single connection.
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlstore: ping: %w", err)
	}
	store, err := New(db, driver, opts...)
	if err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// New wraps an open database.
func New(db *sql.DB, driver Driver, opts ...Option) (*Store, error) {
	if db == nil {
		return nil, errors.New("sqlstore: nil db")
	}
	store := &Store{db: db, driver: driver, table: defaultTriplesTable}
	for _, opt := range opts {
		opt(store)
	}
	if !validTableName(store.table) {
		return nil, fmt.Errorf("sqlstore: invalid table name %q", store.table)
	}
	return store, nil
}

// DB exposes the underlying handle.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Table returns the triple table name.
func (s *Store) Table() string {
	return s.table
}

// Close releases the database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Catalog returns a query catalog bound to this store's table.
func (s *Store) Catalog() *Catalog {
	return &Catalog{table: s.table}
}

// EnsureSchema creates the triple table and its indexes. The table holds
// a set: a triple is stored once however often it is loaded.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if s == nil || s.db == nil {
		return errors.New("sqlstore: nil db")
	}
	statements := []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	subject TEXT NOT NULL,
	predicate TEXT NOT NULL,
	object TEXT NOT NULL
)`, s.table),
		fmt.Sprintf(`CREATE UNIQUE INDEX IF NOT EXISTS %[1]s_triple_idx ON %[1]s (subject, predicate, object)`, s.table),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %[1]s_predicate_idx ON %[1]s (predicate, object)`, s.table),
	}
	for _, stmt := range statements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("sqlstore: schema: %w", err)
		}
	}
	return nil
}

// Load inserts triples in a single transaction and returns how many were
// new. Triples already stored are skipped.
func (s *Store) Load(ctx context.Context, triples []cgmes.Triple) (int, error) {
	if s == nil || s.db == nil {
		return 0, errors.New("sqlstore: nil db")
	}
	if len(triples) == 0 {
		return 0, nil
	}

	placeholders := "?, ?, ?"
	if s.driver == DriverPostgres {
		placeholders = "$1, $2, $3"
	}
	query := fmt.Sprintf(`INSERT INTO %s (subject, predicate, object) VALUES (%s) ON CONFLICT DO NOTHING`, s.table, placeholders)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("sqlstore: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("sqlstore: prepare: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for _, triple := range triples {
		res, err := stmt.ExecContext(ctx, triple.Subject, triple.Predicate, triple.Object)
		if err != nil {
			return 0, fmt.Errorf("sqlstore: insert %s %s: %w", triple.Subject, triple.Predicate, err)
		}
		if affected, err := res.RowsAffected(); err == nil {
			inserted += int(affected)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("sqlstore: commit: %w", err)
	}
	return inserted, nil
}

// Count returns the number of stored triples.
func (s *Store) Count(ctx context.Context) (int64, error) {
	if s == nil || s.db == nil {
		return 0, errors.New("sqlstore: nil db")
	}
	var count int64
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, s.table)
	if err := s.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// Query runs text and returns each row as a record keyed by column name.
// NULL columns are left out of the record.
func (s *Store) Query(ctx context.Context, text string) ([]cgmes.Record, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("sqlstore: nil db")
	}
	rows, err := s.db.QueryContext(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: query: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	records := make([]cgmes.Record, 0)
	values := make([]sql.NullString, len(columns))
	dest := make([]any, len(columns))
	for i := range values {
		dest[i] = &values[i]
	}
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("sqlstore: scan: %w", err)
		}
		record := make(cgmes.Record, len(columns))
		for i, column := range columns {
			if values[i].Valid {
				record[column] = values[i].String
			}
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
