package database

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"catalog-client/internal/config"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Gateway is the only path handlers have to the catalog database.
type Gateway interface {
	// Execute runs a statement without a result set and returns the affected row count.
	Execute(ctx context.Context, query string, args ...any) (int64, error)
	// QueryPrint writes a header of column names and then every row, tab separated.
	QueryPrint(ctx context.Context, query string, args ...any) (int, error)
	// QueryCollect returns every row as ordered string fields.
	QueryCollect(ctx context.Context, query string, args ...any) ([][]string, error)
	// QueryCount returns the number of rows produced by the query.
	QueryCount(ctx context.Context, query string, args ...any) (int, error)
	// LastSeqVal returns the value most recently handed out by any sequence on this session,
	// or -1 when there is none. A failed read aborts an open transaction, so call it after commit.
	LastSeqVal(ctx context.Context) int
	// Transaction commits when fn returns nil and rolls back otherwise.
	Transaction(ctx context.Context, fn func(tx Gateway) error) error
}

// DB implements Gateway on top of gorm.
type DB struct {
	gdb *gorm.DB
	out io.Writer
}

// Open connects to Postgres and pins the pool to a single connection.
func Open(cfg *config.Config, out io.Writer) (*DB, error) {
	// statement errors reach the user through the menu; gorm would print them a second time
	gdb, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{Logger: gormlogger.Discard})
	if err != nil {
		return nil, &ConnectError{Err: err}
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, &ConnectError{Err: err}
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, &ConnectError{Err: err}
	}

	return New(gdb, out), nil
}

// New wraps an already opened gorm handle. out receives QueryPrint output.
func New(gdb *gorm.DB, out io.Writer) *DB {
	if out == nil {
		out = os.Stdout
	}
	return &DB{gdb: gdb, out: out}
}

// Close releases the physical connection.
func (d *DB) Close() error {
	sqlDB, err := d.gdb.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (d *DB) Execute(ctx context.Context, query string, args ...any) (int64, error) {
	res := d.gdb.WithContext(ctx).Exec(query, args...)
	if res.Error != nil {
		return 0, wrap("execute", res.Error)
	}
	return res.RowsAffected, nil
}

func (d *DB) QueryPrint(ctx context.Context, query string, args ...any) (int, error) {
	rows, err := d.gdb.WithContext(ctx).Raw(query, args...).Rows()
	if err != nil {
		return 0, wrap("query", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return 0, wrap("columns", err)
	}

	count := 0
	for rows.Next() {
		if count == 0 {
			fmt.Fprintln(d.out, strings.Join(cols, "\t"))
		}
		record, err := scanStrings(rows, len(cols))
		if err != nil {
			return count, wrap("scan", err)
		}
		fmt.Fprintln(d.out, strings.Join(record, "\t"))
		count++
	}
	if err := rows.Err(); err != nil {
		return count, wrap("rows", err)
	}
	return count, nil
}

func (d *DB) QueryCollect(ctx context.Context, query string, args ...any) ([][]string, error) {
	rows, err := d.gdb.WithContext(ctx).Raw(query, args...).Rows()
	if err != nil {
		return nil, wrap("query", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, wrap("columns", err)
	}

	result := make([][]string, 0)
	for rows.Next() {
		record, err := scanStrings(rows, len(cols))
		if err != nil {
			return nil, wrap("scan", err)
		}
		result = append(result, record)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("rows", err)
	}
	return result, nil
}

func (d *DB) QueryCount(ctx context.Context, query string, args ...any) (int, error) {
	rows, err := d.gdb.WithContext(ctx).Raw(query, args...).Rows()
	if err != nil {
		return 0, wrap("query", err)
	}
	defer rows.Close()

	count := 0
	for rows.Next() {
		count++
	}
	if err := rows.Err(); err != nil {
		return count, wrap("rows", err)
	}
	return count, nil
}

// LastSeqVal relies on the pool being pinned to one connection: lastval() is per session.
func (d *DB) LastSeqVal(ctx context.Context) int {
	var value sql.NullInt64
	if err := d.gdb.WithContext(ctx).Raw("SELECT lastval()").Row().Scan(&value); err != nil {
		slog.Warn("lastval unavailable", "error", err)
		return -1
	}
	if !value.Valid {
		return -1
	}
	return int(value.Int64)
}

func (d *DB) Transaction(ctx context.Context, fn func(tx Gateway) error) error {
	return d.gdb.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&DB{gdb: tx, out: d.out})
	})
}

// scanStrings reads the current row as text; NULL is rendered as "null".
func scanStrings(rows *sql.Rows, n int) ([]string, error) {
	values := make([]sql.NullString, n)
	dest := make([]any, n)
	for i := range values {
		dest[i] = &values[i]
	}
	if err := rows.Scan(dest...); err != nil {
		return nil, err
	}
	record := make([]string, n)
	for i, v := range values {
		if v.Valid {
			record[i] = v.String
		} else {
			record[i] = "null"
		}
	}
	return record, nil
}
