// Package sqldb stores the ledger keyspace in a single two-column table of a
// relational database. SQLite (modernc.org/sqlite) and PostgreSQL
// (github.com/lib/pq) are supported.
package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/LeJamon/goQortald/internal/storage/database"
	_ "github.com/lib/pq" // PostgreSQL driver
	_ "modernc.org/sqlite"
)

// Dialect captures the SQL differences between supported drivers.
type Dialect struct {
	Driver   string
	BlobType string
	// Numbered placeholders ($1, $2) instead of '?'.
	Numbered bool
}

var (
	SQLite   = Dialect{Driver: "sqlite", BlobType: "BLOB"}
	Postgres = Dialect{Driver: "postgres", BlobType: "BYTEA", Numbered: true}
)

// DialectFor returns the dialect registered for a driver name.
func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case SQLite.Driver, "sqlite3":
		return SQLite, nil
	case Postgres.Driver:
		return Postgres, nil
	}
	return Dialect{}, fmt.Errorf("unsupported sql driver %q", driver)
}

// rebind rewrites '?' placeholders for dialects that number them.
func (d Dialect) rebind(query string) string {
	if !d.Numbered {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

const table = "ledger_kv"

type queries struct {
	get, put, del, scanFrom, scanRange string
}

func (d Dialect) queries() queries {
	return queries{
		get: d.rebind("SELECT v FROM " + table + " WHERE k = ?"),
		put: d.rebind("INSERT INTO " + table + " (k, v) VALUES (?, ?) " +
			"ON CONFLICT (k) DO UPDATE SET v = excluded.v"),
		del:       d.rebind("DELETE FROM " + table + " WHERE k = ?"),
		scanFrom:  d.rebind("SELECT k, v FROM " + table + " WHERE k >= ? ORDER BY k"),
		scanRange: d.rebind("SELECT k, v FROM " + table + " WHERE k >= ? AND k < ? ORDER BY k"),
	}
}

type DB struct {
	db      *sql.DB
	dialect Dialect
	q       queries
}

// Open connects with the given driver and data source and creates the table
// if needed.
func Open(ctx context.Context, driver, dsn string) (*DB, error) {
	dialect, err := DialectFor(driver)
	if err != nil {
		return nil, err
	}
	sqlDB, err := sql.Open(dialect.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", driver, err)
	}
	if dialect == SQLite {
		// One connection keeps transactions serialised and avoids SQLITE_BUSY.
		sqlDB.SetMaxOpenConns(1)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", driver, err)
	}

	db := &DB{db: sqlDB, dialect: dialect, q: dialect.queries()}
	if err := db.initSchema(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return db, nil
}

func (s *DB) initSchema(ctx context.Context) error {
	stmt := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		k %s PRIMARY KEY,
		v %s NOT NULL
	)`, table, s.dialect.BlobType, s.dialect.BlobType)
	_, err := s.db.ExecContext(ctx, stmt)
	return err
}

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *DB) read(ctx context.Context, e execer, key []byte) ([]byte, error) {
	var v []byte
	err := e.QueryRowContext(ctx, s.q.get, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, database.ErrKeyNotFound
	}
	if err != nil {
		return nil, err
	}
	if v == nil {
		v = []byte{}
	}
	return v, nil
}

func (s *DB) write(ctx context.Context, e execer, key, value []byte) error {
	if len(key) == 0 {
		return database.ErrEmptyKey
	}
	if value == nil {
		value = []byte{}
	}
	_, err := e.ExecContext(ctx, s.q.put, key, value)
	return err
}

func (s *DB) delete(ctx context.Context, e execer, key []byte) error {
	_, err := e.ExecContext(ctx, s.q.del, key)
	return err
}

// scan reads the whole range before returning: lib/pq cannot run another
// statement on a transaction while rows are open.
func (s *DB) scan(ctx context.Context, e execer, start, end []byte) (database.Iterator, error) {
	if start == nil {
		start = []byte{}
	}
	var (
		rows *sql.Rows
		err  error
	)
	if end == nil {
		rows, err = e.QueryContext(ctx, s.q.scanFrom, start)
	} else {
		rows, err = e.QueryContext(ctx, s.q.scanRange, start, end)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys, values [][]byte
	for rows.Next() {
		var k, v []byte
		if err := rows.Scan(&k, &v); err != nil {
			return nil, err
		}
		keys = append(keys, k)
		values = append(values, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return database.NewSliceIterator(keys, values), nil
}

func (s *DB) Read(ctx context.Context, key []byte) ([]byte, error) {
	if s.db == nil {
		return nil, database.ErrDBClosed
	}
	return s.read(ctx, s.db, key)
}

func (s *DB) Write(ctx context.Context, key, value []byte) error {
	if s.db == nil {
		return database.ErrDBClosed
	}
	return s.write(ctx, s.db, key, value)
}

func (s *DB) Delete(ctx context.Context, key []byte) error {
	if s.db == nil {
		return database.ErrDBClosed
	}
	return s.delete(ctx, s.db, key)
}

func (s *DB) Batch(ctx context.Context, ops []database.BatchOperation) error {
	return database.ApplyBatch(ctx, s, ops)
}

func (s *DB) Iterator(ctx context.Context, start, end []byte) (database.Iterator, error) {
	if s.db == nil {
		return nil, database.ErrDBClosed
	}
	return s.scan(ctx, s.db, start, end)
}

func (s *DB) Begin(ctx context.Context) (database.Txn, error) {
	if s.db == nil {
		return nil, database.ErrDBClosed
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &Txn{db: s, tx: tx}, nil
}

func (s *DB) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

type Txn struct {
	db *DB
	tx *sql.Tx
}

func (t *Txn) Read(ctx context.Context, key []byte) ([]byte, error) {
	if t.tx == nil {
		return nil, database.ErrTxnClosed
	}
	return t.db.read(ctx, t.tx, key)
}

func (t *Txn) Write(ctx context.Context, key, value []byte) error {
	if t.tx == nil {
		return database.ErrTxnClosed
	}
	return t.db.write(ctx, t.tx, key, value)
}

func (t *Txn) Delete(ctx context.Context, key []byte) error {
	if t.tx == nil {
		return database.ErrTxnClosed
	}
	return t.db.delete(ctx, t.tx, key)
}

func (t *Txn) Iterator(ctx context.Context, start, end []byte) (database.Iterator, error) {
	if t.tx == nil {
		return nil, database.ErrTxnClosed
	}
	return t.db.scan(ctx, t.tx, start, end)
}

func (t *Txn) Commit(ctx context.Context) error {
	if t.tx == nil {
		return nil
	}
	tx := t.tx
	t.tx = nil
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (t *Txn) Discard() error {
	if t.tx == nil {
		return nil
	}
	tx := t.tx
	t.tx = nil
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return err
	}
	return nil
}
