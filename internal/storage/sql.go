package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

// Both drivers accept this schema: SQLite maps LONGTEXT to TEXT affinity and
// MySQL limits indexed utf8mb4 VARCHAR keys to 191 characters.
const slotSchema = `CREATE TABLE IF NOT EXISTS slots (
	name VARCHAR(191) NOT NULL PRIMARY KEY,
	value LONGTEXT NOT NULL
)`

// SQLSlot stores the slot as one row of the "slots" table.
type SQLSlot struct {
	db     *sql.DB
	driver string
	name   string
}

// NewSQLiteSlot opens (or creates) a SQLite database at path. Use ":memory:"
// for a throwaway database.
func NewSQLiteSlot(ctx context.Context, path, name string) (*SQLSlot, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// Each connection to ":memory:" is a separate database.
	db.SetMaxOpenConns(1)
	return newSQLSlot(ctx, db, "sqlite", name)
}

// NewMySQLSlot connects to MySQL using a go-sql-driver DSN such as
// "user:pass@tcp(localhost:3306)/tasklist".
func NewMySQLSlot(ctx context.Context, dsn, name string) (*SQLSlot, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse mysql dsn: %w", err)
	}
	connector, err := mysql.NewConnector(cfg)
	if err != nil {
		return nil, fmt.Errorf("mysql connector: %w", err)
	}
	return newSQLSlot(ctx, sql.OpenDB(connector), "mysql", name)
}

func newSQLSlot(ctx context.Context, db *sql.DB, driver, name string) (*SQLSlot, error) {
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connect %s: %w", driver, err)
	}
	if _, err := db.ExecContext(ctx, slotSchema); err != nil {
		_ = db.Close() // Best effort cleanup on initialization error
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return &SQLSlot{db: db, driver: driver, name: name}, nil
}

// Get returns the stored value.
func (s *SQLSlot) Get(ctx context.Context) ([]byte, error) {
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM slots WHERE name = ?", s.name).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query slot: %w", err)
	}
	return []byte(value), nil
}

// Put replaces the stored value in one transaction. Delete-then-insert keeps
// the statement portable across SQLite and MySQL.
func (s *SQLSlot) Put(ctx context.Context, value []byte) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM slots WHERE name = ?", s.name); err != nil {
		return fmt.Errorf("delete slot: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO slots (name, value) VALUES (?, ?)", s.name, string(value)); err != nil {
		return fmt.Errorf("insert slot: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit slot: %w", err)
	}
	return nil
}

// Close closes the database.
func (s *SQLSlot) Close() error {
	return s.db.Close()
}

func (s *SQLSlot) String() string {
	return s.driver + ":" + s.name
}
