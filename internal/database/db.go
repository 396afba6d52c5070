package database

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"
)

//go:embed migrations/001_initial.sql
var initialMigration string

// Supported drivers
const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)

// Options selects and locates the database
type Options struct {
	Driver string
	// Path is the sqlite database file
	Path string
	// DSN, when set, is passed to the mysql driver as is
	DSN      string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	Tables   Tables
}

// DB wraps the SQL database connection
type DB struct {
	*sqlx.DB
	driver string
	tables Tables
}

// Open opens or creates the database and creates any missing tables
func Open(opts Options) (*DB, error) {
	var (
		sqlDB *sqlx.DB
		err   error
	)

	switch opts.Driver {
	case DriverSQLite, "":
		sqlDB, err = openSQLite(opts.Path)
	case DriverMySQL:
		sqlDB, err = sqlx.Open("mysql", mysqlDSN(opts))
	default:
		return nil, fmt.Errorf("unsupported database driver %q", opts.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	tables := opts.Tables
	if tables == (Tables{}) {
		tables = DefaultTables()
	}
	db := &DB{DB: sqlDB, driver: opts.Driver, tables: tables}

	if err := db.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

func openSQLite(path string) (*sqlx.DB, error) {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=ON", path)
	sqlDB, err := sqlx.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes
	sqlDB.SetMaxIdleConns(1)
	return sqlDB, nil
}

func mysqlDSN(opts Options) string {
	if opts.DSN != "" {
		return opts.DSN
	}

	cfg := mysql.NewConfig()
	cfg.Net = "tcp"
	cfg.Addr = fmt.Sprintf("%s:%d", opts.Host, opts.Port)
	cfg.DBName = opts.Name
	cfg.User = opts.User
	cfg.Passwd = opts.Password
	cfg.AllowNativePasswords = true
	cfg.ParseTime = true
	return cfg.FormatDSN()
}

// migrate creates the tables that do not exist yet
func (db *DB) migrate() error {
	for _, stmt := range strings.Split(initialMigration, ";") {
		if strings.TrimSpace(stripComments(stmt)) == "" {
			continue
		}
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to run initial migration: %w", err)
		}
	}
	return nil
}

func stripComments(stmt string) string {
	var b strings.Builder
	for _, line := range strings.Split(stmt, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

// Driver returns the driver name the database was opened with
func (db *DB) Driver() string {
	if db.driver == "" {
		return DriverSQLite
	}
	return db.driver
}

// Transaction runs a function in a transaction
func (db *DB) Transaction(ctx context.Context, fn func(*sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}

// Health checks database connectivity
func (db *DB) Health(ctx context.Context) error {
	return db.PingContext(ctx)
}

// isDuplicateKey reports whether err is a primary key or unique violation
func isDuplicateKey(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1062
	}
	return false
}
