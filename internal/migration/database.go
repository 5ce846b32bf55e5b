package migration

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/go-sql-driver/mysql"

	"stp/internal/config"
	"stp/internal/storage"
)

// SQLMigrator creates the history database and tables
type SQLMigrator struct {
	config *config.Config
	out    io.Writer
}

// NewSQLMigrator creates a new SQLMigrator
func NewSQLMigrator(cfg *config.Config, out io.Writer) *SQLMigrator {
	return &SQLMigrator{config: cfg, out: out}
}

// Run provisions the configured history store
func (m *SQLMigrator) Run(ctx context.Context) error {
	if !m.config.HistoryEnabled() {
		return fmt.Errorf("no history DSN configured (set history_dsn or %s)", config.EnvHistoryDSN)
	}

	driver := m.config.HistoryDriver
	color.New(color.FgCyan).Fprintf(m.out, "Provisioning %s history store\n", driver)

	if driver == "mysql" {
		created, err := m.createMySQLDatabase(ctx, m.config.HistoryDSN)
		if err != nil {
			return err
		}
		if created != "" {
			color.New(color.FgWhite).Fprintf(m.out, "Created database %s\n", created)
		}
	}

	st, err := storage.OpenSQL(driver, m.config.HistoryDSN)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.DB().PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping history database: %w", err)
	}
	if err := st.EnsureSchema(ctx); err != nil {
		return err
	}

	color.New(color.FgGreen).Fprintln(m.out, "✓ History schema is up to date")
	return nil
}

// createMySQLDatabase creates the DSN's database if it does not exist and returns its name when created
func (m *SQLMigrator) createMySQLDatabase(ctx context.Context, dsn string) (string, error) {
	serverDSN, dbName, err := splitMySQLDSN(dsn)
	if err != nil {
		return "", err
	}
	if dbName == "" {
		return "", nil
	}
	if !isValidDatabaseName(dbName) {
		return "", fmt.Errorf("invalid database name: %s", dbName)
	}

	// Connect to MySQL server (without specifying database)
	db, err := sql.Open("mysql", serverDSN)
	if err != nil {
		return "", fmt.Errorf("failed to connect to database server: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return "", fmt.Errorf("failed to ping database server: %w", err)
	}

	exists, err := databaseExists(ctx, db, dbName)
	if err != nil {
		return "", fmt.Errorf("failed to check database %s: %w", dbName, err)
	}
	if exists {
		return "", nil
	}

	query := fmt.Sprintf("CREATE DATABASE IF NOT EXISTS `%s`", dbName)
	if _, err := db.ExecContext(ctx, query); err != nil {
		return "", fmt.Errorf("failed to create database %s: %w", dbName, err)
	}
	return dbName, nil
}

// splitMySQLDSN returns the DSN without its database and the database name
func splitMySQLDSN(dsn string) (string, string, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", "", fmt.Errorf("parse mysql DSN: %w", err)
	}
	dbName := cfg.DBName
	server := cfg.Clone()
	server.DBName = ""
	return server.FormatDSN(), dbName, nil
}

// databaseExists checks if a database exists
func databaseExists(ctx context.Context, db *sql.DB, dbName string) (bool, error) {
	var exists bool
	query := "SELECT EXISTS(SELECT SCHEMA_NAME FROM INFORMATION_SCHEMA.SCHEMATA WHERE SCHEMA_NAME = ?)"
	err := db.QueryRowContext(ctx, query, dbName).Scan(&exists)
	return exists, err
}

// isValidDatabaseName validates database name (basic check)
func isValidDatabaseName(name string) bool {
	if len(name) == 0 || len(name) > 64 {
		return false
	}
	for _, r := range name {
		if !(r == '_' || r == '$' || r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z') {
			return false
		}
	}
	return !strings.HasPrefix(name, "$")
}
