// Package telemetry is an optional, best-effort recorder for the
// collector's mark-and-sweep cycles, grounded on the teacher's DBManager
// (internal/database/db_manager.go): one sql.DB behind a driver name picked
// from a small set, exposed here as a value.Observer instead of a
// script-callable connection table.
package telemetry

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	_ "github.com/denisenkom/go-mssqldb"
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"scam/internal/value"
)

// Driver names this recorder accepts, matching DBManager's dbType switch.
const (
	DriverSQLite    = "sqlite"
	DriverPostgres  = "postgres"
	DriverMySQL     = "mysql"
	DriverSQLServer = "sqlserver"
)

func driverName(d string) (string, error) {
	switch d {
	case "", DriverSQLite, "sqlite3":
		return "sqlite", nil
	case DriverPostgres, "postgresql":
		return "postgres", nil
	case DriverMySQL:
		return "mysql", nil
	case DriverSQLServer, "mssql":
		return "sqlserver", nil
	default:
		return "", fmt.Errorf("telemetry: unsupported driver %q", d)
	}
}

// Recorder implements value.Observer, inserting one row per collection
// cycle. Every method call is best-effort: a write failure is logged (when
// verbose) and otherwise swallowed, never propagated into the interpreter.
type Recorder struct {
	db        *sql.DB
	sessionID string
	verbose   bool
	insertSQL string
}

// insertSQLFor builds the parameterized INSERT for driver, since the drivers
// behind database/sql don't agree on placeholder syntax: lib/pq wants
// $1.. and go-mssqldb wants @p1.., while mysql and modernc.org/sqlite both
// accept plain ?.
func insertSQLFor(driver string) string {
	const cols = "session_id, instance_id, before, after, freed, duration_ns, recorded_at"
	var ph [7]string
	switch driver {
	case "postgres":
		for i := range ph {
			ph[i] = fmt.Sprintf("$%d", i+1)
		}
	case "sqlserver":
		for i := range ph {
			ph[i] = fmt.Sprintf("@p%d", i+1)
		}
	default: // "sqlite", "mysql"
		for i := range ph {
			ph[i] = "?"
		}
	}
	return fmt.Sprintf(
		"INSERT INTO scam_gc_cycles (%s) VALUES (%s, %s, %s, %s, %s, %s, %s)",
		cols, ph[0], ph[1], ph[2], ph[3], ph[4], ph[5], ph[6],
	)
}

// Open connects to dsn using driver, creates the telemetry table if it does
// not exist, and returns a Recorder. Pass an empty dsn to get a disabled
// no-op recorder (Open never fails in that case).
func Open(driver, dsn string, verbose bool) (*Recorder, error) {
	if dsn == "" {
		return &Recorder{verbose: verbose}, nil
	}
	name, err := driverName(driver)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open(name, dsn)
	if err != nil {
		return nil, fmt.Errorf("telemetry: open %s: %w", name, err)
	}
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("telemetry: ping %s: %w", name, err)
	}
	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("telemetry: create table: %w", err)
	}
	return &Recorder{db: db, sessionID: uuid.NewString(), verbose: verbose, insertSQL: insertSQLFor(name)}, nil
}

const createTableSQL = `
CREATE TABLE IF NOT EXISTS scam_gc_cycles (
	session_id  TEXT NOT NULL,
	instance_id TEXT NOT NULL,
	before      INTEGER NOT NULL,
	after       INTEGER NOT NULL,
	freed       INTEGER NOT NULL,
	duration_ns INTEGER NOT NULL,
	recorded_at TEXT NOT NULL
)`

// OnCollect implements value.Observer.
func (r *Recorder) OnCollect(stats value.CollectStats) {
	if r.verbose {
		log.Printf("gc: %s freed %d of %d objects (%s -> %s) in %s",
			stats.InstanceID, stats.Freed, stats.Before,
			humanize.Comma(int64(stats.Before)), humanize.Comma(int64(stats.After)),
			stats.Duration)
	}
	if r.db == nil {
		return
	}
	_, err := r.db.Exec(
		r.insertSQL,
		r.sessionID, stats.InstanceID, stats.Before, stats.After, stats.Freed,
		stats.Duration.Nanoseconds(), time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil && r.verbose {
		log.Printf("telemetry: insert failed: %v", err)
	}
}

// Close releases the underlying connection pool, if any.
func (r *Recorder) Close() error {
	if r.db == nil {
		return nil
	}
	return r.db.Close()
}
