package server

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/user/opendota-mcp/logging"
)

// AuditLog keeps one row per tool invocation in SQLite. It is operational
// bookkeeping only: recording failures are logged and swallowed so a broken
// audit sink never fails a tool call.
type AuditLog struct {
	db  *sql.DB
	log *logging.Logger
}

// OpenAuditLog opens (or creates) the audit database. An empty path uses a
// shared in-memory database.
func OpenAuditLog(dbPath string, logger *logging.Logger) (*AuditLog, error) {
	var db *sql.DB
	var err error

	if dbPath != "" {
		db, err = sql.Open("sqlite", "file:"+dbPath)
	} else {
		db, err = sql.Open("sqlite", "file:auditdb?mode=memory&cache=shared")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open audit database: %v", err)
	}

	if err := initAuditSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init audit schema: %v", err)
	}

	return &AuditLog{db: db, log: logger}, nil
}

func initAuditSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS tool_calls (
		id TEXT PRIMARY KEY,
		tool TEXT NOT NULL,
		arguments TEXT,
		success INTEGER NOT NULL,
		error TEXT,
		duration_ms INTEGER NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := db.Exec(schema)
	return err
}

// Record stores one invocation with a fresh invocation id.
func (a *AuditLog) Record(tool string, args any, success bool, callErr error, elapsed time.Duration) {
	argsJSON, err := json.Marshal(args)
	if err != nil {
		argsJSON = []byte("{}")
	}

	errText := ""
	if callErr != nil {
		errText = callErr.Error()
	}

	_, err = a.db.Exec(
		`INSERT INTO tool_calls (id, tool, arguments, success, error, duration_ms) VALUES (?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), tool, string(argsJSON), boolToInt(success), errText, elapsed.Milliseconds(),
	)
	if err != nil && a.log != nil {
		a.log.Warn("audit record failed tool=%s err=%v", tool, err)
	}
}

// AuditEntry is one recorded invocation.
type AuditEntry struct {
	ID         string
	Tool       string
	Arguments  string
	Success    bool
	Error      string
	DurationMS int64
}

// RecentCalls returns the newest entries, most recent first.
func (a *AuditLog) RecentCalls(limit int) ([]AuditEntry, error) {
	rows, err := a.db.Query(
		`SELECT id, tool, arguments, success, error, duration_ms FROM tool_calls ORDER BY created_at DESC, id LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []AuditEntry
	for rows.Next() {
		var e AuditEntry
		var success int
		if err := rows.Scan(&e.ID, &e.Tool, &e.Arguments, &success, &e.Error, &e.DurationMS); err != nil {
			return nil, err
		}
		e.Success = success != 0
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Count returns the total number of recorded invocations.
func (a *AuditLog) Count() (int64, error) {
	var n int64
	err := a.db.QueryRow(`SELECT COUNT(*) FROM tool_calls`).Scan(&n)
	return n, err
}

func (a *AuditLog) Close() error {
	return a.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
