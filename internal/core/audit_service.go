package core

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AuditService handles audit log operations: logging, querying, and export.
type AuditService struct {
	pool *pgxpool.Pool
}

// NewAuditService creates a new audit service.
func NewAuditService(pool *pgxpool.Pool) *AuditService {
	return &AuditService{pool: pool}
}

// EnsureSchema creates the persistence tables when they do not exist yet.
// Called once at startup; safe to call repeatedly.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS sheet_runs (
			id UUID PRIMARY KEY,
			op_key TEXT NOT NULL,
			file_name TEXT NOT NULL,
			artifact_name TEXT NOT NULL,
			cells_changed INTEGER NOT NULL DEFAULT 0,
			rows_removed INTEGER NOT NULL DEFAULT 0,
			summary TEXT NOT NULL DEFAULT '',
			duration_ms BIGINT NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS sheet_runs_op_key_idx
			ON sheet_runs (op_key, created_at DESC)`,
		`CREATE TABLE IF NOT EXISTS sheet_audit_log (
			id UUID PRIMARY KEY,
			action TEXT NOT NULL,
			op_key TEXT NOT NULL DEFAULT '',
			run_id TEXT NOT NULL DEFAULT '',
			file_name TEXT NOT NULL DEFAULT '',
			ip_address TEXT NOT NULL DEFAULT '',
			user_agent TEXT NOT NULL DEFAULT '',
			rows_affected INTEGER NOT NULL DEFAULT 0,
			reason TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS sheet_audit_log_created_idx
			ON sheet_audit_log (created_at DESC)`,
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// Log writes one audit entry and returns it with ID and timestamp filled.
func (a *AuditService) Log(ctx context.Context, params AuditLogParams) (*AuditEntry, error) {
	entry := &AuditEntry{
		ID:           uuid.NewString(),
		Action:       params.Action,
		OpKey:        params.OpKey,
		RunID:        params.RunID,
		FileName:     params.FileName,
		IPAddress:    params.IPAddress,
		UserAgent:    params.UserAgent,
		RowsAffected: params.RowsAffected,
		Reason:       params.Reason,
		CreatedAt:    time.Now().UTC(),
	}

	_, err := a.pool.Exec(ctx, `
		INSERT INTO sheet_audit_log
			(id, action, op_key, run_id, file_name, ip_address,
			 user_agent, rows_affected, reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		entry.ID, string(entry.Action), entry.OpKey, entry.RunID, entry.FileName,
		entry.IPAddress, entry.UserAgent, entry.RowsAffected, entry.Reason,
		entry.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert audit entry: %w", err)
	}

	return entry, nil
}

// List returns audit entries newest first.
func (a *AuditService) List(ctx context.Context, limit, offset int) ([]AuditEntry, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := a.pool.Query(ctx, `
		SELECT id, action, op_key, run_id, file_name, ip_address,
		       user_agent, rows_affected, reason, created_at
		FROM sheet_audit_log
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("query audit log: %w", err)
	}
	defer rows.Close()

	var entries []AuditEntry
	for rows.Next() {
		var e AuditEntry
		var action string
		if err := rows.Scan(&e.ID, &action, &e.OpKey, &e.RunID, &e.FileName,
			&e.IPAddress, &e.UserAgent, &e.RowsAffected, &e.Reason, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		e.Action = AuditAction(action)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ExportCSV streams the audit log as CSV, newest first.
func (a *AuditService) ExportCSV(ctx context.Context, w io.Writer) error {
	rows, err := a.pool.Query(ctx, `
		SELECT id, action, op_key, run_id, file_name, ip_address,
		       user_agent, rows_affected, reason, created_at
		FROM sheet_audit_log
		ORDER BY created_at DESC`)
	if err != nil {
		return fmt.Errorf("query audit log: %w", err)
	}
	defer rows.Close()

	cw := csv.NewWriter(w)
	header := []string{"id", "action", "op_key", "run_id", "file_name",
		"ip_address", "user_agent", "rows_affected", "reason", "created_at"}
	if err := cw.Write(header); err != nil {
		return err
	}

	for rows.Next() {
		var e AuditEntry
		var action string
		if err := rows.Scan(&e.ID, &action, &e.OpKey, &e.RunID, &e.FileName,
			&e.IPAddress, &e.UserAgent, &e.RowsAffected, &e.Reason, &e.CreatedAt); err != nil {
			return fmt.Errorf("scan audit entry: %w", err)
		}
		record := []string{
			e.ID, action, e.OpKey, e.RunID, e.FileName,
			e.IPAddress, e.UserAgent, strconv.Itoa(e.RowsAffected),
			e.Reason, e.CreatedAt.Format(time.RFC3339),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	cw.Flush()
	return cw.Error()
}
