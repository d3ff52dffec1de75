package core

import "time"

// AuditAction represents the type of action being audited.
type AuditAction string

const (
	ActionRun       AuditAction = "run"
	ActionRunFailed AuditAction = "run_failed"
	ActionDownload  AuditAction = "artifact_download"
)

// AuditEntry represents a single audit log entry.
type AuditEntry struct {
	ID           string      `json:"id"`
	Action       AuditAction `json:"action"`
	OpKey        string      `json:"opKey,omitempty"`
	RunID        string      `json:"runId,omitempty"`
	FileName     string      `json:"fileName,omitempty"`
	IPAddress    string      `json:"ipAddress,omitempty"`
	UserAgent    string      `json:"userAgent,omitempty"`
	RowsAffected int         `json:"rowsAffected,omitempty"`
	Reason       string      `json:"reason,omitempty"`
	CreatedAt    time.Time   `json:"createdAt"`
}

// AuditLogParams contains parameters for creating an audit log entry.
type AuditLogParams struct {
	Action       AuditAction
	OpKey        string
	RunID        string
	FileName     string
	IPAddress    string
	UserAgent    string
	RowsAffected int
	Reason       string
}
