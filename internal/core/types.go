// Package core provides the business logic for workbook operations.
// This package has no HTTP dependencies and can be driven by any frontend.
package core

import (
	"context"
	"time"

	"github.com/sheetops/sheetops/internal/profile"
	"github.com/sheetops/sheetops/internal/report"
	"github.com/sheetops/sheetops/internal/workbook"
)

// OpInfo contains display information about an operation.
type OpInfo struct {
	Key         string `json:"key"`         // Unique identifier: "doc_markdown"
	Group       string `json:"group"`       // Category: "Cleanup", "Export", "Docs"
	Label       string `json:"label"`       // Display name: "Documentation (Markdown)"
	Description string `json:"description"` // One-line summary for listings
}

// RunRequest carries everything an operation needs for one invocation.
type RunRequest struct {
	// FileName is the uploaded file's name, used for format dispatch and
	// artifact naming.
	FileName string

	// Raw is the uploaded file exactly as received.
	Raw []byte

	// Workbook is the parsed model of Raw.
	Workbook *workbook.Workbook

	// Profiler and Reports are shared, configured helpers. Operations
	// must not mutate them.
	Profiler *profile.Profiler
	Reports  *report.Generator
}

// Outcome is what an operation produces: an artifact plus change counters.
type Outcome struct {
	ArtifactName string
	ContentType  string
	Artifact     []byte
	CellsChanged int
	RowsRemoved  int
	Summary      string
}

// RunFunc executes one operation against a parsed workbook.
type RunFunc func(ctx context.Context, req *RunRequest) (*Outcome, error)

// OpDefinition contains everything needed to run an operation.
type OpDefinition struct {
	Info OpInfo
	Run  RunFunc
}

// RunResult is the recorded result of one operation run. The artifact is
// held in memory for a bounded retention window and downloadable by run ID.
type RunResult struct {
	RunID        string        `json:"runId"`
	OpKey        string        `json:"opKey"`
	FileName     string        `json:"fileName"`
	ArtifactName string        `json:"artifactName"`
	ContentType  string        `json:"contentType"`
	CellsChanged int           `json:"cellsChanged"`
	RowsRemoved  int           `json:"rowsRemoved"`
	Summary      string        `json:"summary"`
	Duration     time.Duration `json:"-"`
	DurationMs   int64         `json:"durationMs"`
	CreatedAt    time.Time     `json:"createdAt"`

	Artifact []byte `json:"-"`
}

// RequestMeta identifies the caller for audit logging.
type RequestMeta struct {
	IPAddress string
	UserAgent string
}

// RunHistoryEntry is one row of an operation's persisted run history.
type RunHistoryEntry struct {
	RunID        string    `json:"runId"`
	OpKey        string    `json:"opKey"`
	FileName     string    `json:"fileName"`
	ArtifactName string    `json:"artifactName"`
	CellsChanged int       `json:"cellsChanged"`
	RowsRemoved  int       `json:"rowsRemoved"`
	Summary      string    `json:"summary"`
	DurationMs   int64     `json:"durationMs"`
	CreatedAt    time.Time `json:"createdAt"`
}
