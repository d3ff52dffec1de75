package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sheetops/sheetops/internal/config"
	"github.com/sheetops/sheetops/internal/profile"
	"github.com/sheetops/sheetops/internal/report"
	"github.com/sheetops/sheetops/internal/workbook"
)

// ErrUnknownOperation is returned for operation keys not in the registry.
var ErrUnknownOperation = errors.New("unknown operation")

// ErrFileTooLarge is returned when an upload exceeds the configured limit.
var ErrFileTooLarge = errors.New("file too large")

// ErrRunNotFound is returned when a run ID has expired or never existed.
var ErrRunNotFound = errors.New("run not found")

// Service orchestrates workbook operations: it parses uploads, dispatches
// to registered operations, retains artifacts for download, and records
// audit and history rows in Postgres.
type Service struct {
	cfg      *config.Config
	pool     *pgxpool.Pool
	audit    *AuditService
	profiler *profile.Profiler
	reports  *report.Generator

	mu   sync.RWMutex
	runs map[string]*RunResult
}

// NewService creates a Service. A nil pool disables persistence: runs still
// execute and artifacts are retained in memory, but nothing is written to
// the database. That mode exists for tests and for ad-hoc local use.
func NewService(pool *pgxpool.Pool, cfg *config.Config) (*Service, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nil config")
	}

	profiler := profile.New()
	profiler.TypeVoteWindow = cfg.Profile.TypeVoteWindow
	profiler.QualityWindow = cfg.Profile.QualityWindow
	profiler.MaxSamples = cfg.Profile.MaxSamples
	profiler.MaxSampleLen = cfg.Profile.MaxSampleLen

	if cfg.Profile.RulesPath != "" {
		rules, err := profile.LoadRules(cfg.Profile.RulesPath)
		if err != nil {
			return nil, fmt.Errorf("advisory rules: %w", err)
		}
		profiler.Rules = rules
		slog.Info("loaded advisory rules", "path", cfg.Profile.RulesPath, "count", len(rules))
	}

	reports := report.NewGenerator(profiler)
	reports.MaxExportRows = cfg.Report.MaxExportRows

	s := &Service{
		cfg:      cfg,
		pool:     pool,
		profiler: profiler,
		reports:  reports,
		runs:     make(map[string]*RunResult),
	}
	if pool != nil {
		s.audit = NewAuditService(pool)
	}
	return s, nil
}

// Audit exposes the audit service, nil when persistence is disabled.
func (s *Service) Audit() *AuditService {
	return s.audit
}

// ListOperations returns all registered operations grouped for display.
func (s *Service) ListOperations() map[string][]OpInfo {
	result := make(map[string][]OpInfo)
	for _, group := range Groups() {
		defs := ByGroup(group)
		infos := make([]OpInfo, len(defs))
		for i, def := range defs {
			infos[i] = def.Info
		}
		result[group] = infos
	}
	return result
}

// RunOperation executes one operation against an uploaded file and returns
// the recorded result. The artifact stays downloadable via GetRun until the
// retention window lapses.
func (s *Service) RunOperation(ctx context.Context, opKey, fileName string, data []byte, meta RequestMeta) (*RunResult, error) {
	def, ok := Get(opKey)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownOperation, opKey)
	}

	if int64(len(data)) > s.cfg.Upload.MaxFileSize {
		return nil, fmt.Errorf("%w: %d bytes (limit %d)", ErrFileTooLarge, len(data), s.cfg.Upload.MaxFileSize)
	}
	if !allowedExtension(fileName, s.cfg.Upload.AllowedExtensions) {
		return nil, fmt.Errorf("unsupported file type: %s (allowed: %v)", fileName, s.cfg.Upload.AllowedExtensions)
	}

	if isCSV(fileName) {
		data = sanitizeUTF8(data)
	}

	wb, err := workbook.Load(fileName, data)
	if err != nil {
		return nil, fmt.Errorf("load workbook: %w", err)
	}

	start := time.Now()
	outcome, err := def.Run(ctx, &RunRequest{
		FileName: fileName,
		Raw:      data,
		Workbook: wb,
		Profiler: s.profiler,
		Reports:  s.reports,
	})
	if err != nil {
		s.auditFailure(ctx, def.Info.Key, fileName, meta, err)
		return nil, fmt.Errorf("run %s: %w", opKey, err)
	}

	result := &RunResult{
		RunID:        uuid.NewString(),
		OpKey:        def.Info.Key,
		FileName:     fileName,
		ArtifactName: outcome.ArtifactName,
		ContentType:  outcome.ContentType,
		CellsChanged: outcome.CellsChanged,
		RowsRemoved:  outcome.RowsRemoved,
		Summary:      outcome.Summary,
		Duration:     time.Since(start),
		DurationMs:   time.Since(start).Milliseconds(),
		CreatedAt:    time.Now().UTC(),
		Artifact:     outcome.Artifact,
	}

	s.mu.Lock()
	s.runs[result.RunID] = result
	s.mu.Unlock()
	go s.expireRun(result.RunID, s.cfg.Runs.Retention)

	s.recordRun(ctx, result, meta)

	slog.Info("operation completed",
		"op", result.OpKey,
		"file", result.FileName,
		"cells_changed", result.CellsChanged,
		"rows_removed", result.RowsRemoved,
		"duration_ms", result.DurationMs,
	)
	return result, nil
}

// GetRun returns a retained run result by ID.
func (s *Service) GetRun(runID string) (*RunResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result, ok := s.runs[runID]
	if !ok {
		return nil, ErrRunNotFound
	}
	return result, nil
}

// RunHistory returns the persisted history for one operation key, newest
// first. Without a database it returns an empty history.
func (s *Service) RunHistory(ctx context.Context, opKey string, limit int) ([]RunHistoryEntry, error) {
	if s.pool == nil {
		return nil, nil
	}
	if limit <= 0 || limit > 500 {
		limit = 50
	}

	rows, err := s.pool.Query(ctx, `
		SELECT id, op_key, file_name, artifact_name, cells_changed,
		       rows_removed, summary, duration_ms, created_at
		FROM sheet_runs
		WHERE op_key = $1
		ORDER BY created_at DESC
		LIMIT $2`, opKey, limit)
	if err != nil {
		return nil, fmt.Errorf("query run history: %w", err)
	}
	defer rows.Close()

	var history []RunHistoryEntry
	for rows.Next() {
		var e RunHistoryEntry
		if err := rows.Scan(&e.RunID, &e.OpKey, &e.FileName, &e.ArtifactName,
			&e.CellsChanged, &e.RowsRemoved, &e.Summary, &e.DurationMs, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan run history: %w", err)
		}
		history = append(history, e)
	}
	return history, rows.Err()
}

// expireRun drops a retained artifact after the retention window.
func (s *Service) expireRun(runID string, after time.Duration) {
	time.Sleep(after)

	s.mu.Lock()
	delete(s.runs, runID)
	s.mu.Unlock()
}

// recordRun persists the run row and its audit entry. Persistence failures
// are logged, not propagated: the operation already succeeded and the
// caller holds its artifact.
func (s *Service) recordRun(ctx context.Context, result *RunResult, meta RequestMeta) {
	if s.pool == nil {
		return
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO sheet_runs
			(id, op_key, file_name, artifact_name, cells_changed,
			 rows_removed, summary, duration_ms, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		result.RunID, result.OpKey, result.FileName, result.ArtifactName,
		result.CellsChanged, result.RowsRemoved, result.Summary,
		result.DurationMs, result.CreatedAt)
	if err != nil {
		slog.Error("failed to record run", "run_id", result.RunID, "error", err)
	}

	if _, err := s.audit.Log(ctx, AuditLogParams{
		Action:       ActionRun,
		OpKey:        result.OpKey,
		RunID:        result.RunID,
		FileName:     result.FileName,
		IPAddress:    meta.IPAddress,
		UserAgent:    meta.UserAgent,
		RowsAffected: result.RowsRemoved,
		Reason:       result.Summary,
	}); err != nil {
		slog.Error("failed to audit run", "run_id", result.RunID, "error", err)
	}
}

func (s *Service) auditFailure(ctx context.Context, opKey, fileName string, meta RequestMeta, runErr error) {
	if s.audit == nil {
		return
	}

	if _, err := s.audit.Log(ctx, AuditLogParams{
		Action:    ActionRunFailed,
		OpKey:     opKey,
		FileName:  fileName,
		IPAddress: meta.IPAddress,
		UserAgent: meta.UserAgent,
		Reason:    runErr.Error(),
	}); err != nil {
		slog.Error("failed to audit run failure", "op", opKey, "error", err)
	}
}
