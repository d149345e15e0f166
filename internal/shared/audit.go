package shared

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// AuditRecord represents a record stored in audit_logs.
type AuditRecord struct {
	Actor  string
	Action string
	Meta   map[string]any
	At     time.Time
}

// Auditor records security-relevant events.
type Auditor interface {
	Record(ctx context.Context, rec AuditRecord) error
}

// AuditLogger writes records into audit_logs.
type AuditLogger struct {
	pool *pgxpool.Pool
}

// NewAuditLogger returns a new AuditLogger.
func NewAuditLogger(pool *pgxpool.Pool) *AuditLogger {
	return &AuditLogger{pool: pool}
}

// Record persists the log entry.
func (l *AuditLogger) Record(ctx context.Context, rec AuditRecord) error {
	if l == nil {
		return errors.New("audit logger not initialised")
	}
	if rec.Actor == "" || rec.Action == "" {
		return errors.New("audit record requires actor/action")
	}
	metaJSON, err := json.Marshal(rec.Meta)
	if err != nil {
		return err
	}
	at := rec.At
	if at.IsZero() {
		at = time.Now().UTC()
	}
	_, err = l.pool.Exec(ctx, `INSERT INTO audit_logs (actor, action, meta, occurred_at) VALUES ($1, $2, $3, $4)`, rec.Actor, rec.Action, metaJSON, at)
	return err
}

var _ Auditor = (*AuditLogger)(nil)
