package bootstrap

import "context"

// AuditLog is a process-lifecycle audit record, distinct from the per-item
// audit trail the approval engine persists.
type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}
