package notification

import (
	"context"

	"go-hrflow/internal/events"

	"go.uber.org/zap"
)

// Notifier is the delivery collaborator for approval outcomes. Delivery is
// best-effort by contract: callers log failures and move on.
type Notifier interface {
	NotifyDecision(ctx context.Context, event events.ApprovalDecisionEvent) error
}

// logNotifier writes the notification to the log stream. The actual mail
// transport lives outside this service; this implementation stands in for
// it in every environment that has no mail relay configured.
type logNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) Notifier {
	return &logNotifier{logger: logger.Named("notification")}
}

func (n *logNotifier) NotifyDecision(_ context.Context, event events.ApprovalDecisionEvent) error {
	n.logger.Info("approval notification",
		zap.String("event_type", event.EventType),
		zap.String("company_id", event.CompanyID),
		zap.String("item_kind", event.ItemKind),
		zap.String("item_id", event.ItemID),
		zap.String("owner_employee_id", event.OwnerEmployeeID),
		zap.String("new_status", event.NewStatus),
	)
	return nil
}
