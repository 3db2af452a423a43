package consumer

import (
	"context"
	"encoding/json"

	"go-hrflow/internal/events"
	"go-hrflow/internal/notification"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeApprovalDecisions hands each decision event to the notifier.
// Delivery failures are logged and the message is committed anyway: a
// notification must never block or replay the approval that produced it.
func ConsumeApprovalDecisions(
	ctx context.Context,
	reader *kafkago.Reader,
	notifier notification.Notifier,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.approval_decision")
	log.Info("approval decision consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("approval decision consumer stopped")
				return
			}
			log.Error("fetch approval decision message failed", zap.Error(err))
			continue
		}

		var event events.ApprovalDecisionEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode approval decision event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := notifier.NotifyDecision(ctx, event); err != nil {
			log.Error("deliver approval notification failed",
				zap.String("item_kind", event.ItemKind),
				zap.String("item_id", event.ItemID),
				zap.String("company_id", event.CompanyID),
				zap.Error(err),
			)
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit approval decision message failed", zap.Error(err))
			continue
		}
	}
}
