package events

import "time"

const ApprovalDecisionTopic = "hr.approval.decision.v1"

const (
	EventItemSubmitted = "approval.item.submitted"
	EventItemApproved  = "approval.item.approved"
	EventItemRejected  = "approval.item.rejected"
)

// ApprovalDecisionEvent notifies the delivery side about one item that
// crossed a status boundary. One event is produced per transitioned item,
// including each item of a bulk auto-approval.
type ApprovalDecisionEvent struct {
	EventType       string    `json:"event_type"`
	CompanyID       string    `json:"company_id"`
	ItemKind        string    `json:"item_kind"`
	ItemID          string    `json:"item_id"`
	OwnerEmployeeID string    `json:"owner_employee_id"`
	ActorID         string    `json:"actor_id"`
	NewStatus       string    `json:"new_status"`
	OccurredAt      time.Time `json:"occurred_at"`
}
