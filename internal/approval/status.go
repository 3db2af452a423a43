package approval

// Status is the lifecycle state shared by both approvable item kinds.
type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusSubmitted Status = "SUBMITTED"
	StatusApproved  Status = "APPROVED"
	StatusRejected  Status = "REJECTED"
	// StatusInvoiced is terminal and only ever written by the external
	// billing process; no transition in this engine produces it.
	StatusInvoiced Status = "INVOICED"
)

// IsKnownStatus reports whether s names one of the lifecycle states.
// List filters use it to reject typo'd status values up front.
func IsKnownStatus(s Status) bool {
	switch s {
	case StatusDraft, StatusSubmitted, StatusApproved, StatusRejected, StatusInvoiced:
		return true
	default:
		return false
	}
}

// isAllowedTransition encodes the full transition table. Everything not
// listed here (including anything out of APPROVED or INVOICED) is illegal.
func isAllowedTransition(from, to Status) bool {
	switch to {
	case StatusSubmitted:
		return from == StatusDraft || from == StatusRejected
	case StatusApproved, StatusRejected:
		return from == StatusSubmitted
	default:
		return false
	}
}

// submittableFrom lists the source states a submit may race against; the
// conditional update uses it as its WHERE predicate.
var submittableFrom = []Status{StatusDraft, StatusRejected}
