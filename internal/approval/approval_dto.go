package approval

import "time"

type ItemResponse struct {
	ID                string  `json:"id"`
	CompanyID         string  `json:"company_id"`
	EmployeeID        string  `json:"employee_id"`
	Kind              string  `json:"kind"`
	Status            string  `json:"status"`
	SubmittedAt       *string `json:"submitted_at,omitempty"`
	ApproverID        *string `json:"approver_id,omitempty"`
	DecidedAt         *string `json:"decided_at,omitempty"`
	RejectionReason   *string `json:"rejection_reason,omitempty"`
	RejectionCategory *string `json:"rejection_category,omitempty"`
}

type RejectItemRequest struct {
	RejectionReason   string `json:"rejection_reason" binding:"required"`
	RejectionCategory string `json:"rejection_category"`
}

type AutoApproveResult struct {
	TimesheetsApproved int `json:"timesheets_approved"`
	ExpensesApproved   int `json:"expenses_approved"`
}

type RejectionHistoryResponse struct {
	ID         string  `json:"id"`
	ItemKind   string  `json:"item_kind"`
	ItemID     string  `json:"item_id"`
	RejectedBy string  `json:"rejected_by"`
	Reason     string  `json:"reason"`
	Category   string  `json:"category,omitempty"`
	RejectedAt string  `json:"rejected_at"`
	ResolvedAt *string `json:"resolved_at,omitempty"`
}

func mapItemToResponse(item Item, kind Kind) ItemResponse {
	resp := ItemResponse{
		ID:         item.ID.String(),
		CompanyID:  item.CompanyID.String(),
		EmployeeID: item.EmployeeID.String(),
		Kind:       string(kind),
		Status:     string(item.Status),
	}
	if item.SubmittedAt != nil {
		v := item.SubmittedAt.Format(time.RFC3339)
		resp.SubmittedAt = &v
	}
	if item.ApproverID != nil {
		v := item.ApproverID.String()
		resp.ApproverID = &v
	}
	if item.DecidedAt != nil {
		v := item.DecidedAt.Format(time.RFC3339)
		resp.DecidedAt = &v
	}
	resp.RejectionReason = item.RejectionReason
	resp.RejectionCategory = item.RejectionCategory
	return resp
}

func mapItemsToResponse(items []Item, kind Kind) []ItemResponse {
	resp := make([]ItemResponse, len(items))
	for i, item := range items {
		resp[i] = mapItemToResponse(item, kind)
	}
	return resp
}

func mapRejectionsToResponse(recs []RejectionHistory) []RejectionHistoryResponse {
	resp := make([]RejectionHistoryResponse, len(recs))
	for i, rec := range recs {
		resp[i] = RejectionHistoryResponse{
			ID:         rec.ID.String(),
			ItemKind:   string(rec.ItemKind),
			ItemID:     rec.ItemID.String(),
			RejectedBy: rec.RejectedBy.String(),
			Reason:     rec.Reason,
			Category:   rec.Category,
			RejectedAt: rec.RejectedAt.Format(time.RFC3339),
		}
		if rec.ResolvedAt != nil {
			v := rec.ResolvedAt.Format(time.RFC3339)
			resp[i].ResolvedAt = &v
		}
	}
	return resp
}
