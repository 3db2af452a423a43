package expense

import "time"

type CreateExpenseRequest struct {
	ExpenseDate string `json:"expense_date" binding:"required"`
	AmountCents int64  `json:"amount_cents" binding:"required,gt=0"`
	Currency    string `json:"currency" binding:"required,len=3"`
	Category    string `json:"category"`
	Description string `json:"description"`
	ReceiptURL  string `json:"receipt_url" binding:"omitempty,url"`
}

type UpdateExpenseRequest struct {
	ExpenseDate string `json:"expense_date" binding:"required"`
	AmountCents int64  `json:"amount_cents" binding:"required,gt=0"`
	Currency    string `json:"currency" binding:"required,len=3"`
	Category    string `json:"category"`
	Description string `json:"description"`
	ReceiptURL  string `json:"receipt_url" binding:"omitempty,url"`
}

type ExpenseResponse struct {
	ID                string     `json:"id"`
	CompanyID         string     `json:"company_id"`
	EmployeeID        string     `json:"employee_id"`
	ExpenseDate       string     `json:"expense_date"`
	AmountCents       int64      `json:"amount_cents"`
	Currency          string     `json:"currency"`
	Category          string     `json:"category,omitempty"`
	Description       string     `json:"description,omitempty"`
	ReceiptURL        string     `json:"receipt_url,omitempty"`
	Status            string     `json:"status"`
	SubmittedAt       *time.Time `json:"submitted_at,omitempty"`
	ApproverID        *string    `json:"approver_id,omitempty"`
	DecidedAt         *time.Time `json:"decided_at,omitempty"`
	RejectionReason   *string    `json:"rejection_reason,omitempty"`
	RejectionCategory *string    `json:"rejection_category,omitempty"`
}

func mapClaimToResponse(e ExpenseClaim) ExpenseResponse {
	resp := ExpenseResponse{
		ID:                e.ID.String(),
		CompanyID:         e.CompanyID.String(),
		EmployeeID:        e.EmployeeID.String(),
		ExpenseDate:       e.ExpenseDate.Format("2006-01-02"),
		AmountCents:       e.AmountCents,
		Currency:          e.Currency,
		Category:          e.Category,
		Description:       e.Description,
		ReceiptURL:        e.ReceiptURL,
		Status:            string(e.Status),
		SubmittedAt:       e.SubmittedAt,
		DecidedAt:         e.DecidedAt,
		RejectionReason:   e.RejectionReason,
		RejectionCategory: e.RejectionCategory,
	}
	if e.ApproverID != nil {
		id := e.ApproverID.String()
		resp.ApproverID = &id
	}
	return resp
}

func mapClaimsToResponse(claims []ExpenseClaim) []ExpenseResponse {
	resps := make([]ExpenseResponse, 0, len(claims))
	for _, e := range claims {
		resps = append(resps, mapClaimToResponse(e))
	}
	return resps
}
