package timesheet

import "time"

type CreateTimesheetRequest struct {
	WorkDate    string  `json:"work_date" binding:"required"`
	Hours       float64 `json:"hours" binding:"required,gt=0,lte=24"`
	Description string  `json:"description"`
}

type UpdateTimesheetRequest struct {
	WorkDate    string  `json:"work_date" binding:"required"`
	Hours       float64 `json:"hours" binding:"required,gt=0,lte=24"`
	Description string  `json:"description"`
}

type TimesheetResponse struct {
	ID                string     `json:"id"`
	CompanyID         string     `json:"company_id"`
	EmployeeID        string     `json:"employee_id"`
	WorkDate          string     `json:"work_date"`
	Hours             float64    `json:"hours"`
	Description       string     `json:"description,omitempty"`
	Status            string     `json:"status"`
	SubmittedAt       *time.Time `json:"submitted_at,omitempty"`
	ApproverID        *string    `json:"approver_id,omitempty"`
	DecidedAt         *time.Time `json:"decided_at,omitempty"`
	RejectionReason   *string    `json:"rejection_reason,omitempty"`
	RejectionCategory *string    `json:"rejection_category,omitempty"`
}

func mapEntryToResponse(t TimesheetEntry) TimesheetResponse {
	resp := TimesheetResponse{
		ID:                t.ID.String(),
		CompanyID:         t.CompanyID.String(),
		EmployeeID:        t.EmployeeID.String(),
		WorkDate:          t.WorkDate.Format("2006-01-02"),
		Hours:             t.Hours,
		Description:       t.Description,
		Status:            string(t.Status),
		SubmittedAt:       t.SubmittedAt,
		DecidedAt:         t.DecidedAt,
		RejectionReason:   t.RejectionReason,
		RejectionCategory: t.RejectionCategory,
	}
	if t.ApproverID != nil {
		id := t.ApproverID.String()
		resp.ApproverID = &id
	}
	return resp
}

func mapEntriesToResponse(entries []TimesheetEntry) []TimesheetResponse {
	resps := make([]TimesheetResponse, 0, len(entries))
	for _, t := range entries {
		resps = append(resps, mapEntryToResponse(t))
	}
	return resps
}
