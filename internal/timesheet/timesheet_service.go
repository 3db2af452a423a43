package timesheet

import (
	"context"
	"errors"
	"time"

	"go-hrflow/internal/approval"
	"go-hrflow/internal/shared/apperror"
	"go-hrflow/internal/shared/contextutil"
	timesheeterrors "go-hrflow/internal/timesheet/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	Create(ctx context.Context, companyID, employeeID string, req CreateTimesheetRequest) (TimesheetResponse, error)
	GetByID(ctx context.Context, companyID, id string) (TimesheetResponse, error)
	ListByEmployee(ctx context.Context, companyID, employeeID string, filter ListFilter) ([]TimesheetResponse, error)
	Update(ctx context.Context, companyID, actorID, id string, req UpdateTimesheetRequest) (TimesheetResponse, error)
	Delete(ctx context.Context, companyID, actorID, id string) error

	// Submit, Approve and Reject delegate to the approval engine; this
	// service contributes nothing beyond the kind tag.
	Submit(ctx context.Context, companyID, actorID, id string) (approval.ItemResponse, error)
	Approve(ctx context.Context, companyID, approverID, id string) (approval.ItemResponse, error)
	Reject(ctx context.Context, companyID, approverID, id string, req approval.RejectItemRequest) (approval.ItemResponse, error)
}

type service struct {
	repo      Repository
	approvals approval.Service
	logger    *zap.Logger
}

func NewService(repo Repository, approvals approval.Service, logger ...*zap.Logger) Service {
	l := zap.L().Named("timesheet.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("timesheet.service")
	}
	return &service{repo: repo, approvals: approvals, logger: l}
}

func (s *service) Create(ctx context.Context, companyID, employeeID string, req CreateTimesheetRequest) (TimesheetResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create timesheet requested",
		zap.String("request_id", rid),
		zap.String("employee_id", employeeID),
		zap.String("work_date", req.WorkDate),
	)

	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return TimesheetResponse{}, timesheeterrors.ErrInvalidTimesheetID
	}
	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return TimesheetResponse{}, timesheeterrors.ErrInvalidTimesheetID
	}
	workDate, err := parseWorkDate(req.WorkDate)
	if err != nil {
		return TimesheetResponse{}, err
	}
	if req.Hours <= 0 || req.Hours > 24 {
		return TimesheetResponse{}, timesheeterrors.ErrInvalidHours
	}

	entry := &TimesheetEntry{
		ID:          uuid.New(),
		CompanyID:   companyUUID,
		EmployeeID:  employeeUUID,
		WorkDate:    workDate,
		Hours:       req.Hours,
		Description: req.Description,
		Status:      approval.StatusDraft,
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		s.logger.Error("create timesheet persist failed", zap.String("request_id", rid), zap.Error(err))
		return TimesheetResponse{}, err
	}

	s.logger.Info("timesheet created",
		zap.String("timesheet_id", entry.ID.String()),
		zap.String("employee_id", employeeID),
	)
	return mapEntryToResponse(*entry), nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (TimesheetResponse, error) {
	entry, err := s.fetch(ctx, companyID, id)
	if err != nil {
		return TimesheetResponse{}, err
	}
	return mapEntryToResponse(*entry), nil
}

func (s *service) ListByEmployee(ctx context.Context, companyID, employeeID string, filter ListFilter) ([]TimesheetResponse, error) {
	if filter.Status != "" && !approval.IsKnownStatus(approval.Status(filter.Status)) {
		return nil, apperror.InvalidField("status")
	}

	entries, err := s.repo.FindByEmployee(ctx, companyID, employeeID, filter)
	if err != nil {
		return nil, err
	}
	return mapEntriesToResponse(entries), nil
}

func (s *service) Update(ctx context.Context, companyID, actorID, id string, req UpdateTimesheetRequest) (TimesheetResponse, error) {
	entry, err := s.fetchOwned(ctx, companyID, actorID, id)
	if err != nil {
		return TimesheetResponse{}, err
	}
	if !entry.Editable() {
		return TimesheetResponse{}, timesheeterrors.ErrTimesheetNotEditable
	}

	workDate, err := parseWorkDate(req.WorkDate)
	if err != nil {
		return TimesheetResponse{}, err
	}
	if req.Hours <= 0 || req.Hours > 24 {
		return TimesheetResponse{}, timesheeterrors.ErrInvalidHours
	}

	entry.WorkDate = workDate
	entry.Hours = req.Hours
	entry.Description = req.Description
	if err := s.repo.Update(ctx, entry); err != nil {
		s.logger.Error("update timesheet persist failed", zap.String("timesheet_id", id), zap.Error(err))
		return TimesheetResponse{}, err
	}

	return mapEntryToResponse(*entry), nil
}

func (s *service) Delete(ctx context.Context, companyID, actorID, id string) error {
	entry, err := s.fetchOwned(ctx, companyID, actorID, id)
	if err != nil {
		return err
	}
	if !entry.Editable() {
		return timesheeterrors.ErrTimesheetNotEditable
	}

	if err := s.repo.Delete(ctx, companyID, id); err != nil {
		s.logger.Error("delete timesheet failed", zap.String("timesheet_id", id), zap.Error(err))
		return err
	}

	s.logger.Info("timesheet deleted", zap.String("timesheet_id", id))
	return nil
}

func (s *service) Submit(ctx context.Context, companyID, actorID, id string) (approval.ItemResponse, error) {
	return s.approvals.Submit(ctx, companyID, actorID, approval.KindTimesheet, id)
}

func (s *service) Approve(ctx context.Context, companyID, approverID, id string) (approval.ItemResponse, error) {
	return s.approvals.Approve(ctx, companyID, approverID, approval.KindTimesheet, id)
}

func (s *service) Reject(ctx context.Context, companyID, approverID, id string, req approval.RejectItemRequest) (approval.ItemResponse, error) {
	return s.approvals.Reject(ctx, companyID, approverID, approval.KindTimesheet, id, req)
}

func (s *service) fetch(ctx context.Context, companyID, id string) (*TimesheetEntry, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, timesheeterrors.ErrInvalidTimesheetID
	}

	entry, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, timesheeterrors.ErrTimesheetNotFound
		}
		return nil, err
	}
	return entry, nil
}

func (s *service) fetchOwned(ctx context.Context, companyID, actorID, id string) (*TimesheetEntry, error) {
	entry, err := s.fetch(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if entry.EmployeeID.String() != actorID {
		return nil, timesheeterrors.ErrNotTimesheetOwner
	}
	return entry, nil
}

func parseWorkDate(raw string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, timesheeterrors.ErrInvalidWorkDate
	}
	return d, nil
}
