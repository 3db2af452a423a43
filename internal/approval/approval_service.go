package approval

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	approvalerrors "go-hrflow/internal/approval/errors"
	"go-hrflow/internal/audit"
	"go-hrflow/internal/employee"
	employeeerrors "go-hrflow/internal/employee/errors"
	"go-hrflow/internal/events"
	"go-hrflow/internal/messaging/kafka"
	"go-hrflow/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ScopeResolver decides which owners' submitted items an approver may act
// on. hierarchy.Service satisfies it.
type ScopeResolver interface {
	PendingOwnerScope(ctx context.Context, companyID, approverID string) ([]string, error)
}

type Service interface {
	// Submit moves a DRAFT or REJECTED item to SUBMITTED. Only the owner
	// may submit; resubmission clears the displayed rejection fields while
	// the history records stay untouched.
	Submit(ctx context.Context, companyID, actorID string, kind Kind, itemID string) (ItemResponse, error)

	// Approve moves a SUBMITTED item to APPROVED when the owner is in the
	// approver's scope, and closes the latest open rejection episode.
	Approve(ctx context.Context, companyID, approverID string, kind Kind, itemID string) (ItemResponse, error)

	// Reject moves a SUBMITTED item to REJECTED with a mandatory reason and
	// appends a new rejection history record.
	Reject(ctx context.Context, companyID, approverID string, kind Kind, itemID string, req RejectItemRequest) (ItemResponse, error)

	// AutoApprove approves every SUBMITTED item owned by a root-level
	// employee, with the calling administrator as approver-of-record.
	AutoApprove(ctx context.Context, companyID, adminID, employeeID string) (AutoApproveResult, error)

	// PendingForApprover lists the SUBMITTED items inside the approver's
	// scope, oldest submission first.
	PendingForApprover(ctx context.Context, companyID, approverID string, kind Kind) ([]ItemResponse, error)

	// RejectionHistory lists all rejection episodes of one item.
	RejectionHistory(ctx context.Context, companyID string, kind Kind, itemID string) ([]RejectionHistoryResponse, error)
}

type service struct {
	gdb        *gorm.DB
	items      ItemRepository
	rejections RejectionRepository
	employees  employee.Repository
	scope      ScopeResolver
	auditRepo  audit.Repository
	outbox     kafka.OutboxRepository
	logger     *zap.Logger
}

func NewService(
	gdb *gorm.DB,
	items ItemRepository,
	rejections RejectionRepository,
	employees employee.Repository,
	scope ScopeResolver,
	auditRepo audit.Repository,
	outbox kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("approval.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("approval.service")
	}
	return &service{
		gdb:        gdb,
		items:      items,
		rejections: rejections,
		employees:  employees,
		scope:      scope,
		auditRepo:  auditRepo,
		outbox:     outbox,
		logger:     l,
	}
}

func (s *service) Submit(ctx context.Context, companyID, actorID string, kind Kind, itemID string) (ItemResponse, error) {
	if err := validateIDs(companyID, actorID, itemID, kind); err != nil {
		return ItemResponse{}, err
	}

	item, err := s.fetchItem(ctx, companyID, kind, itemID)
	if err != nil {
		return ItemResponse{}, err
	}

	if item.EmployeeID.String() != actorID {
		return ItemResponse{}, approvalerrors.ErrNotItemOwner
	}
	if !isAllowedTransition(item.Status, StatusSubmitted) {
		s.logger.Warn("submit refused",
			zap.String("item_id", itemID),
			zap.String("kind", string(kind)),
			zap.String("from_status", string(item.Status)),
		)
		return ItemResponse{}, approvalerrors.ErrIllegalTransition
	}

	now := time.Now().UTC()
	ok, err := s.items.TransitionStatus(ctx, companyID, kind, itemID, submittableFrom, TransitionPatch{
		Status:        StatusSubmitted,
		SubmittedAt:   &now,
		ClearDecision: true,
	})
	if err != nil {
		s.logger.Error("submit persist failed", zap.String("item_id", itemID), zap.Error(err))
		return ItemResponse{}, err
	}
	if !ok {
		// Someone transitioned the item between our read and write.
		return ItemResponse{}, approvalerrors.ErrIllegalTransition
	}

	oldStatus := item.Status
	item.Status = StatusSubmitted
	item.SubmittedAt = &now
	item.ApproverID = nil
	item.DecidedAt = nil
	item.RejectionReason = nil
	item.RejectionCategory = nil

	s.recordAndNotify(ctx, item, kind, actorID, audit.ActionSubmit, oldStatus, events.EventItemSubmitted)

	s.logger.Info("item submitted",
		zap.String("item_id", itemID),
		zap.String("kind", string(kind)),
		zap.String("company_id", companyID),
	)
	return mapItemToResponse(*item, kind), nil
}

func (s *service) Approve(ctx context.Context, companyID, approverID string, kind Kind, itemID string) (ItemResponse, error) {
	if err := validateIDs(companyID, approverID, itemID, kind); err != nil {
		return ItemResponse{}, err
	}

	item, err := s.fetchItem(ctx, companyID, kind, itemID)
	if err != nil {
		return ItemResponse{}, err
	}

	if err := s.authorizeDecision(ctx, companyID, approverID, item); err != nil {
		return ItemResponse{}, err
	}
	if !isAllowedTransition(item.Status, StatusApproved) {
		return ItemResponse{}, approvalerrors.ErrIllegalTransition
	}

	now := time.Now().UTC()
	ok, err := s.approveSubmitted(ctx, companyID, kind, itemID, approverID, now)
	if err != nil {
		s.logger.Error("approve persist failed", zap.String("item_id", itemID), zap.Error(err))
		return ItemResponse{}, err
	}
	if !ok {
		// Lost the race against a concurrent decision.
		return ItemResponse{}, approvalerrors.ErrIllegalTransition
	}

	oldStatus := item.Status
	approverUUID := uuid.MustParse(approverID)
	item.Status = StatusApproved
	item.ApproverID = &approverUUID
	item.DecidedAt = &now

	s.recordAndNotify(ctx, item, kind, approverID, audit.ActionApprove, oldStatus, events.EventItemApproved)

	s.logger.Info("item approved",
		zap.String("item_id", itemID),
		zap.String("kind", string(kind)),
		zap.String("approver_id", approverID),
	)
	return mapItemToResponse(*item, kind), nil
}

func (s *service) Reject(ctx context.Context, companyID, approverID string, kind Kind, itemID string, req RejectItemRequest) (ItemResponse, error) {
	if err := validateIDs(companyID, approverID, itemID, kind); err != nil {
		return ItemResponse{}, err
	}
	if req.RejectionReason == "" {
		return ItemResponse{}, approvalerrors.ErrRejectionReasonRequired
	}

	item, err := s.fetchItem(ctx, companyID, kind, itemID)
	if err != nil {
		return ItemResponse{}, err
	}

	if err := s.authorizeDecision(ctx, companyID, approverID, item); err != nil {
		return ItemResponse{}, err
	}
	if !isAllowedTransition(item.Status, StatusRejected) {
		return ItemResponse{}, approvalerrors.ErrIllegalTransition
	}

	now := time.Now().UTC()
	approverUUID := uuid.MustParse(approverID)
	var category *string
	if req.RejectionCategory != "" {
		category = &req.RejectionCategory
	}

	tx := s.gdb.WithContext(ctx).Begin()
	if tx.Error != nil {
		s.logger.Error("reject begin tx failed", zap.Error(tx.Error))
		return ItemResponse{}, tx.Error
	}
	defer tx.Rollback()

	ok, err := s.items.WithTx(tx).TransitionStatus(ctx, companyID, kind, itemID, []Status{StatusSubmitted}, TransitionPatch{
		Status:            StatusRejected,
		ApproverID:        &approverID,
		DecidedAt:         &now,
		RejectionReason:   &req.RejectionReason,
		RejectionCategory: category,
	})
	if err != nil {
		s.logger.Error("reject persist failed", zap.String("item_id", itemID), zap.Error(err))
		return ItemResponse{}, err
	}
	if !ok {
		return ItemResponse{}, approvalerrors.ErrIllegalTransition
	}

	rec := &RejectionHistory{
		ID:         uuid.New(),
		CompanyID:  item.CompanyID,
		ItemKind:   kind,
		ItemID:     item.ID,
		RejectedBy: approverUUID,
		Reason:     req.RejectionReason,
		Category:   req.RejectionCategory,
		RejectedAt: now,
	}
	if err := s.rejections.WithTx(tx).Create(ctx, rec); err != nil {
		s.logger.Error("reject history append failed", zap.String("item_id", itemID), zap.Error(err))
		return ItemResponse{}, err
	}

	if err := tx.Commit().Error; err != nil {
		s.logger.Error("reject commit failed", zap.String("item_id", itemID), zap.Error(err))
		return ItemResponse{}, err
	}

	oldStatus := item.Status
	item.Status = StatusRejected
	item.ApproverID = &approverUUID
	item.DecidedAt = &now
	item.RejectionReason = &req.RejectionReason
	item.RejectionCategory = category

	s.recordAndNotify(ctx, item, kind, approverID, audit.ActionReject, oldStatus, events.EventItemRejected)

	s.logger.Info("item rejected",
		zap.String("item_id", itemID),
		zap.String("kind", string(kind)),
		zap.String("approver_id", approverID),
	)
	return mapItemToResponse(*item, kind), nil
}

func (s *service) AutoApprove(ctx context.Context, companyID, adminID, employeeID string) (AutoApproveResult, error) {
	if _, err := uuid.Parse(companyID); err != nil {
		return AutoApproveResult{}, approvalerrors.ErrInvalidCompanyID
	}
	if _, err := uuid.Parse(adminID); err != nil {
		return AutoApproveResult{}, approvalerrors.ErrInvalidActorID
	}
	if _, err := uuid.Parse(employeeID); err != nil {
		return AutoApproveResult{}, employeeerrors.ErrInvalidEmployeeID
	}

	target, err := s.employees.FindByIDAndCompany(ctx, companyID, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AutoApproveResult{}, employeeerrors.ErrEmployeeNotFound
		}
		return AutoApproveResult{}, err
	}
	if !target.IsRootLevel() {
		s.logger.Warn("auto-approve refused for non-root employee",
			zap.String("employee_id", employeeID),
			zap.String("company_id", companyID),
		)
		return AutoApproveResult{}, approvalerrors.ErrAutoApproveNotRoot
	}

	result := AutoApproveResult{}
	result.TimesheetsApproved, err = s.autoApproveKind(ctx, companyID, adminID, employeeID, KindTimesheet)
	if err != nil {
		return result, err
	}
	result.ExpensesApproved, err = s.autoApproveKind(ctx, companyID, adminID, employeeID, KindExpense)
	if err != nil {
		return result, err
	}

	s.logger.Info("auto-approve completed",
		zap.String("employee_id", employeeID),
		zap.String("admin_id", adminID),
		zap.Int("timesheets_approved", result.TimesheetsApproved),
		zap.Int("expenses_approved", result.ExpensesApproved),
	)
	return result, nil
}

// autoApproveKind transitions each currently-SUBMITTED item of one kind.
// An item that left SUBMITTED between the select and the write is skipped
// as a benign race; per-item notification failures are logged and do not
// stop the batch. The returned count reflects exactly the committed writes.
func (s *service) autoApproveKind(ctx context.Context, companyID, adminID, ownerID string, kind Kind) (int, error) {
	items, err := s.items.ListSubmittedByOwners(ctx, companyID, kind, []string{ownerID})
	if err != nil {
		return 0, err
	}

	adminUUID := uuid.MustParse(adminID)
	approved := 0
	for i := range items {
		item := items[i]
		now := time.Now().UTC()

		ok, err := s.approveSubmitted(ctx, companyID, kind, item.ID.String(), adminID, now)
		if err != nil {
			return approved, err
		}
		if !ok {
			s.logger.Debug("auto-approve skipped item no longer submitted",
				zap.String("item_id", item.ID.String()),
				zap.String("kind", string(kind)),
			)
			continue
		}
		approved++

		oldStatus := item.Status
		item.Status = StatusApproved
		item.ApproverID = &adminUUID
		item.DecidedAt = &now

		s.recordAndNotify(ctx, &item, kind, adminID, audit.ActionAutoApprove, oldStatus, events.EventItemApproved)
	}

	return approved, nil
}

// approveSubmitted runs the conditional SUBMITTED→APPROVED write and the
// rejection-episode resolution in one transaction. The conditional update is
// the serialization point: of two concurrent approvals exactly one sees
// RowsAffected > 0.
func (s *service) approveSubmitted(ctx context.Context, companyID string, kind Kind, itemID, approverID string, now time.Time) (bool, error) {
	tx := s.gdb.WithContext(ctx).Begin()
	if tx.Error != nil {
		return false, tx.Error
	}
	defer tx.Rollback()

	ok, err := s.items.WithTx(tx).TransitionStatus(ctx, companyID, kind, itemID, []Status{StatusSubmitted}, TransitionPatch{
		Status:     StatusApproved,
		ApproverID: &approverID,
		DecidedAt:  &now,
	})
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}

	if _, err := s.rejections.WithTx(tx).ResolveLatestOpen(ctx, companyID, kind, itemID, now); err != nil {
		return false, err
	}

	if err := tx.Commit().Error; err != nil {
		return false, err
	}
	return true, nil
}

func (s *service) PendingForApprover(ctx context.Context, companyID, approverID string, kind Kind) ([]ItemResponse, error) {
	if !kind.Valid() {
		return nil, approvalerrors.ErrInvalidItemKind
	}

	scope, err := s.scope.PendingOwnerScope(ctx, companyID, approverID)
	if err != nil {
		return nil, err
	}
	if len(scope) == 0 {
		return []ItemResponse{}, nil
	}

	items, err := s.items.ListSubmittedByOwners(ctx, companyID, kind, scope)
	if err != nil {
		return nil, err
	}
	return mapItemsToResponse(items, kind), nil
}

func (s *service) RejectionHistory(ctx context.Context, companyID string, kind Kind, itemID string) ([]RejectionHistoryResponse, error) {
	if !kind.Valid() {
		return nil, approvalerrors.ErrInvalidItemKind
	}

	recs, err := s.rejections.FindByItem(ctx, companyID, kind, itemID)
	if err != nil {
		return nil, err
	}
	return mapRejectionsToResponse(recs), nil
}

func (s *service) fetchItem(ctx context.Context, companyID string, kind Kind, itemID string) (*Item, error) {
	item, err := s.items.FindByIDAndCompany(ctx, companyID, kind, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, approvalerrors.ErrItemNotFound
		}
		return nil, err
	}
	return item, nil
}

// authorizeDecision checks the approver's scope contains the item's owner.
// The scope already covers the root self-approval case.
func (s *service) authorizeDecision(ctx context.Context, companyID, approverID string, item *Item) error {
	scope, err := s.scope.PendingOwnerScope(ctx, companyID, approverID)
	if err != nil {
		return err
	}

	owner := item.EmployeeID.String()
	for _, id := range scope {
		if id == owner {
			return nil
		}
	}

	s.logger.Warn("decision outside approval scope",
		zap.String("approver_id", approverID),
		zap.String("owner_id", owner),
		zap.String("item_id", item.ID.String()),
	)
	return approvalerrors.ErrNotInApprovalScope
}

// recordAndNotify appends the audit entry and stages the outbox event for a
// committed transition. Both are best-effort: the transition is already
// durable and a recording failure must not surface to the caller.
func (s *service) recordAndNotify(ctx context.Context, item *Item, kind Kind, actorID string, action string, oldStatus Status, eventType string) {
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		actorUUID = uuid.Nil
	}

	entry := &audit.LogEntry{
		ID:         uuid.New(),
		CompanyID:  item.CompanyID,
		ActorID:    actorUUID,
		Action:     action,
		EntityType: string(kind),
		EntityID:   item.ID,
		OldStatus:  string(oldStatus),
		NewStatus:  string(item.Status),
		Success:    true,
	}
	if err := s.auditRepo.Create(ctx, entry); err != nil {
		s.logger.Error("audit append failed",
			zap.String("item_id", item.ID.String()),
			zap.String("action", action),
			zap.Error(err),
		)
	}

	if s.outbox == nil {
		return
	}

	event := events.ApprovalDecisionEvent{
		EventType:       eventType,
		CompanyID:       item.CompanyID.String(),
		ItemKind:        string(kind),
		ItemID:          item.ID.String(),
		OwnerEmployeeID: item.EmployeeID.String(),
		ActorID:         actorID,
		NewStatus:       string(item.Status),
		OccurredAt:      time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("encode approval event failed", zap.Error(err))
		return
	}

	outboxEvent := kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: string(kind),
		AggregateID:   item.ID.String(),
		EventType:     eventType,
		Topic:         events.ApprovalDecisionTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}
	if err := s.outbox.Create(ctx, outboxEvent); err != nil {
		s.logger.Error("stage approval event failed",
			zap.String("item_id", item.ID.String()),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}

func validateIDs(companyID, actorID, itemID string, kind Kind) error {
	if _, err := uuid.Parse(companyID); err != nil {
		return approvalerrors.ErrInvalidCompanyID
	}
	if _, err := uuid.Parse(actorID); err != nil {
		return approvalerrors.ErrInvalidActorID
	}
	if _, err := uuid.Parse(itemID); err != nil {
		return approvalerrors.ErrInvalidItemID
	}
	if !kind.Valid() {
		return approvalerrors.ErrInvalidItemKind
	}
	return nil
}
