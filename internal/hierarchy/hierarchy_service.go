package hierarchy

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go-hrflow/internal/employee"
	employeeerrors "go-hrflow/internal/employee/errors"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	teamRosterKeyPrefix = "hierarchy:team:"
	teamRosterTTL       = 5 * time.Minute
)

func teamRosterKey(companyID, employeeID string) string {
	return teamRosterKeyPrefix + companyID + ":" + employeeID
}

// Directory is the read-only view of the employee graph the resolver needs.
// employee.Repository satisfies it.
type Directory interface {
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*employee.Employee, error)
	FindDirectReports(ctx context.Context, companyID, managerID string) ([]employee.Employee, error)
	FindByIDs(ctx context.Context, companyID string, ids []string) ([]employee.Employee, error)
}

type TeamMemberResponse struct {
	ID        string  `json:"id"`
	FullName  string  `json:"full_name"`
	Email     string  `json:"email"`
	ManagerID *string `json:"manager_id,omitempty"`
}

type Service interface {
	// Closure returns every employee transitively reporting to employeeID,
	// excluding employeeID itself. An unknown id yields an empty set.
	Closure(ctx context.Context, companyID, employeeID string) ([]string, error)

	// PendingOwnerScope returns the owner ids whose SUBMITTED items the
	// approver may act on: direct reports, plus the approver itself when it
	// is root-level.
	PendingOwnerScope(ctx context.Context, companyID, approverID string) ([]string, error)

	// TeamRoster resolves the closure to employee summaries, cached.
	TeamRoster(ctx context.Context, companyID, employeeID string) ([]TeamMemberResponse, error)
}

type service struct {
	directory Directory
	rdb       *redis.Client
	sf        *singleflight.Group
	logger    *zap.Logger
}

func NewService(directory Directory, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("hierarchy.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("hierarchy.service")
	}
	return &service{
		directory: directory,
		rdb:       rdb,
		sf:        &singleflight.Group{},
		logger:    l,
	}
}

// Closure walks the reporting graph breadth-first with an explicit worklist.
// The visited set is seeded with the start id and checked before enqueueing,
// so a malformed graph containing a manager cycle terminates and counts each
// employee at most once.
func (s *service) Closure(ctx context.Context, companyID, employeeID string) ([]string, error) {
	visited := map[string]struct{}{employeeID: {}}
	queue := []string{employeeID}
	result := make([]string, 0)

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		reports, err := s.directory.FindDirectReports(ctx, companyID, current)
		if err != nil {
			return nil, err
		}

		for _, r := range reports {
			id := r.ID.String()
			if _, seen := visited[id]; seen {
				continue
			}
			visited[id] = struct{}{}
			result = append(result, id)
			queue = append(queue, id)
		}
	}

	return result, nil
}

func (s *service) PendingOwnerScope(ctx context.Context, companyID, approverID string) ([]string, error) {
	approver, err := s.directory.FindByIDAndCompany(ctx, companyID, approverID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, employeeerrors.ErrEmployeeNotFound
		}
		return nil, err
	}

	reports, err := s.directory.FindDirectReports(ctx, companyID, approverID)
	if err != nil {
		return nil, err
	}

	scope := make([]string, 0, len(reports)+1)
	for _, r := range reports {
		scope = append(scope, r.ID.String())
	}

	// Root-level employees have nobody above them, so they may act on their
	// own submitted items. Non-root employees never self-approve.
	if approver.IsRootLevel() {
		scope = append(scope, approver.ID.String())
	}

	s.logger.Debug("pending owner scope resolved",
		zap.String("company_id", companyID),
		zap.String("approver_id", approverID),
		zap.Int("scope_size", len(scope)),
		zap.Bool("root_level", approver.IsRootLevel()),
	)

	return scope, nil
}

func (s *service) TeamRoster(ctx context.Context, companyID, employeeID string) ([]TeamMemberResponse, error) {
	key := teamRosterKey(companyID, employeeID)

	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, key).Result()
		if err == nil {
			var roster []TeamMemberResponse
			if jsonErr := json.Unmarshal([]byte(cached), &roster); jsonErr == nil {
				return roster, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			s.logger.Warn("team roster cache read failed", zap.String("key", key), zap.Error(err))
		}
	}

	v, err, _ := s.sf.Do(key, func() (any, error) {
		ids, err := s.Closure(ctx, companyID, employeeID)
		if err != nil {
			return nil, err
		}

		members, err := s.directory.FindByIDs(ctx, companyID, ids)
		if err != nil {
			return nil, err
		}

		roster := make([]TeamMemberResponse, len(members))
		for i, m := range members {
			roster[i] = TeamMemberResponse{
				ID:       m.ID.String(),
				FullName: m.FullName,
				Email:    m.Email,
			}
			if m.ManagerID != nil {
				mid := m.ManagerID.String()
				roster[i].ManagerID = &mid
			}
		}

		if s.rdb != nil {
			if payload, jsonErr := json.Marshal(roster); jsonErr == nil {
				if setErr := s.rdb.Set(ctx, key, payload, teamRosterTTL).Err(); setErr != nil {
					s.logger.Warn("team roster cache write failed", zap.String("key", key), zap.Error(setErr))
				}
			}
		}

		return roster, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]TeamMemberResponse), nil
}
