package hierarchy_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"go-hrflow/internal/employee"
	employeeerrors "go-hrflow/internal/employee/errors"
	"go-hrflow/internal/hierarchy"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeDirectory struct {
	findByIDAndCompanyFn func(ctx context.Context, companyID, id string) (*employee.Employee, error)
	findDirectReportsFn  func(ctx context.Context, companyID, managerID string) ([]employee.Employee, error)
	findByIDsFn          func(ctx context.Context, companyID string, ids []string) ([]employee.Employee, error)
}

func (f *fakeDirectory) FindByIDAndCompany(ctx context.Context, companyID, id string) (*employee.Employee, error) {
	if f.findByIDAndCompanyFn != nil {
		return f.findByIDAndCompanyFn(ctx, companyID, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeDirectory) FindDirectReports(ctx context.Context, companyID, managerID string) ([]employee.Employee, error) {
	if f.findDirectReportsFn != nil {
		return f.findDirectReportsFn(ctx, companyID, managerID)
	}
	return nil, nil
}

func (f *fakeDirectory) FindByIDs(ctx context.Context, companyID string, ids []string) ([]employee.Employee, error) {
	if f.findByIDsFn != nil {
		return f.findByIDsFn(ctx, companyID, ids)
	}
	return nil, nil
}

func emp(id uuid.UUID, managerID *uuid.UUID) employee.Employee {
	return employee.Employee{ID: id, CompanyID: uuid.New(), ManagerID: managerID}
}

// reportGraph maps a manager id to its direct reports.
func graphDirectory(graph map[string][]employee.Employee) *fakeDirectory {
	return &fakeDirectory{
		findDirectReportsFn: func(ctx context.Context, companyID, managerID string) ([]employee.Employee, error) {
			return graph[managerID], nil
		},
	}
}

func TestHierarchyService_Closure(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()

	t.Run("transitive reports in breadth-first order", func(t *testing.T) {
		root := uuid.New()
		mid := uuid.New()
		leafA := uuid.New()
		leafB := uuid.New()

		dir := graphDirectory(map[string][]employee.Employee{
			root.String(): {emp(mid, &root)},
			mid.String():  {emp(leafA, &mid), emp(leafB, &mid)},
		})
		svc := hierarchy.NewService(dir, nil)

		ids, err := svc.Closure(ctx, companyID, root.String())

		assert.NoError(t, err)
		assert.Equal(t, []string{mid.String(), leafA.String(), leafB.String()}, ids)
	})

	t.Run("excludes the starting employee", func(t *testing.T) {
		root := uuid.New()
		dir := graphDirectory(map[string][]employee.Employee{})
		svc := hierarchy.NewService(dir, nil)

		ids, err := svc.Closure(ctx, companyID, root.String())

		assert.NoError(t, err)
		assert.Empty(t, ids)
		assert.NotNil(t, ids)
	})

	t.Run("terminates on a two-node manager cycle", func(t *testing.T) {
		a := uuid.New()
		b := uuid.New()

		// a manages b and b manages a: malformed, but the walk must stop.
		dir := graphDirectory(map[string][]employee.Employee{
			a.String(): {emp(b, &a)},
			b.String(): {emp(a, &b)},
		})
		svc := hierarchy.NewService(dir, nil)

		ids, err := svc.Closure(ctx, companyID, a.String())

		assert.NoError(t, err)
		assert.Equal(t, []string{b.String()}, ids)
	})

	t.Run("counts a diamond-shaped member once", func(t *testing.T) {
		root := uuid.New()
		left := uuid.New()
		right := uuid.New()
		shared := uuid.New()

		dir := graphDirectory(map[string][]employee.Employee{
			root.String():  {emp(left, &root), emp(right, &root)},
			left.String():  {emp(shared, &left)},
			right.String(): {emp(shared, &right)},
		})
		svc := hierarchy.NewService(dir, nil)

		ids, err := svc.Closure(ctx, companyID, root.String())

		assert.NoError(t, err)
		assert.Len(t, ids, 3)
		assert.ElementsMatch(t, []string{left.String(), right.String(), shared.String()}, ids)
	})
}

func TestHierarchyService_PendingOwnerScope(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()

	t.Run("manager scope is direct reports only", func(t *testing.T) {
		managerOfManager := uuid.New()
		manager := uuid.New()
		report := uuid.New()
		grandReport := uuid.New()

		dir := graphDirectory(map[string][]employee.Employee{
			manager.String(): {emp(report, &manager)},
			report.String():  {emp(grandReport, &report)},
		})
		dir.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*employee.Employee, error) {
			e := emp(manager, &managerOfManager)
			return &e, nil
		}
		svc := hierarchy.NewService(dir, nil)

		scope, err := svc.PendingOwnerScope(ctx, companyID, manager.String())

		assert.NoError(t, err)
		// Direct reports only: no grand-reports, no self for non-root.
		assert.Equal(t, []string{report.String()}, scope)
	})

	t.Run("root with reports includes self", func(t *testing.T) {
		root := uuid.New()
		report := uuid.New()

		dir := graphDirectory(map[string][]employee.Employee{
			root.String(): {emp(report, &root)},
		})
		dir.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*employee.Employee, error) {
			e := emp(root, nil)
			return &e, nil
		}
		svc := hierarchy.NewService(dir, nil)

		scope, err := svc.PendingOwnerScope(ctx, companyID, root.String())

		assert.NoError(t, err)
		assert.Equal(t, []string{report.String(), root.String()}, scope)
	})

	t.Run("root with no reports is only itself", func(t *testing.T) {
		root := uuid.New()

		dir := graphDirectory(map[string][]employee.Employee{})
		dir.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*employee.Employee, error) {
			e := emp(root, nil)
			return &e, nil
		}
		svc := hierarchy.NewService(dir, nil)

		scope, err := svc.PendingOwnerScope(ctx, companyID, root.String())

		assert.NoError(t, err)
		assert.Equal(t, []string{root.String()}, scope)
	})

	t.Run("non-root with no reports is empty", func(t *testing.T) {
		boss := uuid.New()
		worker := uuid.New()

		dir := graphDirectory(map[string][]employee.Employee{})
		dir.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*employee.Employee, error) {
			e := emp(worker, &boss)
			return &e, nil
		}
		svc := hierarchy.NewService(dir, nil)

		scope, err := svc.PendingOwnerScope(ctx, companyID, worker.String())

		assert.NoError(t, err)
		assert.Empty(t, scope)
	})

	t.Run("negative unknown approver", func(t *testing.T) {
		dir := &fakeDirectory{}
		svc := hierarchy.NewService(dir, nil)

		_, err := svc.PendingOwnerScope(ctx, companyID, uuid.New().String())

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})
}

func TestHierarchyService_TeamRoster(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()

	t.Run("cache miss resolves closure and caches it", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()

		root := uuid.New()
		report := uuid.New()
		dir := graphDirectory(map[string][]employee.Employee{
			root.String(): {emp(report, &root)},
		})
		dir.findByIDsFn = func(ctx context.Context, cid string, ids []string) ([]employee.Employee, error) {
			assert.Equal(t, []string{report.String()}, ids)
			return []employee.Employee{
				{ID: report, ManagerID: &root, FullName: "Dana Report", Email: "dana@example.com"},
			}, nil
		}
		svc := hierarchy.NewService(dir, rdb)

		key := "hierarchy:team:" + companyID + ":" + root.String()
		expected := []hierarchy.TeamMemberResponse{
			{ID: report.String(), FullName: "Dana Report", Email: "dana@example.com"},
		}
		rootStr := root.String()
		expected[0].ManagerID = &rootStr
		payload, err := json.Marshal(expected)
		assert.NoError(t, err)

		mock.ExpectGet(key).RedisNil()
		mock.ExpectSet(key, payload, 5*time.Minute).SetVal("OK")

		roster, err := svc.TeamRoster(ctx, companyID, root.String())

		assert.NoError(t, err)
		assert.Equal(t, expected, roster)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("cache hit skips the directory", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()

		root := uuid.New()
		dir := &fakeDirectory{
			findDirectReportsFn: func(ctx context.Context, cid, mid string) ([]employee.Employee, error) {
				t.Fatal("directory must not be queried on a cache hit")
				return nil, nil
			},
		}
		svc := hierarchy.NewService(dir, rdb)

		cached := []hierarchy.TeamMemberResponse{{ID: uuid.New().String(), FullName: "Cached Person"}}
		payload, err := json.Marshal(cached)
		assert.NoError(t, err)

		key := "hierarchy:team:" + companyID + ":" + root.String()
		mock.ExpectGet(key).SetVal(string(payload))

		roster, err := svc.TeamRoster(ctx, companyID, root.String())

		assert.NoError(t, err)
		assert.Equal(t, cached, roster)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
