package employee_test

import (
	"context"
	"database/sql"
	"testing"

	"go-hrflow/internal/employee"
	employeeerrors "go-hrflow/internal/employee/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeEmployeeRepository struct {
	withTxFn             func(tx *sql.Tx) employee.Repository
	createFn             func(ctx context.Context, emp *employee.Employee) error
	findAllByCompanyFn   func(ctx context.Context, companyID string) ([]employee.Employee, error)
	findByIDFn           func(ctx context.Context, id string) (*employee.Employee, error)
	findByIDAndCompanyFn func(ctx context.Context, companyID, id string) (*employee.Employee, error)
	findDirectReportsFn  func(ctx context.Context, companyID, managerID string) ([]employee.Employee, error)
	findByIDsFn          func(ctx context.Context, companyID string, ids []string) ([]employee.Employee, error)
	updateFn             func(ctx context.Context, emp *employee.Employee) error
	deleteFn             func(ctx context.Context, companyID, id string) error
}

func (f *fakeEmployeeRepository) WithTx(tx *sql.Tx) employee.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeEmployeeRepository) Create(ctx context.Context, emp *employee.Employee) error {
	if f.createFn != nil {
		return f.createFn(ctx, emp)
	}
	return nil
}

func (f *fakeEmployeeRepository) FindAllByCompany(ctx context.Context, companyID string) ([]employee.Employee, error) {
	if f.findAllByCompanyFn != nil {
		return f.findAllByCompanyFn(ctx, companyID)
	}
	return nil, nil
}

func (f *fakeEmployeeRepository) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEmployeeRepository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*employee.Employee, error) {
	if f.findByIDAndCompanyFn != nil {
		return f.findByIDAndCompanyFn(ctx, companyID, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEmployeeRepository) FindDirectReports(ctx context.Context, companyID, managerID string) ([]employee.Employee, error) {
	if f.findDirectReportsFn != nil {
		return f.findDirectReportsFn(ctx, companyID, managerID)
	}
	return nil, nil
}

func (f *fakeEmployeeRepository) FindByIDs(ctx context.Context, companyID string, ids []string) ([]employee.Employee, error) {
	if f.findByIDsFn != nil {
		return f.findByIDsFn(ctx, companyID, ids)
	}
	return nil, nil
}

func (f *fakeEmployeeRepository) Update(ctx context.Context, emp *employee.Employee) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, emp)
	}
	return nil
}

func (f *fakeEmployeeRepository) Delete(ctx context.Context, companyID, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, companyID, id)
	}
	return nil
}

type employeeServiceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service employee.Service
	repo    *fakeEmployeeRepository
}

func setupEmployeeServiceTest(t *testing.T) *employeeServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeEmployeeRepository{}
	svc := employee.NewService(db, repo)

	return &employeeServiceDeps{db: db, sqlMock: sqlMock, service: svc, repo: repo}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func TestEmployeeService_Create(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()

	t.Run("success root-level without manager", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.repo.createFn = func(ctx context.Context, emp *employee.Employee) error {
			assert.Equal(t, uuid.MustParse(companyID), emp.CompanyID)
			assert.Nil(t, emp.ManagerID)
			return nil
		}

		resp, err := deps.service.Create(ctx, companyID, employee.CreateEmployeeRequest{
			FullName: "Robin Root",
			Email:    "robin@example.com",
		})

		assert.NoError(t, err)
		assert.True(t, resp.RootLevel)
		assert.Nil(t, resp.ManagerID)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("success with existing manager", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		defer deps.db.Close()

		managerID := uuid.New()
		expectTx(t, deps.sqlMock, true)
		deps.repo.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*employee.Employee, error) {
			assert.Equal(t, managerID.String(), id)
			return &employee.Employee{ID: managerID, CompanyID: uuid.MustParse(cid)}, nil
		}

		managerStr := managerID.String()
		resp, err := deps.service.Create(ctx, companyID, employee.CreateEmployeeRequest{
			FullName:  "Dana Dev",
			Email:     "dana@example.com",
			ManagerID: &managerStr,
		})

		assert.NoError(t, err)
		assert.False(t, resp.RootLevel)
		assert.Equal(t, managerStr, *resp.ManagerID)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative manager from another company", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*employee.Employee, error) {
			return nil, gorm.ErrRecordNotFound
		}

		managerStr := uuid.New().String()
		_, err := deps.service.Create(ctx, companyID, employee.CreateEmployeeRequest{
			FullName:  "Dana Dev",
			Email:     "dana@example.com",
			ManagerID: &managerStr,
		})

		assert.ErrorIs(t, err, employeeerrors.ErrManagerNotFound)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative malformed manager id", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		managerStr := "not-a-uuid"
		_, err := deps.service.Create(ctx, companyID, employee.CreateEmployeeRequest{
			FullName:  "Dana Dev",
			Email:     "dana@example.com",
			ManagerID: &managerStr,
		})

		assert.ErrorIs(t, err, employeeerrors.ErrInvalidManagerID)
	})
}

func TestEmployeeService_Update(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()

	t.Run("negative self manager", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		defer deps.db.Close()

		empID := uuid.New()
		expectTx(t, deps.sqlMock, false)
		deps.repo.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*employee.Employee, error) {
			return &employee.Employee{ID: empID, CompanyID: uuid.MustParse(cid)}, nil
		}

		selfID := empID.String()
		_, err := deps.service.Update(ctx, companyID, empID.String(), employee.UpdateEmployeeRequest{
			FullName:  "Self Cycle",
			Email:     "self@example.com",
			ManagerID: &selfID,
		})

		assert.ErrorIs(t, err, employeeerrors.ErrSelfManager)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("success detach manager makes root", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		defer deps.db.Close()

		empID := uuid.New()
		oldManager := uuid.New()
		expectTx(t, deps.sqlMock, true)
		deps.repo.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*employee.Employee, error) {
			return &employee.Employee{ID: empID, CompanyID: uuid.MustParse(cid), ManagerID: &oldManager}, nil
		}

		var saved *employee.Employee
		deps.repo.updateFn = func(ctx context.Context, emp *employee.Employee) error {
			saved = emp
			return nil
		}

		resp, err := deps.service.Update(ctx, companyID, empID.String(), employee.UpdateEmployeeRequest{
			FullName: "Now Root",
			Email:    "root@example.com",
		})

		assert.NoError(t, err)
		assert.NotNil(t, saved)
		assert.Nil(t, saved.ManagerID)
		assert.True(t, resp.RootLevel)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative unknown employee", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		_, err := deps.service.Update(ctx, companyID, uuid.New().String(), employee.UpdateEmployeeRequest{
			FullName: "Ghost",
			Email:    "ghost@example.com",
		})

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})
}
