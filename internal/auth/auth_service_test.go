package auth_test

import (
	"context"
	"database/sql"
	"testing"

	"go-hrflow/internal/auth"
	autherrors "go-hrflow/internal/auth/errors"
	"go-hrflow/internal/employee"
	employeeerrors "go-hrflow/internal/employee/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeAuthRepository struct {
	createFn     func(ctx context.Context, user *auth.User) error
	getByEmailFn func(ctx context.Context, email string) (*auth.User, error)
	getByIDFn    func(ctx context.Context, id uuid.UUID) (*auth.User, error)
}

func (f *fakeAuthRepository) Create(ctx context.Context, user *auth.User) error {
	if f.createFn != nil {
		return f.createFn(ctx, user)
	}
	return nil
}

func (f *fakeAuthRepository) GetByEmail(ctx context.Context, email string) (*auth.User, error) {
	if f.getByEmailFn != nil {
		return f.getByEmailFn(ctx, email)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAuthRepository) GetByID(ctx context.Context, id uuid.UUID) (*auth.User, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeEmployeeDirectory struct {
	findByIDFn func(ctx context.Context, id string) (*employee.Employee, error)
}

func (f *fakeEmployeeDirectory) WithTx(tx *sql.Tx) employee.Repository { return f }

func (f *fakeEmployeeDirectory) Create(ctx context.Context, emp *employee.Employee) error {
	return nil
}

func (f *fakeEmployeeDirectory) FindAllByCompany(ctx context.Context, companyID string) ([]employee.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeDirectory) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEmployeeDirectory) FindByIDAndCompany(ctx context.Context, companyID, id string) (*employee.Employee, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEmployeeDirectory) FindDirectReports(ctx context.Context, companyID, managerID string) ([]employee.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeDirectory) FindByIDs(ctx context.Context, companyID string, ids []string) ([]employee.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeDirectory) Update(ctx context.Context, emp *employee.Employee) error {
	return nil
}

func (f *fakeEmployeeDirectory) Delete(ctx context.Context, companyID, id string) error {
	return nil
}

func activeUser(t *testing.T, password string) *auth.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	assert.NoError(t, err)
	return &auth.User{
		ID:         uuid.New(),
		CompanyID:  uuid.New(),
		EmployeeID: uuid.New(),
		Name:       "Ava Admin",
		Email:      "ava@example.com",
		Password:   string(hashed),
		Role:       "ADMIN",
		IsActive:   true,
	}
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("success returns both tokens and the profile", func(t *testing.T) {
		user := activeUser(t, "password123")
		repo := &fakeAuthRepository{
			getByEmailFn: func(ctx context.Context, email string) (*auth.User, error) {
				assert.Equal(t, user.Email, email)
				return user, nil
			},
		}

		svc := auth.NewService(repo, &fakeEmployeeDirectory{})
		access, refresh, resp, err := svc.Login(ctx, user.Email, "password123")

		assert.NoError(t, err)
		assert.NotEmpty(t, access)
		assert.NotEmpty(t, refresh)
		assert.Equal(t, user.Email, resp.Email)
		assert.Equal(t, user.CompanyID.String(), resp.CompanyID)
		assert.Equal(t, user.EmployeeID.String(), resp.EmployeeID)
	})

	t.Run("negative wrong password", func(t *testing.T) {
		user := activeUser(t, "password123")
		repo := &fakeAuthRepository{
			getByEmailFn: func(ctx context.Context, email string) (*auth.User, error) {
				return user, nil
			},
		}

		svc := auth.NewService(repo, &fakeEmployeeDirectory{})
		_, _, _, err := svc.Login(ctx, user.Email, "wrongpass")
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("negative unknown email gets the same answer", func(t *testing.T) {
		svc := auth.NewService(&fakeAuthRepository{}, &fakeEmployeeDirectory{})
		_, _, _, err := svc.Login(ctx, "nobody@example.com", "password123")
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("negative deactivated account", func(t *testing.T) {
		user := activeUser(t, "password123")
		user.IsActive = false
		repo := &fakeAuthRepository{
			getByEmailFn: func(ctx context.Context, email string) (*auth.User, error) {
				return user, nil
			},
		}

		svc := auth.NewService(repo, &fakeEmployeeDirectory{})
		_, _, _, err := svc.Login(ctx, user.Email, "password123")
		assert.ErrorIs(t, err, autherrors.ErrUserInactive)
	})
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("success inherits company from the employee record", func(t *testing.T) {
		emp := &employee.Employee{
			ID:        uuid.New(),
			CompanyID: uuid.New(),
			FullName:  "Eli Engineer",
		}
		directory := &fakeEmployeeDirectory{
			findByIDFn: func(ctx context.Context, id string) (*employee.Employee, error) {
				assert.Equal(t, emp.ID.String(), id)
				return emp, nil
			},
		}

		var created *auth.User
		repo := &fakeAuthRepository{
			createFn: func(ctx context.Context, user *auth.User) error {
				created = user
				return nil
			},
		}

		svc := auth.NewService(repo, directory)
		resp, err := svc.Register(ctx, auth.RegisterRequest{
			EmployeeID: emp.ID.String(),
			Email:      "eli@example.com",
			Name:       "Eli Engineer",
			Password:   "password123",
		})

		assert.NoError(t, err)
		assert.NotNil(t, created)
		assert.Equal(t, emp.CompanyID, created.CompanyID)
		assert.Equal(t, emp.ID, created.EmployeeID)
		assert.Equal(t, "EMPLOYEE", created.Role)
		assert.True(t, created.IsActive)
		assert.NotEqual(t, "password123", created.Password)
		assert.Equal(t, emp.CompanyID.String(), resp.CompanyID)
	})

	t.Run("success explicit role is normalized", func(t *testing.T) {
		emp := &employee.Employee{ID: uuid.New(), CompanyID: uuid.New()}
		directory := &fakeEmployeeDirectory{
			findByIDFn: func(ctx context.Context, id string) (*employee.Employee, error) {
				return emp, nil
			},
		}

		var created *auth.User
		repo := &fakeAuthRepository{
			createFn: func(ctx context.Context, user *auth.User) error {
				created = user
				return nil
			},
		}

		svc := auth.NewService(repo, directory)
		_, err := svc.Register(ctx, auth.RegisterRequest{
			EmployeeID: emp.ID.String(),
			Email:      "mia@example.com",
			Name:       "Mia Manager",
			Password:   "password123",
			Role:       " manager ",
		})

		assert.NoError(t, err)
		assert.Equal(t, "MANAGER", created.Role)
	})

	t.Run("negative unknown employee", func(t *testing.T) {
		svc := auth.NewService(&fakeAuthRepository{}, &fakeEmployeeDirectory{})
		_, err := svc.Register(ctx, auth.RegisterRequest{
			EmployeeID: uuid.New().String(),
			Email:      "ghost@example.com",
			Name:       "Ghost",
			Password:   "password123",
		})
		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})

	t.Run("negative malformed employee id", func(t *testing.T) {
		svc := auth.NewService(&fakeAuthRepository{}, &fakeEmployeeDirectory{})
		_, err := svc.Register(ctx, auth.RegisterRequest{
			EmployeeID: "not-a-uuid",
			Email:      "x@example.com",
			Name:       "X",
			Password:   "password123",
		})
		assert.ErrorIs(t, err, employeeerrors.ErrInvalidEmployeeID)
	})
}
