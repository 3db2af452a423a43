package rbac

import (
	"sync"

	"github.com/casbin/casbin/v2"

	"go-hrflow/internal/domain"
)

const (
	RoleEmployee = "EMPLOYEE"
	RoleManager  = "MANAGER"
	RoleAdmin    = "ADMIN"
)

type Service interface {
	Enforce(req domain.EnforceRequest) (bool, error)
}

type service struct {
	enforcer *casbin.Enforcer
	mu       sync.Mutex
}

// rolePolicies is the endpoint-class permission matrix. Item-level
// authorization (which owners an approver may act on) is decided by the
// hierarchy scope resolver, not here.
var rolePolicies = [][3]string{
	{RoleEmployee, "timesheet", "read"},
	{RoleEmployee, "timesheet", "create"},
	{RoleEmployee, "timesheet", "update"},
	{RoleEmployee, "timesheet", "delete"},
	{RoleEmployee, "timesheet", "submit"},
	{RoleEmployee, "expense", "read"},
	{RoleEmployee, "expense", "create"},
	{RoleEmployee, "expense", "update"},
	{RoleEmployee, "expense", "delete"},
	{RoleEmployee, "expense", "submit"},
	{RoleEmployee, "employee", "read"},

	{RoleManager, "timesheet", "approve"},
	{RoleManager, "timesheet", "reject"},
	{RoleManager, "expense", "approve"},
	{RoleManager, "expense", "reject"},
	{RoleManager, "approval", "read"},

	{RoleAdmin, "employee", "create"},
	{RoleAdmin, "employee", "update"},
	{RoleAdmin, "employee", "delete"},
	{RoleAdmin, "approval", "auto_approve"},
	{RoleAdmin, "audit", "read"},
}

// roleInheritance: MANAGER gets everything EMPLOYEE has, ADMIN everything
// MANAGER has.
var roleInheritance = [][2]string{
	{RoleManager, RoleEmployee},
	{RoleAdmin, RoleManager},
}

func NewService(enforcer *casbin.Enforcer) (Service, error) {
	for _, p := range rolePolicies {
		if _, err := enforcer.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, err
		}
	}
	for _, g := range roleInheritance {
		if _, err := enforcer.AddGroupingPolicy(g[0], g[1]); err != nil {
			return nil, err
		}
	}
	return &service{enforcer: enforcer}, nil
}

func (s *service) Enforce(req domain.EnforceRequest) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.enforcer.Enforce(req.Role, req.Resource, req.Action)
}
