package employee

type CreateEmployeeRequest struct {
	FullName  string  `json:"full_name" binding:"required"`
	Email     string  `json:"email" binding:"required,email"`
	ManagerID *string `json:"manager_id"`
}

type UpdateEmployeeRequest struct {
	FullName  string  `json:"full_name" binding:"required"`
	Email     string  `json:"email" binding:"required,email"`
	ManagerID *string `json:"manager_id"`
}

type EmployeeResponse struct {
	ID        string  `json:"id"`
	CompanyID string  `json:"company_id"`
	ManagerID *string `json:"manager_id,omitempty"`
	FullName  string  `json:"full_name"`
	Email     string  `json:"email"`
	RootLevel bool    `json:"root_level"`
}
