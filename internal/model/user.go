package model

// User role constants
const (
	UserRoleAdmin  = "admin"
	UserRoleDoctor = "doctor"
	UserRoleNurse  = "nurse"
	UserRoleStaff  = "staff"
)

// User represents an operator account as returned by the backend.
type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Active bool   `json:"active"`
	Audit
}

// CreateUserRequest is the body of POST /users.
type CreateUserRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required,oneof=admin doctor nurse staff"`
}

// UpdateUserRequest is the body of PUT /users/:id. Nil fields are left unchanged.
type UpdateUserRequest struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,min=1"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=6"`
	Role     *string `json:"role,omitempty" validate:"omitempty,oneof=admin doctor nurse staff"`
	Active   *bool   `json:"active,omitempty"`
}

// UserFilter represents user search parameters
type UserFilter struct {
	SearchTerm string `json:"search_term"`
	Role       string `json:"role"`
}
