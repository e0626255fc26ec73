package rbac

// Role is one of the fixed roles a user can hold.
type Role string

const (
	RoleAdmin  Role = "Admin"
	RoleEditor Role = "Editor"
	RoleViewer Role = "Viewer"
)

// Roles returns the enumerated role set in display order.
func Roles() []Role {
	return []Role{RoleAdmin, RoleEditor, RoleViewer}
}

// Status is the activation status of a user.
type Status string

const (
	StatusActive   Status = "Active"
	StatusInactive Status = "Inactive"
)

func Statuses() []Status {
	return []Status{StatusActive, StatusInactive}
}

// User is a single user record as held by the data service.
type User struct {
	ID     ID     `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
	Status Status `json:"status"`
}

// UserDraft is a candidate record that has not been assigned an identity yet.
type UserDraft struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
	Status Status `json:"status"`
}

// WithID completes the draft into a record carrying the given identity.
func (d UserDraft) WithID(id ID) User {
	return User{
		ID:     id,
		Name:   d.Name,
		Email:  d.Email,
		Role:   d.Role,
		Status: d.Status,
	}
}

// Draft strips the identity from u.
func (u User) Draft() UserDraft {
	return UserDraft{
		Name:   u.Name,
		Email:  u.Email,
		Role:   u.Role,
		Status: u.Status,
	}
}
