package rbac

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateUser(t *testing.T) {
	tests := []struct {
		name    string
		draft   UserDraft
		field   string
		message string
	}{
		{
			name:  "valid with status",
			draft: UserDraft{Name: "Ann", Email: "ann@x.com", Role: RoleViewer, Status: StatusActive},
		},
		{
			name:  "valid without status",
			draft: UserDraft{Name: "Ann", Email: "ann@x.com", Role: RoleAdmin},
		},
		{
			name:    "empty name",
			draft:   UserDraft{Name: "", Email: "ann@x.com", Role: RoleViewer},
			field:   "Name",
			message: "Name is required",
		},
		{
			name:    "blank name",
			draft:   UserDraft{Name: "   ", Email: "ann@x.com", Role: RoleViewer},
			field:   "Name",
			message: "Name is required",
		},
		{
			name:    "email without at",
			draft:   UserDraft{Name: "Ann", Email: "ann.x.com", Role: RoleViewer},
			field:   "Email",
			message: "Valid email is required",
		},
		{
			name:    "email without domain dot",
			draft:   UserDraft{Name: "Ann", Email: "ann@x", Role: RoleViewer},
			field:   "Email",
			message: "Valid email is required",
		},
		{
			name:    "email with vertical tab",
			draft:   UserDraft{Name: "Ann", Email: "a@\v.b", Role: RoleViewer},
			field:   "Email",
			message: "Valid email is required",
		},
		{
			name:    "email with no-break space",
			draft:   UserDraft{Name: "Ann", Email: "a@\u00a0.b", Role: RoleViewer},
			field:   "Email",
			message: "Valid email is required",
		},
		{
			name:  "email with surrounding text",
			draft: UserDraft{Name: "Ann", Email: "mail ann@x.com now", Role: RoleViewer},
		},
		{
			name:    "unknown role",
			draft:   UserDraft{Name: "Ann", Email: "ann@x.com", Role: "Owner"},
			field:   "Role",
			message: "Valid role is required",
		},
		{
			name:    "missing role",
			draft:   UserDraft{Name: "Ann", Email: "ann@x.com"},
			field:   "Role",
			message: "Valid role is required",
		},
		{
			name:    "unknown status",
			draft:   UserDraft{Name: "Ann", Email: "ann@x.com", Role: RoleEditor, Status: "Suspended"},
			field:   "Status",
			message: "Status must be Active or Inactive",
		},
		{
			name:    "first broken rule wins",
			draft:   UserDraft{Name: "", Email: "bad", Role: "Owner", Status: "Suspended"},
			field:   "Name",
			message: "Name is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.draft.Validate()
			if tt.message == "" {
				assert.NoError(t, err)
				return
			}

			var validationErr *ValidationError
			if assert.True(t, errors.As(err, &validationErr)) {
				assert.Equal(t, tt.field, validationErr.Field)
				assert.Equal(t, tt.message, validationErr.Message)
			}
			assert.ErrorIs(t, err, ErrValidation)
			assert.EqualError(t, err, tt.message)
		})
	}
}

func TestUserValidateIgnoresID(t *testing.T) {
	user := User{ID: 99, Name: "X", Email: "x@x.com", Role: RoleAdmin}
	assert.NoError(t, user.Validate())
}
