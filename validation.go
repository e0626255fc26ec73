package rbac

import (
	"errors"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// nonSpace also excludes Unicode spaces and the vertical tab, which RE2's \S lets through.
const nonSpace = `[^\s\v\p{Z}\x{FEFF}]+`

var emailPattern = regexp.MustCompile(nonSpace + `@` + nonSpace + `\.` + nonSpace)

// candidate carries the validated fields; field order is the order in which
// rules are reported.
type candidate struct {
	Name   string `validate:"notblank"`
	Email  string `validate:"looseemail"`
	Role   string `validate:"oneof=Admin Editor Viewer"`
	Status string `validate:"omitempty,oneof=Active Inactive"`
}

var messages = map[string]string{
	"Name":   "Name is required",
	"Email":  "Valid email is required",
	"Role":   "Valid role is required",
	"Status": "Status must be Active or Inactive",
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.RegisterValidation("looseemail", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	return v
}

// ValidateUser checks a candidate record before it is sent to the service.
// An empty status is accepted. It returns a *ValidationError for the first
// broken rule, or nil.
func ValidateUser(name, email string, role Role, status Status) error {
	err := validate.Struct(candidate{
		Name:   name,
		Email:  email,
		Role:   string(role),
		Status: string(status),
	})
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}
	field := fieldErrs[0].Field()
	return &ValidationError{Field: field, Message: messages[field]}
}

// Validate checks the draft with ValidateUser.
func (d UserDraft) Validate() error {
	return ValidateUser(d.Name, d.Email, d.Role, d.Status)
}

// Validate checks the record with ValidateUser. The identity is not checked.
func (u User) Validate() error {
	return ValidateUser(u.Name, u.Email, u.Role, u.Status)
}
