package user

import (
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)

// ========================================
// USER DTOs
// ========================================

type CreateUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

func (r CreateUserRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username,
			validation.Required.Error("username is required"),
			validation.Length(3, 50),
			validation.Match(usernamePattern).Error("username may only contain letters, digits, '.', '_' and '-'"),
		),
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			is.Email.Error("invalid email format"),
			validation.Length(5, 255),
		),
	)
}

// Normalize trim khoảng trắng và lowercase email
func (r CreateUserRequest) Normalize() CreateUserRequest {
	return CreateUserRequest{
		Username: strings.TrimSpace(r.Username),
		Email:    strings.ToLower(strings.TrimSpace(r.Email)),
	}
}
