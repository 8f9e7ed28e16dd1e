package model

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type CreateAuthorRequest struct {
	Name string  `json:"name"`
	Bio  *string `json:"bio,omitempty"`
}

func (r CreateAuthorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.By(notBlank),
			validation.Length(1, 255),
		),
		validation.Field(&r.Bio, validation.Length(0, 5000)),
	)
}

func notBlank(value interface{}) error {
	s, _ := value.(string)
	if strings.TrimSpace(s) == "" {
		return validation.NewError("validation_blank", "cannot be blank")
	}
	return nil
}
