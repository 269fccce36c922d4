package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type AccountStatusRequest struct {
	Approved *bool `json:"approved"`
}

func (req *AccountStatusRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Approved, validation.NotNil),
	)
}
