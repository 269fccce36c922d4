package request

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation"
)

var phoneRegex = regexp.MustCompile(`^\+?[0-9]{7,15}$`)

type CreateClubRequest struct {
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	VicePresident  string   `json:"vice_president,omitempty"`
	FacultyAdvisor string   `json:"faculty_advisor"`
	PhoneNo        string   `json:"phone_no,omitempty"`
	Tags           []string `json:"tags,omitempty"`
}

func (req *CreateClubRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Description, validation.Length(0, 1000)),
		validation.Field(&req.FacultyAdvisor, validation.Required),
		validation.Field(&req.PhoneNo, validation.Match(phoneRegex)),
	)
}

type UpdateClubRequest struct {
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	VicePresident  string   `json:"vice_president,omitempty"`
	FacultyAdvisor string   `json:"faculty_advisor"`
	PhoneNo        string   `json:"phone_no,omitempty"`
	Tags           []string `json:"tags,omitempty"`
}

func (req *UpdateClubRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Description, validation.Length(0, 1000)),
		validation.Field(&req.PhoneNo, validation.Match(phoneRegex)),
	)
}
