package domain

import "time"

type Club struct {
	ID               uint      `json:"id"`
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	President        string    `json:"president"`
	PresidentID      uint      `json:"president_id"`
	VicePresident    string    `json:"vice_president,omitempty"`
	VicePresidentID  *uint     `json:"vice_president_id,omitempty"`
	FacultyAdvisor   string    `json:"faculty_advisor"`
	FacultyAdvisorID *uint     `json:"faculty_advisor_id,omitempty"`
	PhoneNo          string    `json:"phone_no,omitempty"`
	MemberCount      int       `json:"member_count"`
	Points           int       `json:"points"`
	Tags             []string  `json:"tags"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// OrganizerContact is what a payment-rejection email carries so the
// registrant can dispute the decision.
type OrganizerContact struct {
	President string `json:"president"`
	PhoneNo   string `json:"phone_no"`
}
