package response

import (
	"github.com/eventsync/eventsync-api/internal/domain"
)

// TicketResponse carries the QR payload a registrant renders on their
// device, plus the human readable reference printed under the code.
type TicketResponse struct {
	Reference string `json:"reference"`
	Payload   string `json:"payload"`
}

type CheckInResponse struct {
	Registration     domain.Registration `json:"registration"`
	AlreadyCheckedIn bool                `json:"already_checked_in"`
}
