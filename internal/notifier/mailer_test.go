package notifier

import (
	"net/smtp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventsync/eventsync-api/internal/domain"
)

type capturedMail struct {
	addr string
	from string
	to   []string
	body string
}

func newCapturingMailer(fail error) (*Mailer, *[]capturedMail) {
	var sent []capturedMail

	m := NewMailer(SMTPConfig{
		Host:     "smtp.test.local",
		Port:     "587",
		Username: "outbox",
		Password: "secret",
		From:     "noreply@eventsync.app",
	})
	m.sendMail = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		if fail != nil {
			return fail
		}
		sent = append(sent, capturedMail{addr: addr, from: from, to: to, body: string(msg)})
		return nil
	}

	return m, &sent
}

func TestSendPaymentVerified(t *testing.T) {
	m, sent := newCapturingMailer(nil)

	err := m.Send(Message{
		Kind:      KindPaymentVerified,
		Email:     "aditi@campus.edu",
		Name:      "Aditi",
		EventName: "Hackathon 2026",
	})
	require.NoError(t, err)
	require.Len(t, *sent, 1)

	mail := (*sent)[0]
	assert.Equal(t, "smtp.test.local:587", mail.addr)
	assert.Equal(t, "noreply@eventsync.app", mail.from)
	assert.Equal(t, []string{"aditi@campus.edu"}, mail.to)
	assert.Contains(t, mail.body, "Subject: Payment Verified for Hackathon 2026")
	assert.Contains(t, mail.body, "Hello Aditi,")
	assert.Contains(t, mail.body, `"Hackathon 2026" has been verified`)
}

func TestSendPaymentRejected(t *testing.T) {
	t.Run("with club contact", func(t *testing.T) {
		m, sent := newCapturingMailer(nil)

		err := m.Send(Message{
			Kind:      KindPaymentRejected,
			Email:     "aditi@campus.edu",
			Name:      "Aditi",
			EventName: "Hackathon 2026",
			Reason:    "transaction ID not found",
			OrganizerContact: domain.OrganizerContact{
				President: "Rohan",
				PhoneNo:   "+911234567890",
			},
		})
		require.NoError(t, err)
		require.Len(t, *sent, 1)

		body := (*sent)[0].body
		assert.Contains(t, body, "Subject: Payment Rejected for Hackathon 2026")
		assert.Contains(t, body, "Reason: transaction ID not found")
		assert.Contains(t, body, "President: Rohan")
		assert.Contains(t, body, "Phone: +911234567890")
	})

	t.Run("without club contact", func(t *testing.T) {
		m, sent := newCapturingMailer(nil)

		err := m.Send(Message{
			Kind:      KindPaymentRejected,
			Email:     "aditi@campus.edu",
			Name:      "Aditi",
			EventName: "Tech Talk",
			Reason:    "amount mismatch",
		})
		require.NoError(t, err)
		require.Len(t, *sent, 1)
		assert.NotContains(t, (*sent)[0].body, "Club contact:")
	})

	t.Run("partial contact falls back to not specified", func(t *testing.T) {
		m, sent := newCapturingMailer(nil)

		err := m.Send(Message{
			Kind:             KindPaymentRejected,
			Email:            "aditi@campus.edu",
			Name:             "Aditi",
			EventName:        "Tech Talk",
			Reason:           "amount mismatch",
			OrganizerContact: domain.OrganizerContact{President: "Rohan"},
		})
		require.NoError(t, err)
		require.Len(t, *sent, 1)
		assert.Contains(t, (*sent)[0].body, "Phone: Not specified")
	})
}

func TestSendEventAnnouncementFansOut(t *testing.T) {
	m, sent := newCapturingMailer(nil)

	err := m.Send(Message{
		Kind:      KindEventAnnouncement,
		EventName: "Open Mic Night",
		Location:  "Main Auditorium",
		StartDate: "2026-09-12 18:00",
		Recipients: []Recipient{
			{Email: "a@campus.edu", Name: "Aditi"},
			{Email: "b@campus.edu", Name: "Rohan"},
		},
	})
	require.NoError(t, err)
	require.Len(t, *sent, 2)

	assert.Equal(t, []string{"a@campus.edu"}, (*sent)[0].to)
	assert.Equal(t, []string{"b@campus.edu"}, (*sent)[1].to)
	for _, mail := range *sent {
		assert.Contains(t, mail.body, "Subject: New Event: Open Mic Night")
		assert.Contains(t, mail.body, "Location: Main Auditorium")
		assert.Contains(t, mail.body, "Starts: 2026-09-12 18:00")
	}
}

func TestSendAccountStatus(t *testing.T) {
	t.Run("approved", func(t *testing.T) {
		m, sent := newCapturingMailer(nil)

		err := m.Send(Message{
			Kind:     KindAccountStatus,
			Email:    "club@campus.edu",
			Name:     "Robotics Club",
			Approved: true,
		})
		require.NoError(t, err)
		require.Len(t, *sent, 1)
		assert.Contains(t, (*sent)[0].body, "Subject: Your EventSync Account Has Been Approved")
	})

	t.Run("rejected", func(t *testing.T) {
		m, sent := newCapturingMailer(nil)

		err := m.Send(Message{
			Kind:  KindAccountStatus,
			Email: "club@campus.edu",
			Name:  "Robotics Club",
		})
		require.NoError(t, err)
		require.Len(t, *sent, 1)
		assert.Contains(t, (*sent)[0].body, "Subject: EventSync Account Status Update")
		assert.Contains(t, (*sent)[0].body, "has been rejected")
	})
}

func TestSendUnknownKind(t *testing.T) {
	m, sent := newCapturingMailer(nil)

	err := m.Send(Message{Kind: Kind("telegram")})
	assert.ErrorContains(t, err, "unknown message kind")
	assert.Empty(t, *sent)
}

func TestSendWrapsTransportError(t *testing.T) {
	m, _ := newCapturingMailer(assert.AnError)

	err := m.Send(Message{
		Kind:      KindPaymentVerified,
		Email:     "aditi@campus.edu",
		Name:      "Aditi",
		EventName: "Hackathon 2026",
	})
	assert.ErrorIs(t, err, assert.AnError)
}
