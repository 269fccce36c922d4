package notifier

import (
	"fmt"
	"net/smtp"
	"strings"
)

type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

// Mailer formats and sends the transactional emails behind the outbox
// queue. Plain-text bodies only.
type Mailer struct {
	conf SMTPConfig

	// sendMail is smtp.SendMail unless replaced by tests.
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewMailer(conf SMTPConfig) *Mailer {
	return &Mailer{
		conf:     conf,
		sendMail: smtp.SendMail,
	}
}

func (m *Mailer) Send(msg Message) error {
	switch msg.Kind {
	case KindPaymentVerified:
		return m.send(msg.Email,
			fmt.Sprintf("Payment Verified for %s", msg.EventName),
			fmt.Sprintf("Hello %s,\n\nGood news! Your payment for the event %q has been verified.\nYour registration is confirmed — your ticket QR code is available on the event page.\n\nSee you there!\nEventSync",
				msg.Name, msg.EventName))

	case KindPaymentRejected:
		body := fmt.Sprintf("Hello %s,\n\nWe regret to inform you that your payment for the event %q could not be verified and has been rejected.\n\nReason: %s\n\nYour registration has been removed. If you believe this is a mistake, please reach out to the event organizers.",
			msg.Name, msg.EventName, msg.Reason)
		if msg.OrganizerContact.President != "" || msg.OrganizerContact.PhoneNo != "" {
			body += fmt.Sprintf("\n\nClub contact:\nPresident: %s\nPhone: %s",
				orNotSpecified(msg.OrganizerContact.President),
				orNotSpecified(msg.OrganizerContact.PhoneNo))
		}
		body += "\n\nEventSync"
		return m.send(msg.Email, fmt.Sprintf("Payment Rejected for %s", msg.EventName), body)

	case KindEventAnnouncement:
		subject := fmt.Sprintf("New Event: %s", msg.EventName)
		var firstErr error
		for _, r := range msg.Recipients {
			body := fmt.Sprintf("Hello %s,\n\nA new event is open for registration on EventSync!\n\nEvent: %s\nLocation: %s\nStarts: %s\n\nLog in to register before spots run out.\n\nEventSync | Your Campus Connection",
				r.Name, msg.EventName, msg.Location, msg.StartDate)
			if err := m.send(r.Email, subject, body); err != nil && firstErr == nil {
				firstErr = err
			}
		}
		return firstErr

	case KindAccountStatus:
		if msg.Approved {
			return m.send(msg.Email,
				"Your EventSync Account Has Been Approved",
				fmt.Sprintf("Hello %s,\n\nWelcome to EventSync! Your account has been approved by the administrator.\nYou can now log in to explore events, join clubs, and engage with the campus community.\n\nEventSync | Your Campus Connection", msg.Name))
		}
		return m.send(msg.Email,
			"EventSync Account Status Update",
			fmt.Sprintf("Hello %s,\n\nWe regret to inform you that your registration request for an EventSync account has been rejected by the administrator.\nIf you believe this is an error, please try registering again with accurate information or contact support.\n\nEventSync | Your Campus Connection", msg.Name))

	default:
		return fmt.Errorf("unknown message kind %q", msg.Kind)
	}
}

func (m *Mailer) send(to, subject, body string) error {
	headers := []string{
		fmt.Sprintf("From: EventSync <%s>", m.conf.From),
		fmt.Sprintf("To: %s", to),
		fmt.Sprintf("Subject: %s", subject),
		"",
	}
	payload := []byte(strings.Join(headers, "\r\n") + "\r\n" + body)

	addr := m.conf.Host + ":" + m.conf.Port
	auth := smtp.PlainAuth("", m.conf.Username, m.conf.Password, m.conf.Host)

	if err := m.sendMail(addr, auth, m.conf.From, []string{to}, payload); err != nil {
		return fmt.Errorf("smtp.SendMail -> %w", err)
	}

	return nil
}

func orNotSpecified(s string) string {
	if s == "" {
		return "Not specified"
	}
	return s
}
