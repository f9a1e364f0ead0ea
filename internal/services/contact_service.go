package services

import (
	"context"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/vytor/funzone/internal/errors"
	"github.com/vytor/funzone/internal/logger"
	"github.com/vytor/funzone/internal/mailer"
	"github.com/vytor/funzone/internal/metrics"
	"github.com/vytor/funzone/internal/models"
)

const (
	maxNameLen    = 100
	maxSubjectLen = 200
	maxMessageLen = 5000
)

// ContactService relays contact form submissions to the site owner's inbox.
type ContactService interface {
	Send(ctx context.Context, msg models.ContactMessage) error
}

type contactService struct {
	sender  mailer.Sender
	from    string
	to      string
	metrics *metrics.Metrics
	now     func() time.Time
}

// NewContactService creates a new ContactService. Notifications are sent from
// the configured account to the inbox, with Reply-To set to the visitor.
func NewContactService(sender mailer.Sender, from, to string, m *metrics.Metrics) ContactService {
	if to == "" {
		to = from
	}
	if m == nil {
		m = metrics.New()
	}
	return &contactService{sender: sender, from: from, to: to, metrics: m, now: time.Now}
}

// Validate trims msg in place and reports the first invalid field.
func Validate(msg *models.ContactMessage) error {
	msg.Name = strings.TrimSpace(msg.Name)
	msg.Email = strings.TrimSpace(msg.Email)
	msg.Subject = strings.TrimSpace(msg.Subject)
	msg.Message = strings.TrimSpace(msg.Message)

	switch {
	case msg.Name == "":
		return errors.NewValidationError("name", "is required")
	case utf8.RuneCountInString(msg.Name) > maxNameLen:
		return errors.NewValidationError("name", "is too long")
	case msg.Email == "":
		return errors.NewValidationError("email", "is required")
	case msg.Message == "":
		return errors.NewValidationError("message", "is required")
	case utf8.RuneCountInString(msg.Subject) > maxSubjectLen:
		return errors.NewValidationError("subject", "is too long")
	case utf8.RuneCountInString(msg.Message) > maxMessageLen:
		return errors.NewValidationError("message", "is too long")
	}

	addr, err := mail.ParseAddress(msg.Email)
	if err != nil || addr.Address != msg.Email {
		return errors.NewValidationError("email", "is not a valid address")
	}
	return nil
}

func (s *contactService) Send(ctx context.Context, msg models.ContactMessage) error {
	log := logger.FromContext(ctx).WithPrefix("contact")

	if err := Validate(&msg); err != nil {
		s.metrics.ContactSent.WithLabelValues("invalid").Inc()
		log.Debug("rejected contact message: %v", err)
		return err
	}
	log.Debug("relaying contact message: subject=%q", msg.Subject)

	email, err := mailer.NewContactMessage(s.from, s.to, mailer.Contact{
		Name:    msg.Name,
		Email:   msg.Email,
		Subject: msg.Subject,
		Message: msg.Message,
		SentAt:  s.now(),
	})
	if err != nil {
		s.metrics.ContactSent.WithLabelValues("error").Inc()
		log.Error("failed to render contact email: %v", err)
		return errors.NewInternalError(err)
	}

	if err := s.sender.Send(ctx, email); err != nil {
		s.metrics.ContactSent.WithLabelValues("error").Inc()
		log.Error("failed to send contact email: %v", err)
		return errors.NewUnavailableError("Error sending email.", err)
	}

	s.metrics.ContactSent.WithLabelValues("sent").Inc()
	log.Info("contact email sent")
	return nil
}
