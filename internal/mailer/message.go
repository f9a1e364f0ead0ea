// Package mailer renders the contact notification and delivers it over SMTP.
package mailer

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"mime"
	"mime/quotedprintable"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
)

//go:embed templates/*.html
var templatesFS embed.FS

var contactTmpl = template.Must(template.ParseFS(templatesFS, "templates/contact.html"))

// Message is a single HTML email.
type Message struct {
	From    string
	To      []string
	ReplyTo string
	Subject string
	HTML    string
}

// Contact is what a visitor submits through the contact form.
type Contact struct {
	Name    string
	Email   string
	Subject string
	Message string
	SentAt  time.Time
}

// ContactSubject formats the subject line of a contact notification.
func ContactSubject(c Contact) string {
	return fmt.Sprintf("Portfolio Contact: %s - From %s", c.Subject, c.Name)
}

// NewContactMessage renders the notification sent to the site owner. Visitor
// text is escaped by the template.
func NewContactMessage(from, to string, c Contact) (Message, error) {
	if c.SentAt.IsZero() {
		c.SentAt = time.Now()
	}
	var buf bytes.Buffer
	if err := contactTmpl.Execute(&buf, c); err != nil {
		return Message{}, fmt.Errorf("render contact email: %w", err)
	}
	return Message{
		From:    from,
		To:      []string{to},
		ReplyTo: c.Email,
		Subject: ContactSubject(c),
		HTML:    buf.String(),
	}, nil
}

// headerValue drops line breaks so visitor input cannot add headers.
func headerValue(s string) string {
	return strings.NewReplacer("\r", "", "\n", " ").Replace(s)
}

// addressValue renders an address with any display name encoded.
func addressValue(s string) string {
	s = headerValue(s)
	if a, err := mail.ParseAddress(s); err == nil {
		return a.String()
	}
	return s
}

// subjectValue Q-encodes s when needed, folding between encoded words so long
// subjects stay within the line limit.
func subjectValue(s string) string {
	enc := mime.QEncoding.Encode("utf-8", headerValue(s))
	return strings.ReplaceAll(enc, "?= =?", "?=\r\n =?")
}

// Bytes encodes m as an RFC 5322 message with a single quoted-printable HTML
// part. Non-ASCII header text is RFC 2047 encoded.
func (m Message) Bytes(now time.Time) []byte {
	var b bytes.Buffer
	write := func(k, v string) {
		if v != "" {
			b.WriteString(k + ": " + v + "\r\n")
		}
	}
	to := make([]string, 0, len(m.To))
	for _, addr := range m.To {
		to = append(to, addressValue(addr))
	}
	write("From", addressValue(m.From))
	write("To", strings.Join(to, ", "))
	write("Reply-To", addressValue(m.ReplyTo))
	write("Subject", subjectValue(m.Subject))
	write("Date", now.Format(time.RFC1123Z))
	write("Message-ID", "<"+uuid.NewString()+"@funzone>")
	write("MIME-Version", "1.0")
	write("Content-Type", `text/html; charset="UTF-8"`)
	write("Content-Transfer-Encoding", "quoted-printable")
	b.WriteString("\r\n")

	qp := quotedprintable.NewWriter(&b)
	_, _ = qp.Write([]byte(m.HTML))
	_ = qp.Close()
	b.WriteString("\r\n")
	return b.Bytes()
}
