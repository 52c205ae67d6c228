package notification

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"
)

type MailerConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	To       []string
	Subject  string
}

// Mailer sends note notifications over SMTP. A new connection is dialed per
// message; note saves are rare enough that pooling would buy nothing.
type Mailer struct {
	cfg MailerConfig
}

var _ Notifier = (*Mailer)(nil)

func NewMailer(cfg MailerConfig) *Mailer {
	return &Mailer{cfg: cfg}
}

func (m *Mailer) NotifyNoteSaved(ctx context.Context, event NoteEvent) error {
	msg := mail.NewMsg()
	if err := msg.From(m.cfg.From); err != nil {
		return err
	}
	if err := msg.To(m.cfg.To...); err != nil {
		return err
	}

	subject := m.cfg.Subject
	if subject == "" {
		subject = "New note on table"
	}
	msg.Subject(fmt.Sprintf("%s: %s", subject, event.Table))
	msg.SetBodyString(mail.TypeTextPlain, noteBody(event))

	opts := []mail.Option{
		mail.WithPort(m.cfg.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if m.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(m.cfg.Username),
			mail.WithPassword(m.cfg.Password),
		)
	}
	client, err := mail.NewClient(m.cfg.Host, opts...)
	if err != nil {
		return err
	}
	return client.DialAndSendWithContext(ctx, msg)
}

func noteBody(event NoteEvent) string {
	return fmt.Sprintf(
		"A new note was added to table %s\n\n"+
			"Table: %s\nUser: %s\nTime: %s\n\nNote:\n%s\n\n"+
			"--\nAutomatic notification from the customer management system.\n",
		event.Table, event.Table, event.Author,
		event.SavedAt.Format("2006-01-02 15:04:05 MST"),
		event.Text,
	)
}
