package mail

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/smtp"

	"spendenlauf-api/core/config"
	"spendenlauf-api/core/logger"
)

//go:embed templates/*.html
var templateFS embed.FS

// Mailer sends a single rendered message. Implementations must be safe for
// concurrent use; the notification worker calls Send from multiple goroutines.
type Mailer interface {
	Send(to, subject, templateName string, data any) error
}

type SMTPMailer struct {
	host      string
	port      int
	username  string
	password  string
	from      string
	templates *template.Template
}

func NewSMTPMailer(cfg config.MailConfig) (*SMTPMailer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("mail: parsing templates: %w", err)
	}

	return &SMTPMailer{
		host:      cfg.Host,
		port:      cfg.Port,
		username:  cfg.Username,
		password:  cfg.Password,
		from:      cfg.From,
		templates: tmpl,
	}, nil
}

func (m *SMTPMailer) Send(to, subject, templateName string, data any) error {
	body, err := m.buildMessage(to, subject, templateName, data)
	if err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	auth := smtp.PlainAuth("", m.username, m.password, m.host)

	if err := smtp.SendMail(addr, auth, m.from, []string{to}, body); err != nil {
		return fmt.Errorf("mail: sending to %s: %w", to, err)
	}
	return nil
}

func (m *SMTPMailer) buildMessage(to, subject, templateName string, data any) ([]byte, error) {
	buf := new(bytes.Buffer)
	fmt.Fprintf(buf, "From: %s\r\n", m.from)
	fmt.Fprintf(buf, "To: %s\r\n", to)
	fmt.Fprintf(buf, "Subject: %s\r\n", subject)
	buf.WriteString("MIME-version: 1.0;\r\nContent-Type: text/html; charset=\"UTF-8\";\r\n\r\n")

	if err := m.templates.ExecuteTemplate(buf, templateName, data); err != nil {
		return nil, fmt.Errorf("mail: rendering %s: %w", templateName, err)
	}
	return buf.Bytes(), nil
}

// LogMailer is used when MAIL_ENABLED is false: messages are logged instead
// of sent so local development needs no SMTP server.
type LogMailer struct{}

func NewLogMailer() *LogMailer {
	return &LogMailer{}
}

func (m *LogMailer) Send(to, subject, templateName string, data any) error {
	logger.Info("LogMailer:Send", "to", to, "subject", subject, "template", templateName)
	return nil
}
