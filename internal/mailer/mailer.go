package mailer

import (
	"fmt"
	"strings"

	mail "github.com/go-mail/mail"
	"go.uber.org/zap"

	"shopx/internal/config"
	"shopx/internal/logger"
)

// SMTPMailer sends outbound mail over SMTP. It implements service.Mailer.
type SMTPMailer struct {
	host         string
	port         int
	user         string
	pass         string
	from         string
	companyEmail string
	log          *zap.Logger
}

// New builds an SMTPMailer from configuration.
func New(cfg *config.Config) *SMTPMailer {
	return &SMTPMailer{
		host:         cfg.SMTPHost,
		port:         cfg.SMTPPort,
		user:         cfg.SMTPUser,
		pass:         cfg.SMTPPass,
		from:         fmt.Sprintf("%s <%s>", cfg.FromName, cfg.FromEmail),
		companyEmail: cfg.CompanyEmail,
		log:          logger.Named("mailer"),
	}
}

// SendPasswordReset mails the raw reset token embedded in a reset URL.
func (m *SMTPMailer) SendPasswordReset(to, resetURL string) error {
	body := "You are receiving this email because you (or someone else) has requested the reset of a password.\n" +
		"Please click on the link below to reset your password:\n\n" +
		resetURL + "\n\n" +
		"If you did not request this, please ignore this email and your password will remain unchanged.\n"
	return m.send(to, "Password Reset Request", body, "")
}

// SendContactEmail forwards a contact-form submission to the company inbox.
func (m *SMTPMailer) SendContactEmail(name, email, subject, message string) error {
	html := fmt.Sprintf(`<h2>New Contact Form Submission</h2>
<p><strong>Name:</strong> %s</p>
<p><strong>Email:</strong> %s</p>
<p><strong>Subject:</strong> %s</p>
<p><strong>Message:</strong></p>
<p>%s</p>`, name, email, subject, strings.ReplaceAll(message, "\n", "<br>"))
	return m.send(m.companyEmail, "Contact Form: "+subject, "", html)
}

// SendContactConfirmation acknowledges the submission to the submitter.
func (m *SMTPMailer) SendContactConfirmation(name, email, subject string) error {
	html := fmt.Sprintf(`<h2>Thank you for contacting us, %s!</h2>
<p>We have received your message with the subject: <strong>%s</strong></p>
<p>Our team will review your message and get back to you as soon as possible.</p>
<p>Best regards,<br>The ShopX Team</p>`, name, subject)
	return m.send(email, "Thank you for contacting us", "", html)
}

func (m *SMTPMailer) send(to, subject, textBody, htmlBody string) error {
	msg := mail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	if textBody != "" {
		msg.SetBody("text/plain", textBody)
	}
	if htmlBody != "" {
		if textBody == "" {
			msg.SetBody("text/html", htmlBody)
		} else {
			msg.AddAlternative("text/html", htmlBody)
		}
	}

	d := mail.NewDialer(m.host, m.port, m.user, m.pass)
	if err := d.DialAndSend(msg); err != nil {
		m.log.Error("smtp send failed", zap.String("to", to), zap.String("subject", subject), zap.Error(err))
		return fmt.Errorf("smtp send: %w", err)
	}
	m.log.Info("email sent", zap.String("to", to), zap.String("subject", subject))
	return nil
}
