package service

import (
	apperrors "shopx/internal/errors"
)

// ContactService forwards contact-form submissions by email.
type ContactService interface {
	Send(name, email, subject, message string) error
}

type contactService struct {
	mailer Mailer
}

// NewContactService builds a ContactService.
func NewContactService(mailer Mailer) ContactService {
	return &contactService{mailer: mailer}
}

// Send mails the submission to the company inbox and a confirmation to the
// submitter. The confirmation is best-effort only after the company mail
// succeeded.
func (s *contactService) Send(name, email, subject, message string) error {
	if err := s.mailer.SendContactEmail(name, email, subject, message); err != nil {
		return apperrors.Server("Failed to send message. Please try again later.", err)
	}
	if err := s.mailer.SendContactConfirmation(name, email, subject); err != nil {
		return apperrors.Server("Failed to send message. Please try again later.", err)
	}
	return nil
}
