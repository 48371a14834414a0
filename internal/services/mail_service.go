package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
)

var ErrMailDisabled = errors.New("mail relay not configured")

const defaultEmailJSEndpoint = "https://api.emailjs.com/api/v1.0/email/send"

// MailService relays contact-form submissions to the EmailJS send endpoint
// with server-held credentials. No retry is attempted on failure.
type MailService struct {
	ServiceID  string
	TemplateID string
	PublicKey  string
	Endpoint   string // overridable for tests
	Timeout    time.Duration
}

func NewMailService(serviceID, templateID, publicKey string) *MailService {
	return &MailService{
		ServiceID:  serviceID,
		TemplateID: templateID,
		PublicKey:  publicKey,
		Endpoint:   defaultEmailJSEndpoint,
		Timeout:    15 * time.Second,
	}
}

func (s *MailService) Enabled() bool {
	return s.ServiceID != "" && s.TemplateID != "" && s.PublicKey != ""
}

type ContactMessage struct {
	Name    string `json:"name" form:"name"`
	Email   string `json:"email" form:"email"`
	Phone   string `json:"phone" form:"phone"`
	Subject string `json:"subject" form:"subject"`
	Message string `json:"message" form:"message"`
}

// Payload builds the EmailJS request body for one submission.
func (s *MailService) Payload(m ContactMessage) map[string]any {
	return map[string]any{
		"service_id":  s.ServiceID,
		"template_id": s.TemplateID,
		"user_id":     s.PublicKey,
		"template_params": map[string]string{
			"name":    m.Name,
			"email":   m.Email,
			"phone":   m.Phone,
			"subject": m.Subject,
			"message": m.Message,
		},
	}
}

func (s *MailService) Send(m ContactMessage) error {
	if !s.Enabled() {
		return ErrMailDisabled
	}
	payload, err := json.Marshal(s.Payload(m))
	if err != nil {
		return err
	}

	a := fiber.AcquireAgent()
	req := a.Request()
	req.Header.SetMethod(fiber.MethodPost)
	req.Header.SetContentType(fiber.MIMEApplicationJSON)
	req.SetRequestURI(s.Endpoint)
	req.SetBody(payload)
	if err := a.Parse(); err != nil {
		return err
	}
	code, _, errs := a.Timeout(s.Timeout).Bytes()
	if len(errs) > 0 {
		return errs[0]
	}
	if code != fiber.StatusOK {
		return fmt.Errorf("mail upstream returned %d", code)
	}
	return nil
}
