package service

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/fadilmartias/ai-recruiter/internal/config"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

const (
	MailKindCredentials = "second_round"
	MailKindOffer       = "offer_letter"

	credentialsSubject = "Shortlisted for Next Interview Round"
	offerSubject       = "Offer Letter: Congratulations!"
)

//go:embed templates/*.tmpl
var mailTemplateFS embed.FS

var mailTemplates = template.Must(template.ParseFS(mailTemplateFS, "templates/*.tmpl"))

// Dispatch is the outcome of one outbound email as reported to callers.
type Dispatch struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// MailSender delivers composed messages; *gomail.Dialer satisfies it.
type MailSender interface {
	DialAndSend(m ...*gomail.Message) error
}

type CredentialsMail struct {
	Name     string
	Email    string
	Password string
	QuizLink string
}

type OfferMail struct {
	Name      string
	Email     string
	QuizScore float64
}

type MailService struct {
	from       string
	missing    []string
	overrideTo string
	sender     MailSender
	log        *zap.Logger
}

// NewMailService dials with implicit TLS on port 465 and STARTTLS otherwise.
// The override address is only honoured outside production.
func NewMailService(cfg *config.SMTPConfig, production bool, log *zap.Logger) *MailService {
	d := gomail.NewDialer(cfg.Server, cfg.Port, cfg.Email, cfg.Password)
	d.SSL = cfg.Port == 465
	return newMailService(cfg, production, d, log)
}

func newMailService(cfg *config.SMTPConfig, production bool, sender MailSender, log *zap.Logger) *MailService {
	s := &MailService{
		from:    cfg.Email,
		missing: cfg.Missing(),
		sender:  sender,
		log:     log.Named("mail"),
	}
	if !production {
		s.overrideTo = strings.TrimSpace(cfg.OverrideTo)
	}
	return s
}

// Send delivers a plain-text email.
func (s *MailService) Send(to, subject, body string) error {
	if len(s.missing) > 0 {
		return fmt.Errorf("SMTP configuration error, missing or invalid: %s", strings.Join(s.missing, ", "))
	}

	if s.overrideTo != "" {
		subject = fmt.Sprintf("[to %s] %s", to, subject)
		to = s.overrideTo
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetDateHeader("Date", time.Now())
	m.SetBody("text/plain", body)

	if err := s.sender.DialAndSend(m); err != nil {
		return fmt.Errorf("send email to %s: %w", to, err)
	}
	return nil
}

// Dispatch sends and converts the outcome into a Dispatch.
func (s *MailService) Dispatch(to, subject, body string) Dispatch {
	if err := s.Send(to, subject, body); err != nil {
		s.log.Warn("email not sent", zap.String("to", to), zap.Error(err))
		return Dispatch{Success: false, Message: err.Error()}
	}
	s.log.Info("email sent", zap.String("to", to), zap.String("subject", subject))
	return Dispatch{Success: true, Message: "Email sent successfully"}
}

func (s *MailService) SendCredentials(mail CredentialsMail) Dispatch {
	subject, body, err := RenderCredentialsMail(mail)
	if err != nil {
		return Dispatch{Success: false, Message: err.Error()}
	}
	return s.Dispatch(mail.Email, subject, body)
}

func (s *MailService) SendOffer(mail OfferMail) Dispatch {
	subject, body, err := RenderOfferMail(mail)
	if err != nil {
		return Dispatch{Success: false, Message: err.Error()}
	}
	return s.Dispatch(mail.Email, subject, body)
}

func RenderCredentialsMail(mail CredentialsMail) (string, string, error) {
	body, err := render("second_round.tmpl", mail)
	return credentialsSubject, body, err
}

func RenderOfferMail(mail OfferMail) (string, string, error) {
	body, err := render("offer_letter.tmpl", mail)
	return offerSubject, body, err
}

func render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := mailTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}
