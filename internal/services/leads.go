package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"

	"pioneering-site/internal/models"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

const requiredFieldsMessage = "Please fill in all required fields."

type leadArchive interface {
	Create(ctx context.Context, lead *models.Lead) error
}

// leadDeduper.Claim reports true when key was not seen inside the window.
type leadDeduper interface {
	Claim(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string) error
}

type LeadService struct {
	mailer   Mailer
	archive  leadArchive
	deduper  leadDeduper
	notifyTo string
	siteName string
	now      func() time.Time
}

// NewLeadService wires the required mailer. Archive and deduper are optional
// and may be attached with WithArchive / WithDeduper.
func NewLeadService(mailer Mailer, notifyTo, siteName string) *LeadService {
	return &LeadService{
		mailer:   mailer,
		notifyTo: notifyTo,
		siteName: siteName,
		now:      time.Now,
	}
}

func (s *LeadService) WithArchive(a leadArchive) *LeadService {
	s.archive = a
	return s
}

func (s *LeadService) WithDeduper(d leadDeduper) *LeadService {
	s.deduper = d
	return s
}

// Submit validates a consultation request, notifies the team and archives it.
func (s *LeadService) Submit(ctx context.Context, req models.LeadRequest) (*models.Lead, error) {
	lead, err := s.validate(req)
	if err != nil {
		return nil, err
	}

	key := dedupeKey(lead)
	if s.deduper != nil {
		fresh, err := s.deduper.Claim(ctx, key)
		if err != nil {
			slog.Warn("lead_dedupe_unavailable", "error", err)
		} else if !fresh {
			slog.Info("lead_duplicate_ignored", "lead_id", lead.ID)
			lead.Duplicate = true
			return lead, nil
		}
	}

	if err := s.mailer.Send(ctx, s.composeEmail(lead)); err != nil {
		if s.deduper != nil {
			if relErr := s.deduper.Release(ctx, key); relErr != nil {
				slog.Warn("lead_dedupe_release_failed", "error", relErr)
			}
		}
		return nil, &DeliveryError{Err: err}
	}

	if s.archive != nil {
		if err := s.archive.Create(ctx, lead); err != nil {
			slog.Error("lead_archive_failed", "lead_id", lead.ID, "error", err)
		}
	}

	slog.Info("lead_received", "lead_id", lead.ID)
	return lead, nil
}

func (s *LeadService) validate(req models.LeadRequest) (*models.Lead, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	phone := strings.TrimSpace(req.Phone)

	fieldErrors := make(map[string]string)
	if name == "" {
		fieldErrors["user_name"] = "Name is required"
	}
	if email == "" {
		fieldErrors["user_email"] = "Email is required"
	}
	if phone == "" {
		fieldErrors["user_phone"] = "Phone number is required"
	}
	if len(fieldErrors) > 0 {
		return nil, &ValidationError{Message: requiredFieldsMessage, Fields: fieldErrors}
	}

	if !emailRegex.MatchString(email) {
		return nil, &ValidationError{
			Message: "Please enter a valid email address.",
			Fields:  map[string]string{"user_email": "Invalid email format"},
		}
	}

	return &models.Lead{
		ID:        uuid.New(),
		Name:      name,
		Email:     email,
		Phone:     phone,
		Message:   strings.TrimSpace(req.Message),
		CreatedAt: s.now().UTC(),
	}, nil
}

func (s *LeadService) composeEmail(lead *models.Lead) EmailMessage {
	message := lead.Message
	if message == "" {
		message = "N/A"
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Hey %s team,\n", s.siteName))
	b.WriteString("We have received a new client consultation request:\n")
	b.WriteString(fmt.Sprintf("Name: %s\n", lead.Name))
	b.WriteString(fmt.Sprintf("Email: %s\n", lead.Email))
	b.WriteString(fmt.Sprintf("Phone Number: %s\n", lead.Phone))
	b.WriteString(fmt.Sprintf("Message: %s\n", message))
	b.WriteString("Thank You\n")
	b.WriteString(fmt.Sprintf("%s Website\n", s.siteName))

	return EmailMessage{
		To:       s.notifyTo,
		ReplyTo:  lead.Email,
		FromName: lead.Name,
		Subject:  fmt.Sprintf("New Consultation Request from %s", s.siteName),
		Body:     b.String(),
	}
}

// dedupeKey hashes normalized contact details so no PII lands in the key.
func dedupeKey(lead *models.Lead) string {
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, lead.Phone)
	sum := sha256.Sum256([]byte(strings.ToLower(lead.Email) + "|" + digits))
	return hex.EncodeToString(sum[:])
}
