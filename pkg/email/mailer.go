package email

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// EmailSender represents an interface for sending emails.
type EmailSender interface {
	SendEmail(ctx context.Context, params SendEmailParams) error
}

// SendEmailParams represents the parameters for sending an email.
type SendEmailParams struct {
	SendTo   string `json:"to"`
	Subject  string `json:"subject"`
	BodyHTML string `json:"html"`
	Tag      string `json:"tag,omitempty"`
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidAddress reports whether addr looks like a deliverable address.
func ValidAddress(addr string) bool {
	return len(addr) <= 254 && emailRegex.MatchString(addr)
}

// Validate checks the required fields. Errors wrap ErrInvalidParams.
func (p SendEmailParams) Validate() error {
	switch {
	case strings.TrimSpace(p.SendTo) == "":
		return fmt.Errorf("%w: SendTo is required", ErrInvalidParams)
	case !ValidAddress(strings.TrimSpace(p.SendTo)):
		return fmt.Errorf("%w: SendTo must be a valid email address", ErrInvalidParams)
	case strings.TrimSpace(p.Subject) == "":
		return fmt.Errorf("%w: Subject is required", ErrInvalidParams)
	case strings.TrimSpace(p.BodyHTML) == "":
		return fmt.Errorf("%w: BodyHTML is required", ErrInvalidParams)
	}
	return nil
}
