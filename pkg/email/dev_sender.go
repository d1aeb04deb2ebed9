package email

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// DevSender writes each message to dir as an HTML body plus a JSON metadata
// file instead of sending it.
type DevSender struct {
	dir string
	now func() time.Time
}

// NewDevSender creates the directory on first send.
func NewDevSender(dir string) *DevSender {
	return &DevSender{dir: dir, now: time.Now}
}

type emailMetadata struct {
	Timestamp string `json:"timestamp"`
	SendTo    string `json:"send_to"`
	Subject   string `json:"subject"`
	Tag       string `json:"tag,omitempty"`
}

func (d *DevSender) SendEmail(ctx context.Context, params SendEmailParams) error {
	if err := params.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return fmt.Errorf("%w: failed to create directory: %v", ErrFailedToSendEmail, err)
	}

	now := d.now()
	identifier := params.Tag
	if identifier == "" {
		identifier = params.Subject
	}
	baseFilename := fmt.Sprintf("%s_%s", now.Format("2006_01_02_150405.000"), sanitizeFilename(identifier))

	htmlPath := filepath.Join(d.dir, baseFilename+".html")
	if err := os.WriteFile(htmlPath, []byte(params.BodyHTML), 0o644); err != nil {
		return fmt.Errorf("%w: failed to write HTML file: %v", ErrFailedToSendEmail, err)
	}

	metadata := emailMetadata{
		Timestamp: now.Format(time.RFC3339),
		SendTo:    params.SendTo,
		Subject:   params.Subject,
		Tag:       params.Tag,
	}

	jsonData, err := json.MarshalIndent(metadata, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: failed to marshal metadata: %v", ErrFailedToSendEmail, err)
	}

	jsonPath := filepath.Join(d.dir, baseFilename+".json")
	if err := os.WriteFile(jsonPath, jsonData, 0o644); err != nil {
		return fmt.Errorf("%w: failed to write JSON file: %v", ErrFailedToSendEmail, err)
	}

	return nil
}

var sanitizeRegex = regexp.MustCompile(`[^a-zA-Z0-9\-_.]`)

// sanitizeFilename keeps [a-z0-9-_.] and caps the length at 100.
func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = sanitizeRegex.ReplaceAllString(s, "")
	const maxLength = 100
	if len(s) > maxLength {
		s = s[:maxLength]
	}
	if s == "" {
		s = "email"
	}

	return strings.ToLower(s)
}
