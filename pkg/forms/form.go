package forms

import (
	"encoding/json"
	"regexp"
	"time"

	"github.com/google/uuid"
)

// Tenant is an account that owns forms.
type Tenant struct {
	ID        uuid.UUID `json:"id"`
	Slug      string    `json:"slug"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Form is a form definition. Schema is the builder's field list, stored as-is.
type Form struct {
	ID          uuid.UUID       `json:"id"`
	TenantID    uuid.UUID       `json:"tenant_id"`
	Slug        string          `json:"slug"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Schema      json.RawMessage `json:"schema"`
	Published   bool            `json:"published"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

var slugRegex = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// ValidSlug reports whether s is a lower-case, dash-separated slug of at most 64 characters.
func ValidSlug(s string) bool {
	return len(s) <= 64 && slugRegex.MatchString(s)
}
