package requestid

import (
	"net/http"
	"regexp"

	"github.com/google/uuid"
)

const (
	Header      = "X-Request-ID"
	maxIDLength = 128
)

var validID = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// Middleware assigns a request ID to the request context and response header.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(Header)
		if !IsValid(id) {
			id = uuid.NewString()
		}
		w.Header().Set(Header, id)
		next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), id)))
	})
}

// IsValid reports whether a client-supplied ID can be reused as is.
func IsValid(id string) bool {
	if id == "" || len(id) > maxIDLength {
		return false
	}
	return validID.MatchString(id)
}
