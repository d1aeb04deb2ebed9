package logger

import (
	"log/slog"
	"strings"
	"time"
)

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Event records the event name under the key "event".
func Event(name string) slog.Attr {
	return slog.String("event", name)
}

// RequestID records the request identifier under the key "request_id".
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

// UserID records the user identifier under the key "user_id".
func UserID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("user_id", id)
}

// Email records a masked email address under the key "email": "jo***@example.com".
func Email(addr string) slog.Attr {
	if addr == "" {
		return slog.Attr{}
	}
	return slog.String("email", MaskEmail(addr))
}

// CustomerID records a billing provider customer id under the key "customer_id".
func CustomerID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("customer_id", id)
}

// Provider records the billing provider name under the key "provider".
func Provider(name string) slog.Attr {
	return slog.String("provider", name)
}

// Step records a named step of a multi-step flow under the key "step".
func Step(name string) slog.Attr {
	return slog.String("step", name)
}

// Duration records a duration in milliseconds under the key "duration_ms".
func Duration(d time.Duration) slog.Attr {
	return slog.Int64("duration_ms", d.Milliseconds())
}

// MaskEmail keeps the first two characters of the local part and the domain.
func MaskEmail(addr string) string {
	at := strings.LastIndexByte(addr, '@')
	if at <= 0 {
		return "***"
	}
	local, domain := addr[:at], addr[at:]
	if len(local) > 2 {
		local = local[:2]
	}
	return local + "***" + domain
}
