package handler

import "net/http"

// HTTPError represents an HTTP error with status code and a stable key
// clients can switch on.
type HTTPError struct {
	Code int    // HTTP status code
	Key  string // e.g. "not_found", "unauthorized"
}

func (e HTTPError) Error() string {
	return e.Key
}

// WithKey returns a copy of e with a more specific key.
func (e HTTPError) WithKey(key string) HTTPError {
	return HTTPError{Code: e.Code, Key: key}
}

// 4xx Client Errors
var (
	ErrBadRequest            = HTTPError{Code: http.StatusBadRequest, Key: "bad_request"}
	ErrUnauthorized          = HTTPError{Code: http.StatusUnauthorized, Key: "unauthorized"}
	ErrPaymentRequired       = HTTPError{Code: http.StatusPaymentRequired, Key: "payment_required"}
	ErrForbidden             = HTTPError{Code: http.StatusForbidden, Key: "forbidden"}
	ErrNotFound              = HTTPError{Code: http.StatusNotFound, Key: "not_found"}
	ErrMethodNotAllowed      = HTTPError{Code: http.StatusMethodNotAllowed, Key: "method_not_allowed"}
	ErrConflict              = HTTPError{Code: http.StatusConflict, Key: "conflict"}
	ErrRequestEntityTooLarge = HTTPError{Code: http.StatusRequestEntityTooLarge, Key: "request_entity_too_large"}
	ErrUnsupportedMediaType  = HTTPError{Code: http.StatusUnsupportedMediaType, Key: "unsupported_media_type"}
	ErrUnprocessableEntity   = HTTPError{Code: http.StatusUnprocessableEntity, Key: "unprocessable_entity"}
	ErrTooManyRequests       = HTTPError{Code: http.StatusTooManyRequests, Key: "too_many_requests"}
)

// 5xx Server Errors
var (
	ErrInternalServerError = HTTPError{Code: http.StatusInternalServerError, Key: "internal_server_error"}
	ErrNotImplemented      = HTTPError{Code: http.StatusNotImplemented, Key: "not_implemented"}
	ErrBadGateway          = HTTPError{Code: http.StatusBadGateway, Key: "bad_gateway"}
	ErrServiceUnavailable  = HTTPError{Code: http.StatusServiceUnavailable, Key: "service_unavailable"}
	ErrGatewayTimeout      = HTTPError{Code: http.StatusGatewayTimeout, Key: "gateway_timeout"}
)
