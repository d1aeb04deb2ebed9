package handler

import (
	"encoding/json"
	"errors"
	"net/http"
)

// JSONResponse is the standard JSON response structure
type JSONResponse struct {
	Data  any          `json:"data,omitempty"`
	Error *ErrorDetail `json:"error,omitempty"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

type jsonResponse struct {
	status  int
	headers http.Header
	body    any
}

func (j jsonResponse) Render(w http.ResponseWriter, r *http.Request) error {
	for k, v := range j.headers {
		w.Header()[k] = v
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(j.status)
	return json.NewEncoder(w).Encode(j.body)
}

// JSONOption configures JSON response
type JSONOption func(*jsonResponse)

// WithJSONStatus sets custom HTTP status code
func WithJSONStatus(status int) JSONOption {
	return func(r *jsonResponse) { r.status = status }
}

// WithJSONHeader sets a response header.
func WithJSONHeader(key, value string) JSONOption {
	return func(r *jsonResponse) {
		if r.headers == nil {
			r.headers = make(http.Header)
		}
		r.headers.Set(key, value)
	}
}

// JSON wraps v in the {data} envelope with status 200. An error value is
// rendered as JSONError would.
func JSON(v any, opts ...JSONOption) Response {
	if err, ok := v.(error); ok {
		return JSONError(err, opts...)
	}
	return newJSON(http.StatusOK, JSONResponse{Data: v}, opts)
}

// JSONError renders err in the {error} envelope. The status comes from
// HTTPError, otherwise 500 with a generic message.
func JSONError(err error, opts ...JSONOption) Response {
	status, detail := errorToDetail(err)
	return newJSON(status, JSONResponse{Error: detail}, opts)
}

// RawJSON encodes v as is, without the envelope.
func RawJSON(status int, v any, opts ...JSONOption) Response {
	return newJSON(status, v, opts)
}

func newJSON(status int, body any, opts []JSONOption) Response {
	r := &jsonResponse{status: status, body: body}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func errorToDetail(err error) (int, *ErrorDetail) {
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code, &ErrorDetail{Code: httpErr.Key, Message: http.StatusText(httpErr.Code)}
	}

	// internal error text never leaves the process
	return http.StatusInternalServerError, &ErrorDetail{
		Code:    ErrInternalServerError.Key,
		Message: http.StatusText(http.StatusInternalServerError),
	}
}
