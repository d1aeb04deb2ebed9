package binder

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"reflect"
	"strings"
)

// DefaultMaxJSONSize is the default maximum size for JSON request bodies (1MB).
const DefaultMaxJSONSize = 1 << 20

// JSON returns a binder that decodes the request body into v. A missing
// Content-Type is accepted; any other media type than application/json is
// rejected. Unknown fields and trailing data are errors.
func JSON() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		if ct := r.Header.Get("Content-Type"); ct != "" {
			mediaType, _, err := mime.ParseMediaType(ct)
			if err != nil || mediaType != "application/json" {
				return fmt.Errorf("%w: got %q, expected application/json", ErrUnsupportedMediaType, ct)
			}
		}
		if r.Body == nil {
			return fmt.Errorf("%w: empty body", ErrFailedToParseJSON)
		}

		body, err := io.ReadAll(io.LimitReader(r.Body, DefaultMaxJSONSize+1))
		if err != nil {
			return fmt.Errorf("%w: failed to read request body: %v", ErrFailedToParseJSON, err)
		}
		if len(body) > DefaultMaxJSONSize {
			return fmt.Errorf("%w: max %d bytes", ErrBodyTooLarge, DefaultMaxJSONSize)
		}

		decoder := json.NewDecoder(strings.NewReader(string(body)))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(v); err != nil {
			if errors.Is(err, io.EOF) {
				return fmt.Errorf("%w: empty body", ErrFailedToParseJSON)
			}
			return fmt.Errorf("%w: %v", ErrFailedToParseJSON, err)
		}

		var extra json.RawMessage
		if err := decoder.Decode(&extra); !errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: unexpected data after JSON object", ErrFailedToParseJSON)
		}

		trimStrings(reflect.ValueOf(v))
		return nil
	}
}

func trimStrings(rv reflect.Value) {
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface:
		if !rv.IsNil() {
			trimStrings(rv.Elem())
		}
	case reflect.String:
		if rv.CanSet() {
			rv.SetString(strings.TrimSpace(rv.String()))
		}
	case reflect.Struct:
		for i := range rv.NumField() {
			if f := rv.Field(i); f.CanSet() {
				trimStrings(f)
			}
		}
	case reflect.Slice, reflect.Array:
		for i := range rv.Len() {
			trimStrings(rv.Index(i))
		}
	}
}
