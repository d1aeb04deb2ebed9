package binder

import (
	"fmt"
	"net/http"
	"reflect"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

var uuidType = reflect.TypeFor[uuid.UUID]()

// Path returns a binder that copies chi URL parameters into fields tagged
// `path:"name"`. Supported field types are string and uuid.UUID.
func Path() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Ptr || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
			return fmt.Errorf("%w: target must be a pointer to struct", ErrFailedToParsePath)
		}
		rv = rv.Elem()
		rt := rv.Type()

		for i := range rv.NumField() {
			field := rv.Field(i)
			name := rt.Field(i).Tag.Get("path")
			if name == "" || name == "-" || !field.CanSet() {
				continue
			}
			raw := chi.URLParam(r, name)
			if raw == "" {
				continue
			}

			switch {
			case field.Type() == uuidType:
				id, err := uuid.Parse(raw)
				if err != nil {
					return fmt.Errorf("%w: %s: %v", ErrFailedToParsePath, name, err)
				}
				field.Set(reflect.ValueOf(id))
			case field.Kind() == reflect.String:
				field.SetString(raw)
			default:
				return fmt.Errorf("%w: %s: unsupported field type %s", ErrFailedToParsePath, name, field.Type())
			}
		}
		return nil
	}
}
