package defillama

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

const rootField = "(root)"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

var errNullValue = errors.New("null where a value is required")

func isNull(b []byte) bool { return string(bytes.TrimSpace(b)) == "null" }

// decodeInto unmarshals body into out and validates the result.
func decodeInto(body []byte, out any) error {
	if isNull(body) {
		return &ValidationError{Field: rootField, Err: errNullValue}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return decodeError(err)
	}
	return validateValue(reflect.ValueOf(out), "")
}

// decodeEnvelope accepts a JSON array, or an object carrying the array under key.
func decodeEnvelope(body []byte, key string, out any) error {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' || key == "" {
		return decodeInto(trimmed, out)
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return decodeError(err)
	}
	inner, ok := envelope[key]
	if !ok {
		return &ValidationError{Field: key, Err: errors.New("required field missing")}
	}
	if isNull(inner) {
		return &ValidationError{Field: key, Err: errNullValue}
	}
	if err := json.Unmarshal(inner, out); err != nil {
		verr := decodeError(err).(*ValidationError)
		verr.Field = joinField(key, verr.Field)
		return verr
	}
	if err := validateValue(reflect.ValueOf(out), ""); err != nil {
		verr := err.(*ValidationError)
		verr.Field = joinField(key, verr.Field)
		return verr
	}
	return nil
}

func decodeError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			field = rootField
		}
		return &ValidationError{
			Field: field,
			Err:   fmt.Errorf("cannot use JSON %s as %s", typeErr.Value, typeErr.Type),
		}
	}
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return &ValidationError{
			Field: rootField,
			Err:   fmt.Errorf("malformed JSON at offset %d: %w", syntaxErr.Offset, err),
		}
	}
	return &ValidationError{Field: rootField, Err: err}
}

// validateValue runs struct validation over v, descending into slices so
// element errors are reported with their index.
func validateValue(v reflect.Value, prefix string) error {
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Struct:
		return structError(validate.Struct(v.Interface()), prefix)
	case reflect.Slice, reflect.Array:
		for i := 0; i < v.Len(); i++ {
			if err := validateValue(v.Index(i), fmt.Sprintf("%s[%d]", prefix, i)); err != nil {
				return err
			}
		}
	}
	return nil
}

func structError(err error, prefix string) error {
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &ValidationError{Field: joinField(prefix, rootField), Err: err}
	}

	first := fieldErrs[0]
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q", fieldPath(prefix, fe), fe.Tag()))
	}
	return &ValidationError{
		Field: fieldPath(prefix, first),
		Err:   errors.New(strings.Join(msgs, "; ")),
	}
}

// fieldPath drops the Go type name validator puts at the head of the namespace.
func fieldPath(prefix string, fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		ns = ns[i+1:]
	}
	return joinField(prefix, ns)
}

func joinField(prefix, field string) string {
	switch {
	case prefix == "":
		return field
	case field == "" || field == rootField:
		return prefix
	case strings.HasPrefix(field, "["):
		return prefix + field
	default:
		return prefix + "." + field
	}
}
