package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// EnumError is returned while decoding a request body when an enumerated
// field carries a value outside its legal set.  The message names the
// field and lists the accepted values.
type EnumError struct {
	Message string
}

func (e *EnumError) Error() string { return e.Message }

// FieldError reports a missing or blank required field.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string { return e.Field + ": " + e.Message }

func mustNotBeBlank(field, v string) error {
	if strings.TrimSpace(v) == "" {
		return &FieldError{Field: field, Message: "must not be blank"}
	}
	return nil
}

func mustNotBeNull(field string, present bool) error {
	if !present {
		return &FieldError{Field: field, Message: "must not be null"}
	}
	return nil
}

func enumMessage[T ~string](what string, allowed []T) string {
	vals := make([]string, len(allowed))
	for i, v := range allowed {
		vals[i] = string(v)
	}
	return fmt.Sprintf("Invalid %s. Must be one of: %s.", what, strings.Join(vals, ", "))
}

func validEnum[T ~string](v T, allowed []T) bool {
	for _, a := range allowed {
		if a == v {
			return true
		}
	}
	return false
}

// unmarshalEnum decodes a JSON string into dst and rejects anything not in
// allowed.  A JSON null leaves dst untouched.  Bare JSON numbers are
// accepted as their decimal text so that shoe sizes may be sent as 9 or "9".
func unmarshalEnum[T ~string](b []byte, dst *T, allowed []T, what string) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var raw string
	if len(b) > 0 && b[0] != '"' {
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return &EnumError{Message: enumMessage(what, allowed)}
		}
		raw = n.String()
	} else if err := json.Unmarshal(b, &raw); err != nil {
		return &EnumError{Message: enumMessage(what, allowed)}
	}
	v := T(strings.TrimSpace(raw))
	if !validEnum(v, allowed) {
		return &EnumError{Message: enumMessage(what, allowed)}
	}
	*dst = v
	return nil
}
