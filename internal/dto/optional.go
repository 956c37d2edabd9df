package dto

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

// ErrInvalidPK is returned when a primary key is neither a JSON number nor a
// numeric string.
var ErrInvalidPK = errors.New("invalid primary key")

// Optional is a request field that distinguishes absent, null and a value.
// A value of the wrong JSON type sets Invalid and keeps the raw input, so the
// field can be reported on its own instead of failing the whole body.
type Optional[T any] struct {
	Value   T
	Set     bool
	Null    bool
	Invalid bool
	Raw     json.RawMessage
}

// Some returns a present, non-null Optional.
func Some[T any](value T) Optional[T] {
	return Optional[T]{Value: value, Set: true}
}

// Null returns a present Optional holding JSON null.
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true, Null: true}
}

// UnmarshalJSON is only invoked for keys present in the payload. The decoder
// has already checked the syntax, so any error here is about the value.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		o.Null = true
		return nil
	}

	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		o.Invalid = true
		o.Raw = append(json.RawMessage(nil), data...)
		return nil
	}
	o.Value = value
	return nil
}

// Present reports whether the field carries a usable non-null value.
func (o Optional[T]) Present() bool {
	return o.Set && !o.Null && !o.Invalid
}

// RawText renders the raw input of an invalid field, unquoting strings.
func (o Optional[T]) RawText() string {
	var text string
	if err := json.Unmarshal(o.Raw, &text); err == nil {
		return text
	}
	return string(o.Raw)
}

// RawKind names the JSON type of the raw input the way form validation
// messages do: str, int, float, bool, list or dict.
func (o Optional[T]) RawKind() string {
	if len(o.Raw) == 0 {
		return ""
	}
	switch o.Raw[0] {
	case '"':
		return "str"
	case 't', 'f':
		return "bool"
	case '[':
		return "list"
	case '{':
		return "dict"
	}
	if bytes.ContainsAny(o.Raw, ".eE") {
		return "float"
	}
	return "int"
}

// PK is a primary key written either as a JSON number or as a numeric
// string, the way form selects submit it.
type PK uint64

// UnmarshalJSON accepts 3 and "3".
func (p *PK) UnmarshalJSON(data []byte) error {
	text := string(bytes.TrimSpace(data))
	var quoted string
	if err := json.Unmarshal(data, &quoted); err == nil {
		text = strings.TrimSpace(quoted)
	}

	id, err := strconv.ParseUint(text, 10, 64)
	if err != nil {
		return ErrInvalidPK
	}
	*p = PK(id)
	return nil
}
