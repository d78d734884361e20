package config

import (
	"fmt"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Kind names the type of a decoded TOML value.
type Kind string

const (
	KindTable    Kind = "table"
	KindString   Kind = "string"
	KindInteger  Kind = "integer"
	KindFloat    Kind = "float"
	KindBoolean  Kind = "boolean"
	KindDatetime Kind = "datetime"
	KindArray    Kind = "array"
	KindUnknown  Kind = "unknown"
)

// Reason says why a typed lookup failed.
type Reason string

const (
	ReasonMissing  Reason = "missing"
	ReasonMismatch Reason = "mismatch"
)

// CheckError is returned by the typed Table accessors.
type CheckError struct {
	Key    string
	Reason Reason
	Want   Kind
	Got    Kind
}

func (e *CheckError) Error() string {
	if e.Reason == ReasonMissing {
		return fmt.Sprintf("%s is missing", e.Key)
	}
	return fmt.Sprintf("%s must be a %s, not a %s", e.Key, e.Want, e.Got)
}

// Table is a decoded TOML table.
type Table map[string]interface{}

// AsTable returns v as a Table if it is one.
func AsTable(v interface{}) (Table, bool) {
	m, ok := v.(map[string]interface{})
	return Table(m), ok
}

// Table returns the sub-table at key.
func (t Table) Table(key string) (Table, error) {
	v, ok := t[key]
	if !ok {
		return nil, &CheckError{Key: key, Reason: ReasonMissing, Want: KindTable}
	}
	sub, ok := AsTable(v)
	if !ok {
		return nil, &CheckError{Key: key, Reason: ReasonMismatch, Want: KindTable, Got: KindOf(v)}
	}
	return sub, nil
}

// String returns the string at key.
func (t Table) String(key string) (string, error) {
	v, ok := t[key]
	if !ok {
		return "", &CheckError{Key: key, Reason: ReasonMissing, Want: KindString}
	}
	s, ok := v.(string)
	if !ok {
		return "", &CheckError{Key: key, Reason: ReasonMismatch, Want: KindString, Got: KindOf(v)}
	}
	return s, nil
}

// KindOf classifies a value produced by decoding TOML into an interface{}.
func KindOf(v interface{}) Kind {
	switch v.(type) {
	case map[string]interface{}:
		return KindTable
	case string:
		return KindString
	case int64:
		return KindInteger
	case float64:
		return KindFloat
	case bool:
		return KindBoolean
	case time.Time, toml.LocalDate, toml.LocalTime, toml.LocalDateTime:
		return KindDatetime
	case []interface{}:
		return KindArray
	default:
		return KindUnknown
	}
}
