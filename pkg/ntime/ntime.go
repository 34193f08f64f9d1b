package ntime

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

const dayLayout = "2006-01-02"

// Date represents a nullable ISO-8601 date kept verbatim as text.
// It can be used a scan destination and can be marshalled to JSON.
type Date struct {
	value   string
	isValid bool
}

// From wraps an optional string; nil and empty strings are null dates.
func From(s *string) Date {
	if s == nil || *s == "" {
		return Date{}
	}
	return Date{*s, true}
}

func Today() Date {
	return Date{time.Now().UTC().Format(dayLayout), true}
}

func (d Date) Valid() bool {
	return d.isValid
}

func (d Date) String() string {
	return d.value
}

// Ptr returns nil for null dates.
func (d Date) Ptr() *string {
	if !d.isValid {
		return nil
	}
	var value = d.value
	return &value
}

// UnmarshalJSON accepts either null or a string.
func (d *Date) UnmarshalJSON(b []byte) error {
	var value *string
	if err := json.Unmarshal(b, &value); err != nil {
		return err
	}
	*d = From(value)
	return nil
}

// MarshalJSON implements the Marshaller interface and operates on values rather than pointers.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.isValid {
		return json.Marshal(d.value)
	}
	return []byte("null"), nil
}

// Scan implements the Scanner interface.
func (d *Date) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*d = Date{}
	case string:
		*d = Date{v, true}
	case []byte:
		*d = Date{string(v), true}
	case time.Time:
		// columns declared as DATE come back parsed by the driver
		*d = Date{v.UTC().Format(dayLayout), true}
	default:
		return fmt.Errorf("can't scan %T into a date", value)
	}
	return nil
}

// Value implements the driver Valuer interface.
func (d Date) Value() (driver.Value, error) {
	if d.isValid {
		return driver.Value(d.value), nil
	}
	return nil, nil
}
