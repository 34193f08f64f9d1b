// Package sanitise validates and normalises every value before it reaches storage.
// All create and update paths share these rules, so no field is ever passed through raw.
package sanitise

import (
	"errors"
	"math"
	"net/url"
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

const (
	MinRate = 0
	MaxRate = 10
)

// ASCII letters, digits and whitespace only; punctuation, URLs and emojis are rejected
var textPattern = regexp.MustCompile(`^[A-Za-z0-9\s]*$`)

// the characters matched by \s; trimming wider Unicode spaces would let them past textPattern
const asciiSpace = " \t\n\f\r"

var textRule = validation.Match(textPattern).Error("must contain only letters, digits and spaces")

// any scheme is accepted as long as a host follows it
var absoluteURL = validation.By(func(value interface{}) error {
	s, _ := value.(string)
	parsed, err := url.Parse(s)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return errors.New("must be an absolute URL with scheme and host")
	}
	return nil
})

// dates coming from the desktop picker lack a time component
var dateLayouts = []string{"2006-01-02", time.RFC3339}

var isoDate = validation.By(func(value interface{}) error {
	s, _ := value.(string)
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return nil
		}
	}
	return errors.New("must be an ISO-8601 date (YYYY-MM-DD or RFC 3339)")
})

var finite = validation.By(func(value interface{}) error {
	f, _ := value.(float64)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return errors.New("must be a finite number")
	}
	return nil
})

// check runs the rules and keys the resulting error by field, i.e. "rate: must be no greater than 10."
func check(field string, value interface{}, rules ...validation.Rule) error {
	if err := validation.Validate(value, rules...); err != nil {
		return validation.Errors{field: err}
	}
	return nil
}

func trim(s string) string {
	return strings.Trim(s, asciiSpace)
}

// Text trims surrounding whitespace and accepts possibly empty alphanumeric text.
func Text(field, s string) (string, error) {
	var trimmed = trim(s)
	return trimmed, check(field, trimmed, textRule)
}

// RequiredText is Text that refuses empty (or whitespace only) values.
func RequiredText(field, s string) (string, error) {
	var trimmed = trim(s)
	return trimmed, check(field, trimmed, validation.Required, textRule)
}

// OptionalText returns nil for absent or blank input, so it can be stored as NULL.
func OptionalText(field string, s *string) (*string, error) {
	if s == nil {
		return nil, nil
	}
	trimmed, err := Text(field, *s)
	if err != nil || trimmed == "" {
		return nil, err
	}
	return &trimmed, nil
}

func URL(field, s string) (string, error) {
	var trimmed = trim(s)
	return trimmed, check(field, trimmed, validation.Required, is.RequestURL, absoluteURL)
}

// Rate fails rather than clamping values outside [MinRate, MaxRate].
func Rate(n int) (int, error) {
	return n, check("rate", n, validation.Min(MinRate), validation.Max(MaxRate))
}

// Id requires a positive identifier; zero is never silently accepted.
func Id(field string, n int64) (int64, error) {
	return n, check(field, n, validation.Required.Error("must be a positive integer"), validation.Min(1).Error("must be a positive integer"))
}

func Date(field, s string) (string, error) {
	var trimmed = trim(s)
	return trimmed, check(field, trimmed, validation.Required, isoDate)
}

func OptionalDate(field string, s *string) (*string, error) {
	if s == nil || trim(*s) == "" {
		return nil, nil
	}
	date, err := Date(field, *s)
	if err != nil {
		return nil, err
	}
	return &date, nil
}

func Price(p float64) (float64, error) {
	return p, check("price", p, finite, validation.Min(0.0))
}
