// Package validate is the boundary between untrusted record data and the
// typed domain model. Every record crossing a persistence boundary passes
// through one of the entity validators, which return a canonical copy of the
// record or an error listing every violated field — not just the first.
// Validators are pure: no I/O, and the input value is never mutated.
package validate

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"casetrail/internal/domain"
)

var (
	datePattern     = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	dateTimePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}Z$`)
)

// FieldError is one violation attributed to a single field (or array index).
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) String() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Errors aggregates every field violation found in one record.
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, len(e))
	for i, fe := range e {
		parts[i] = fe.String()
	}
	return "invalid record: " + strings.Join(parts, "; ")
}

// checker accumulates field errors while producing normalized field values.
type checker struct {
	errs Errors
}

func (c *checker) addf(field, format string, args ...any) {
	c.errs = append(c.errs, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
}

func (c *checker) err() error {
	if len(c.errs) == 0 {
		return nil
	}
	return c.errs
}

// identifier trims v and requires it to be non-empty.
func (c *checker) identifier(field, v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		c.addf(field, "identifier must be a non-empty string")
	}
	return v
}

// required trims v and requires a non-empty result.
func (c *checker) required(field, v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		c.addf(field, "must not be empty")
	}
	return v
}

// trimmed trims v without any further constraint.
func (c *checker) trimmed(v string) string {
	return strings.TrimSpace(v)
}

// enum requires v to match one of the allowed literals exactly
// (case-sensitive, no trimming applied to the comparison result).
func (c *checker) enum(field, v string, allowed map[string]bool) {
	if !allowed[v] {
		c.addf(field, "%q is not one of the allowed values", v)
	}
}

// date requires a zero-padded YYYY-MM-DD string naming a real calendar date.
func (c *checker) date(field, v string) {
	if !datePattern.MatchString(v) {
		c.addf(field, "%q does not match YYYY-MM-DD", v)
		return
	}
	if _, err := time.Parse(domain.DateLayout, v); err != nil {
		c.addf(field, "%q is not a valid calendar date", v)
	}
}

// dateTime requires a YYYY-MM-DDTHH:MM:SSZ string with the literal UTC marker.
func (c *checker) dateTime(field, v string) {
	if !dateTimePattern.MatchString(v) {
		c.addf(field, "%q does not match YYYY-MM-DDTHH:MM:SSZ", v)
		return
	}
	if _, err := time.Parse(domain.DateTimeLayout, v); err != nil {
		c.addf(field, "%q is not a valid UTC timestamp", v)
	}
}

// nullableDate accepts nil or a valid date string; the returned pointer is a
// fresh copy so the input record is never aliased.
func (c *checker) nullableDate(field string, v *string) *string {
	if v == nil {
		return nil
	}
	d := strings.TrimSpace(*v)
	c.date(field, d)
	return &d
}

// tags validates a tag list element-wise, attributing errors per index.
func (c *checker) tags(field string, tags []string) []string {
	if tags == nil {
		return []string{}
	}
	out := make([]string, len(tags))
	for i, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			c.addf(fmt.Sprintf("%s[%d]", field, i), "must not be empty")
		}
		out[i] = t
	}
	return out
}
