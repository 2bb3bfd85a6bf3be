package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// Date is a calendar day in UTC. The zero value means "unset".
type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its UTC calendar day.
func DateOf(t time.Time) Date {
	t = t.UTC()
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate accepts YYYY-MM-DD or an RFC3339 timestamp.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return DateOf(t), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return DateOf(t), nil
	}
	return Date{}, fmt.Errorf("invalid date %q, expected %s", s, DateLayout)
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// OnOrBefore reports d <= other at day granularity.
func (d Date) OnOrBefore(other Date) bool {
	return !d.After(other.Time)
}

// DateRange is an inclusive span of calendar days.
type DateRange struct {
	Start Date `json:"start"`
	End   Date `json:"end"`
}

func (r DateRange) Valid() bool {
	return !r.Start.IsZero() && !r.End.IsZero() && r.Start.OnOrBefore(r.End)
}

// Includes reports whether day falls inside the range, ends included.
func (r DateRange) Includes(day Date) bool {
	return r.Start.OnOrBefore(day) && day.OnOrBefore(r.End)
}

// Contains reports whether other lies entirely inside r.
func (r DateRange) Contains(other DateRange) bool {
	return r.Start.OnOrBefore(other.Start) && other.End.OnOrBefore(r.End)
}

// Overlaps uses inclusive day semantics: [s1,e1] and [s2,e2] overlap
// when s1 <= e2 and s2 <= e1, so ranges sharing a single day conflict.
func (r DateRange) Overlaps(other DateRange) bool {
	return r.Start.OnOrBefore(other.End) && other.Start.OnOrBefore(r.End)
}

// Nights is the number of days between start and end.
func (r DateRange) Nights() int {
	return int(r.End.Sub(r.Start.Time).Hours() / 24)
}

func (r DateRange) String() string {
	return fmt.Sprintf("%s..%s", r.Start, r.End)
}
