// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"fmt"
	"time"
)

// DateLayout is the wire format of calendar dates, as stored in the
// persisted JSON files and as rendered for end-users.
const DateLayout = "2006-01-02"

// Date represents a calendar date without a time-of-day component.
// Ages and windows (such as the duplicate-booking advisory window) are
// computed as whole-day differences between two Date instances, not as
// wall-clock elapsed time, so a record dated today has age zero no
// matter at which hour it was created or queried.
// The zero Date is usable and reports IsZero.
type Date struct {
	t time.Time // midnight UTC of the represented day
}

// DateOf converts an arbitrary time instant to the calendar date of
// that instant, dropping the time-of-day and location components.
func DateOf(t time.Time) Date {
	year, month, day := t.Date()
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a date string following the DateLayout format.
func ParseDate(value string) (Date, error) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return Date{}, fmt.Errorf("parsing date %q: %w", value, err)
	}
	return Date{t}, nil
}

// String returns the DateLayout representation of the d date.
func (d Date) String() string {
	return d.t.Format(DateLayout)
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool {
	return d.t.IsZero()
}

// DaysSince returns the whole-day difference between the d and o dates.
// The result is positive when d falls after o, zero when they name the
// same day, and negative when d falls before o.
func (d Date) DaysSince(o Date) int {
	return int(d.t.Sub(o.t) / (24 * time.Hour))
}

// Before reports whether the d date falls before the o date.
func (d Date) Before(o Date) bool {
	return d.t.Before(o.t)
}

// After reports whether the d date falls after the o date.
func (d Date) After(o Date) bool {
	return d.t.After(o.t)
}

// Equal reports whether d and o name the same calendar day.
func (d Date) Equal(o Date) bool {
	return d.t.Equal(o.t)
}

// MarshalJSON serializes d as a JSON string in the DateLayout format.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON deserializes a JSON string in the DateLayout format.
// A JSON null leaves d unchanged, so optional fields may be absent.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		return nil
	}
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("date is not a JSON string: %s", s)
	}
	parsed, err := ParseDate(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
