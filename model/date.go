/*
Copyright 2025 GSTRecon Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package model

import "time"

// DisplayDateLayout is the day-first layout used everywhere a date is shown
// or keyed: DD-MM-YYYY.
const DisplayDateLayout = "02-01-2006"

// Date is a calendar date with an explicit "unparseable" sentinel. An invalid
// Date never equals another Date, valid or not.
type Date struct {
	Time  time.Time `json:"time"`
	Valid bool      `json:"valid"`
}

// NewDate returns a valid Date truncated to its calendar day.
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC), Valid: true}
}

// Equal reports whether two dates are the same calendar day. A sentinel date
// compares unequal to everything, including another sentinel.
func (d Date) Equal(other Date) bool {
	if !d.Valid || !other.Valid {
		return false
	}
	return d.Time.Equal(other.Time)
}

// String renders the date as DD-MM-YYYY, or empty for the sentinel.
func (d Date) String() string {
	if !d.Valid {
		return ""
	}
	return d.Time.Format(DisplayDateLayout)
}

// Compact renders the date as DDMMYYYY for key derivation, or empty for the
// sentinel (sentinel key components are handled by the key deriver).
func (d Date) Compact() string {
	if !d.Valid {
		return ""
	}
	return d.Time.Format("02012006")
}
