/***************************************************************
 *
 * Copyright (C) 2025, Pelican Project, Morgridge Institute for Research
 *
 * Licensed under the Apache License, Version 2.0 (the "License"); you
 * may not use this file except in compliance with the License.  You may
 * obtain a copy of the License at
 *
 *    http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 *
 ***************************************************************/

package transfer

import (
	"strings"
	"time"
)

// Accepted layouts for the start date ("YYYY/MM/DD") and time ("HH:mm").
// Single-digit fields are accepted as well.
const (
	DateLayout = "2006/1/2"
	TimeLayout = "15:04"
)

type (
	// Date is a calendar date without a timezone; Month is 1-based.
	Date struct {
		Year  int
		Month int
		Day   int
	}

	// TimeOfDay is a wall-clock time without a timezone.
	TimeOfDay struct {
		Hour   int
		Minute int
	}
)

// ParseDate parses a start date in the YYYY/MM/DD form.
func ParseDate(raw string) (Date, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Date{}, newValidationError("date", "a start date in the form YYYY/MM/DD is required")
	}
	parsed, err := time.Parse(DateLayout, raw)
	if err != nil {
		return Date{}, newValidationError("date", "%q is not a date in the form YYYY/MM/DD", raw)
	}
	return Date{Year: parsed.Year(), Month: int(parsed.Month()), Day: parsed.Day()}, nil
}

// ParseTimeOfDay parses a start time in the 24-hour HH:mm form.
func ParseTimeOfDay(raw string) (TimeOfDay, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return TimeOfDay{}, newValidationError("time", "a start time in the form HH:mm is required")
	}
	parsed, err := time.Parse(TimeLayout, raw)
	if err != nil {
		return TimeOfDay{}, newValidationError("time", "%q is not a time in the form HH:mm", raw)
	}
	return TimeOfDay{Hour: parsed.Hour(), Minute: parsed.Minute()}, nil
}
