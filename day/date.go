/*
	Tweetdiary
	Copyright (c) 2024 Tweetdiary authors

	This program is free software: you can redistribute it and/or modify
	it under the terms of the GNU Affero General Public License as published
	by the Free Software Foundation, either version 3 of the License, or
	(at your option) any later version.

	This program is distributed in the hope that it will be useful,
	but WITHOUT ANY WARRANTY; without even the implied warranty of
	MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
	GNU Affero General Public License for more details.

	You should have received a copy of the GNU Affero General Public License
	along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/

package day

import "time"

// EasternTime shifts t into the approximate US Eastern offset: UTC-4
// while daylight saving is in effect, UTC-5 otherwise. The returned
// time is a UTC value whose wall-clock fields read as Eastern.
//
// Daylight saving is detected by sampling the host zone's offset at
// January 1 and July 1 of t's year and taking the smaller (more wintry)
// of the two as the standard offset; if t's own offset in the host zone
// differs from that, daylight saving is considered active. This assumes
// the host zone switches on roughly the same dates as US Eastern. It is
// a deliberate approximation, not a timezone-rule evaluation.
func EasternTime(t time.Time) time.Time {
	local := t.Local()
	year := local.Year()

	_, janOffset := time.Date(year, time.January, 1, 0, 0, 0, 0, time.Local).Zone()
	_, julOffset := time.Date(year, time.July, 1, 0, 0, 0, 0, time.Local).Zone()
	standardOffset := janOffset
	if julOffset < standardOffset {
		standardOffset = julOffset
	}

	offset := -5 * time.Hour
	if _, cur := local.Zone(); cur != standardOffset {
		offset = -4 * time.Hour
	}

	return t.UTC().Add(offset)
}

// EasternDate returns the calendar date (YYYY-MM-DD) of t as observed
// in the approximate Eastern timezone. See EasternTime for the caveats.
func EasternDate(t time.Time) string {
	return EasternTime(t).Format(DateFormat)
}

// DateFormat is the canonical calendar-date layout used throughout:
// zero-padded ISO dates, so that lexicographic order is date order.
const DateFormat = "2006-01-02"
