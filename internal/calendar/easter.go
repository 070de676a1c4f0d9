// Package calendar computes the liturgical calendar of the 1962 Roman
// Catholic rubrics: the date of Easter, the moveable feasts derived from
// it, the fixed sanctoral cycle, and the precedence rules that decide
// which observance is celebrated when several fall on the same day.
package calendar

import (
	"fmt"
	"time"
)

// Supported year range. The Gregorian calendar was promulgated in 1582;
// the computus below is valid from the first full Gregorian year onward.
const (
	MinYear = 1583
	MaxYear = 9999
)

// ValidateYear checks that a requested liturgical year is within the
// supported range.
func ValidateYear(year int) error {
	if year < MinYear || year > MaxYear {
		return fmt.Errorf("year %d out of supported range %d-%d", year, MinYear, MaxYear)
	}
	return nil
}

// Easter returns the date of Easter Sunday for the given year, computed
// with the Meeus/Jones/Butcher algorithm for the Gregorian calendar.
//
// The computation is a closed form: no iteration, no table lookups, and
// the same year always yields the same date.
func Easter(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := ((h + l - 7*m + 114) % 31) + 1

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// FromEaster returns the date offset by the given number of days from
// Easter Sunday of the given year. Negative offsets reach back into
// Septuagesima and Lent; offsets past +49 fall in the time after
// Pentecost.
func FromEaster(year, offset int) time.Time {
	return Easter(year).AddDate(0, 0, offset)
}

// date is shorthand for a UTC midnight civil date.
func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// sameDate reports whether two timestamps fall on the same calendar day.
func sameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

// daysSinceMonday returns the weekday as a 0-based offset from Monday,
// the convention the Advent and Christmastide anchor arithmetic uses.
func daysSinceMonday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// nextSunday returns the first Sunday on or after t.
func nextSunday(t time.Time) time.Time {
	return t.AddDate(0, 0, (7-int(t.Weekday()))%7)
}

// YearStart returns the first day of the liturgical year: the First
// Sunday of Advent preceding Christmas of the prior civil year. For the
// liturgical year 2000 this falls in late November or early December
// of 1999.
func YearStart(year int) time.Time {
	xmas := date(year-1, time.December, 25)
	return xmas.AddDate(0, 0, -(daysSinceMonday(xmas) + 22))
}

// YearEnd returns the last day of the liturgical year: the Saturday
// before the First Sunday of Advent of the next liturgical year.
func YearEnd(year int) time.Time {
	nextXmas := date(year, time.December, 25)
	return nextXmas.AddDate(0, 0, -(daysSinceMonday(nextXmas) + 23))
}

// LiturgicalYearOf returns the liturgical year a date belongs to. Dates
// within Advent and the first part of Christmastide belong to the
// following year: December 24, 2000 is part of the liturgical year 2001,
// while January 1, 2000 is part of 2000.
func LiturgicalYearOf(d time.Time) int {
	if !d.After(YearEnd(d.Year())) {
		return d.Year()
	}
	return d.Year() + 1
}
