package calendar

import (
	"time"
)

// A dateRule computes the date (or dates, for multi-day observances like
// the Embertides) of a moveable observance that is not a plain offset
// from Easter. Rules receive the liturgical year and may reach into the
// prior civil year for Advent- and Christmastide-anchored dates.
type dateRule func(year int) []time.Time

func one(d time.Time) []time.Time { return []time.Time{d} }

// dateRules maps the rule tokens used in the registry data to their
// implementations. An unknown token in the data is a registry integrity
// error reported at load time.
var dateRules = map[string]dateRule{
	"gaudete-sunday":                    gaudeteSunday,
	"advent-embertide":                  adventEmbertide,
	"sunday-within-octave-of-christmas": sundayWithinOctaveOfChristmas,
	"holy-name":                         holyName,
	"holy-family":                       holyFamily,
	"plough-monday":                     ploughMonday,
	"st-matthias":                       stMatthias,
	"st-gabriel-of-our-lady-of-sorrows": stGabriel,
	"lady-day":                          ladyDay,
	"lenten-embertide":                  lentenEmbertide,
	"major-rogation":                    majorRogation,
	"minor-rogation":                    minorRogation,
	"whit-embertide":                    whitEmbertide,
	"peters-pence":                      petersPence,
	"michaelmas-embertide":              michaelmasEmbertide,
	"christ-the-king":                   christTheKing,
}

// gaudeteSunday is the third Sunday of Advent.
func gaudeteSunday(year int) []time.Time {
	xmas := date(year-1, time.December, 25)
	return one(xmas.AddDate(0, 0, -(daysSinceMonday(xmas) + 8)))
}

// adventEmbertide is the Wednesday, Friday, and Saturday after Gaudete
// Sunday.
func adventEmbertide(year int) []time.Time {
	gaudete := gaudeteSunday(year)[0]
	return []time.Time{
		gaudete.AddDate(0, 0, 3),
		gaudete.AddDate(0, 0, 5),
		gaudete.AddDate(0, 0, 6),
	}
}

func sundayWithinOctaveOfChristmas(year int) []time.Time {
	xmas := date(year-1, time.December, 25)
	sunday := nextSunday(xmas)
	if sameDate(sunday, xmas) {
		sunday = sunday.AddDate(0, 0, 7)
	}
	return one(sunday)
}

// holyName is the first Sunday of the civil year, unless that Sunday
// falls on January 1, 6, or 7, in which case the feast is kept on
// January 2.
func holyName(year int) []time.Time {
	newYears := date(year, time.January, 1)
	sunday := nextSunday(newYears)
	switch sunday.Day() {
	case 1, 6, 7:
		return one(date(year, time.January, 2))
	}
	return one(sunday)
}

// holyFamily is the first Sunday after Epiphany.
func holyFamily(year int) []time.Time {
	epiphany := date(year, time.January, 6)
	sunday := nextSunday(epiphany)
	if sameDate(sunday, epiphany) {
		sunday = sunday.AddDate(0, 0, 7)
	}
	return one(sunday)
}

// ploughMonday is the first Monday after Epiphany.
func ploughMonday(year int) []time.Time {
	epiphany := date(year, time.January, 6)
	if epiphany.Weekday() == time.Sunday {
		return one(epiphany.AddDate(0, 0, 1))
	}
	return one(holyFamily(year)[0].AddDate(0, 0, 1))
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// stMatthias falls on February 24, moved to February 25 in leap years.
func stMatthias(year int) []time.Time {
	if isLeap(year) {
		return one(date(year, time.February, 25))
	}
	return one(date(year, time.February, 24))
}

// stGabriel falls on February 27, moved to February 28 in leap years.
func stGabriel(year int) []time.Time {
	if isLeap(year) {
		return one(date(year, time.February, 28))
	}
	return one(date(year, time.February, 27))
}

// ladyDay (the Annunciation) is March 25, transferred to the Monday
// after Low Sunday when it falls in Holy Week or Easter week, and to the
// following Monday when it falls on any other Sunday.
func ladyDay(year int) []time.Time {
	d := date(year, time.March, 25)
	palmSunday := FromEaster(year, -7)
	lowSunday := FromEaster(year, 7)
	if !d.Before(palmSunday) && !d.After(lowSunday) {
		return one(lowSunday.AddDate(0, 0, 1))
	}
	if d.Weekday() == time.Sunday {
		return one(d.AddDate(0, 0, 1))
	}
	return one(d)
}

// lentenEmbertide is the Wednesday, Friday, and Saturday after the first
// Sunday of Lent.
func lentenEmbertide(year int) []time.Time {
	ash := FromEaster(year, -46)
	return []time.Time{
		ash.AddDate(0, 0, 7),
		ash.AddDate(0, 0, 9),
		ash.AddDate(0, 0, 10),
	}
}

// majorRogation is April 25 unless that is Easter Sunday, in which case
// it is transferred to the following Tuesday.
func majorRogation(year int) []time.Time {
	d := date(year, time.April, 25)
	if sameDate(d, Easter(year)) {
		return one(d.AddDate(0, 0, 2))
	}
	return one(d)
}

// minorRogation is the Monday, Tuesday, and Wednesday before Ascension
// Thursday.
func minorRogation(year int) []time.Time {
	ascension := FromEaster(year, 39)
	return []time.Time{
		ascension.AddDate(0, 0, -3),
		ascension.AddDate(0, 0, -2),
		ascension.AddDate(0, 0, -1),
	}
}

// whitEmbertide is the Wednesday, Friday, and Saturday after Pentecost.
func whitEmbertide(year int) []time.Time {
	pentecost := FromEaster(year, 49)
	return []time.Time{
		pentecost.AddDate(0, 0, 3),
		pentecost.AddDate(0, 0, 5),
		pentecost.AddDate(0, 0, 6),
	}
}

// petersPence is the Sunday nearest the feast of SS. Peter & Paul
// (June 29).
func petersPence(year int) []time.Time {
	peterPaul := date(year, time.June, 29)
	w := daysSinceMonday(peterPaul)
	return one(peterPaul.AddDate(0, 0, ((2-w)%7+7)%7-3))
}

// michaelmasEmbertide is the Wednesday, Friday, and Saturday after the
// third Sunday of September.
func michaelmasEmbertide(year int) []time.Time {
	thirdSunday := nextSunday(date(year, time.September, 1)).AddDate(0, 0, 14)
	return []time.Time{
		thirdSunday.AddDate(0, 0, 3),
		thirdSunday.AddDate(0, 0, 5),
		thirdSunday.AddDate(0, 0, 6),
	}
}

// christTheKing is the last Sunday of October.
func christTheKing(year int) []time.Time {
	halloween := date(year, time.October, 31)
	return one(halloween.AddDate(0, 0, -int(halloween.Weekday())))
}
