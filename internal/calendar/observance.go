package calendar

import (
	"strings"
	"time"
)

// Rank is the precedence class of an observance under the 1962 rubrics.
// Lower values take precedence. Sundays carry ClassI or ClassII depending
// on the season; the generic weekday fallback carries RankFeria, which
// yields to every ranked observance.
type Rank int

const (
	ClassI   Rank = 1
	ClassII  Rank = 2
	ClassIII Rank = 3
	ClassIV  Rank = 4

	// RankFeria marks the weekly pseudo-observance appended to every
	// date so that no date is ever without a liturgical candidate.
	RankFeria Rank = 5
)

// Valid reports whether r is a rank the registry data may declare.
// RankFeria is reserved for generated ferias and never appears in data.
func (r Rank) Valid() bool {
	return r >= ClassI && r <= ClassIV
}

// String renders the rank the way the rubrics write it (class I-IV).
func (r Rank) String() string {
	switch r {
	case ClassI, ClassII, ClassIII, ClassIV:
		return "Class " + strings.Repeat("I", int(r))
	case RankFeria:
		return "Feria"
	}
	return "Unranked"
}

// Observance is a single entry of the reference data: a feast, a feria,
// or a non-liturgical (informational) calendar entry. Exactly one of
// the three date specifications is set: a fixed month/day, an offset in
// days from Easter, or a named date rule.
type Observance struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Rank   Rank     `json:"rank,omitempty"`
	Color  string   `json:"color,omitempty"`
	Titles []string `json:"titles,omitempty"`
	URLs   []string `json:"urls,omitempty"`

	// Liturgical is false for purely informational entries (folk
	// feasts, observances without a liturgy). Informational entries
	// never participate in precedence.
	Liturgical bool `json:"liturgical"`

	// Feast distinguishes feasts from ferias for description text.
	Feast bool `json:"feast"`

	// Addition marks observances celebrated in addition to the day's
	// liturgy (Rogations, Embertide days); they slot below same-class
	// feasts and are never displaced markers in export.
	Addition bool `json:"addition,omitempty"`

	// HolyDay marks a Holy Day of Obligation.
	HolyDay bool `json:"holy_day,omitempty"`

	// Date specification.
	Month        time.Month `json:"-"`
	Day          int        `json:"-"`
	EasterOffset *int       `json:"-"`
	Rule         string     `json:"-"`
}

// Fixed reports whether the observance has a fixed month/day.
func (o Observance) Fixed() bool {
	return o.Month != 0
}

// Feria reports whether the observance is the generated weekday
// fallback rather than a registry entry.
func (o Observance) Feria() bool {
	return o.Rank == RankFeria
}

// titleIsRed lists the saintly titles that take red vestments.
var redTitles = []string{"Martyr", "Apostle", "Evangelist"}

func (o Observance) hasRedTitle() bool {
	for _, t := range o.Titles {
		for _, red := range redTitles {
			if t == red {
				return true
			}
		}
	}
	return false
}

// Event is an observance placed on a concrete date within a liturgical
// year, colored and situated in its season. Events are what the
// resolver ranks and what the exporter renders.
type Event struct {
	Observance
	Date   time.Time `json:"date"`
	Season Season    `json:"-"` // carried on the day, not repeated per event
}

// newEvent places an observance on a date and derives its color when the
// data does not fix one: fixed feasts of class I-III outside Lent and
// Passiontide default to white (red for martyrs, apostles, and
// evangelists); everything else takes the season's color.
func newEvent(o Observance, d time.Time, season Season) Event {
	ev := Event{Observance: o, Date: d, Season: season}
	if ev.Color != "" {
		return ev
	}
	lenten := season.Name == SeasonLent || season.Name == SeasonPassiontide
	if ev.Liturgical && ev.Rank != ClassIV && ev.Rank != RankFeria && o.Fixed() &&
		!(ev.Rank != ClassI && lenten) {
		ev.Color = "White"
		if ev.hasRedTitle() {
			ev.Color = "Red"
		}
		return ev
	}
	ev.Color = season.Color
	return ev
}

// feastOfPrefixes are name openings that read as "the Feast of X" when
// spelled out in description text.
var feastOfPrefixes = map[string]bool{
	"St.": true, "SS.": true, "Pope": true, "Our": true, "The": true,
}

// feastOfTheWords are name openings that read as "the Feast of the X".
var feastOfTheWords = map[string]bool{
	"Basilica": true, "Baptism": true, "Church": true, "Vigil": true,
	"Dedication": true, "Nativity": true, "Purification": true,
	"Transfiguration": true, "Exaltation": true, "Circumcision": true,
	"Assumption": true, "Annunciation": true, "Visitation": true,
	"Immaculate": true, "Seven": true, "Most": true, "Conversion": true,
	"Chair": true, "Ascension": true, "Epiphany": true,
}

// FullName returns the event's name with its grammatical article, for
// prose such as "X is outranked by Y". A class IV saint's day reads as a
// commemoration rather than a feast.
func (e Event) FullName(capitalize bool) string {
	name := e.Name
	first, _, _ := strings.Cut(name, " ")

	kind := "the Feast of "
	if e.Rank == ClassIV {
		kind = "the Commemoration of "
	}

	var full string
	switch {
	case name == "Christ the King":
		full = kind + name
	case feastOfPrefixes[first]:
		if strings.HasPrefix(name, "The ") {
			name = "t" + name[1:]
		}
		full = kind + name
	case feastOfTheWords[first]:
		full = kind + "the " + name
	case isOrdinalWord(first) || strings.HasPrefix(name, "Last Sunday") || strings.HasPrefix(name, "Feast"):
		full = "the " + name
	default:
		full = name
	}

	if capitalize {
		full = strings.ToUpper(full[:1]) + full[1:]
	}
	return full
}

// ordinals spells out week numbers the way the rubrics name Sundays.
var ordinals = []string{
	"", "First", "Second", "Third", "Fourth", "Fifth", "Sixth",
	"Seventh", "Eighth", "Ninth", "Tenth", "Eleventh", "Twelfth",
	"Thirteenth", "Fourteenth", "Fifteenth", "Sixteenth", "Seventeenth",
	"Eighteenth", "Nineteenth", "Twentieth", "Twenty-first",
	"Twenty-second", "Twenty-third", "Twenty-fourth", "Twenty-fifth",
	"Twenty-sixth", "Twenty-seventh",
}

func ordinal(n int) string {
	if n > 0 && n < len(ordinals) {
		return ordinals[n]
	}
	return ""
}

func isOrdinalWord(w string) bool {
	for _, o := range ordinals[1:] {
		if w == o {
			return true
		}
	}
	return false
}
