package calendar

import (
	"fmt"
	"time"
)

// candidatesForYear enumerates every candidate observance for every date
// of a liturgical year: fixed feasts by month and day, moveable feasts
// by their Easter offsets and date rules, the Sunday cycle of each
// season, and the weekday feria fallback. The passes run in the same
// order precedence ties are broken in, so the per-date candidate lists
// are deterministic for a given Registry. The returned season map
// covers the same dates.
func candidatesForYear(reg *Registry, year int) (map[time.Time][]Event, map[time.Time]Season, error) {
	start, end := YearStart(year), YearEnd(year)

	seasons := make(map[time.Time]Season)
	days := make(map[time.Time][]Event)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		key, err := seasonKeyOf(d)
		if err != nil {
			return nil, nil, err
		}
		season, err := reg.SeasonByName(key)
		if err != nil {
			return nil, nil, err
		}
		seasons[d] = season
		days[d] = nil
	}

	add := func(o Observance, d time.Time) error {
		if _, ok := days[d]; !ok {
			return fmt.Errorf("observance %q resolved to %s, outside liturgical year %d",
				o.Name, d.Format("2006-01-02"), year)
		}
		days[d] = append(days[d], newEvent(o, d, seasons[d]))
		return nil
	}

	// First-class fixed feasts come first so that they win declaration-
	// order ties against everything placed later.
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		for _, o := range reg.FixedOn(d.Month(), d.Day()) {
			if o.Liturgical && o.Rank == ClassI {
				if err := add(o, d); err != nil {
					return nil, nil, err
				}
			}
		}
	}

	// Moveable feasts, in registry declaration order.
	for _, o := range reg.Moveable() {
		for _, d := range reg.DatesOf(o, year) {
			if err := add(o, d); err != nil {
				return nil, nil, err
			}
		}
	}

	// The Sunday cycle of each season.
	if err := addSundays(reg, year, start, end, add); err != nil {
		return nil, nil, err
	}

	// Remaining fixed observances: classes II-IV and informational
	// entries.
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		for _, o := range reg.FixedOn(d.Month(), d.Day()) {
			if !o.Liturgical || o.Rank != ClassI {
				if err := add(o, d); err != nil {
					return nil, nil, err
				}
			}
		}
	}

	// The weekday fallback: a date with no liturgical candidate of its
	// own gets its feria, so no date is ever without one. Sundays are
	// fully covered by the cycle above.
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Sunday || hasLiturgical(days[d]) {
			continue
		}
		days[d] = append(days[d], newEvent(feriaObservance(d), d, seasons[d]))
	}

	return days, seasons, nil
}

// sundayObservance builds the rank-bearing pseudo-observance for a
// Sunday of the season.
func sundayObservance(name string, rank Rank) Observance {
	return Observance{
		ID:         slug(name),
		Name:       name,
		Rank:       rank,
		Liturgical: true,
		Feast:      true,
	}
}

// addSundays walks the Sunday cycle: Advent, the time after Epiphany,
// Lent, late Eastertide, and the time after Pentecost. Sundays not
// listed here are named moveable feasts in the registry (Gaudete,
// Laetare, Passion and Palm Sunday, the Eastertide Sundays, Trinity).
func addSundays(reg *Registry, year int, start, end time.Time, add func(Observance, time.Time) error) error {
	// Advent. The third Sunday is Gaudete Sunday, a registry entry.
	for i := 1; i <= 4; i++ {
		if i == 3 {
			continue
		}
		d := start.AddDate(0, 0, 7*(i-1))
		if err := add(sundayObservance(ordinal(i)+" Sunday of Advent", ClassI), d); err != nil {
			return err
		}
	}

	// Time after Epiphany. The first Sunday is the Holy Family.
	septuagesima := FromEaster(year, -63)
	i := 2
	for d := holyFamily(year)[0].AddDate(0, 0, 7); d.Before(septuagesima); d = d.AddDate(0, 0, 7) {
		if err := add(sundayObservance(ordinal(i)+" Sunday after Epiphany", ClassII), d); err != nil {
			return err
		}
		i++
	}

	// Lent. The fourth Sunday is Laetare, the fifth Passion Sunday.
	quinquagesima := FromEaster(year, -49)
	for i := 1; i <= 3; i++ {
		d := quinquagesima.AddDate(0, 0, 7*i)
		if err := add(sundayObservance(ordinal(i)+" Sunday of Lent", ClassI), d); err != nil {
			return err
		}
	}

	// Late Eastertide.
	if err := add(sundayObservance("Fifth Sunday after Easter", ClassI), FromEaster(year, 35)); err != nil {
		return err
	}
	if err := add(sundayObservance("Sunday after Ascension", ClassI), FromEaster(year, 42)); err != nil {
		return err
	}

	// Time after Pentecost. The first Sunday is Trinity Sunday; the
	// final Sunday before Advent is always the Last Sunday.
	d := FromEaster(year, 63)
	for i := 2; ; i++ {
		if d.After(end.AddDate(0, 0, -7)) {
			if err := add(sundayObservance("Last Sunday after Pentecost", ClassII), d); err != nil {
				return err
			}
			break
		}
		if err := add(sundayObservance(ordinal(i)+" Sunday after Pentecost", ClassII), d); err != nil {
			return err
		}
		d = d.AddDate(0, 0, 7)
	}

	return nil
}

func hasLiturgical(events []Event) bool {
	for _, ev := range events {
		if ev.Liturgical {
			return true
		}
	}
	return false
}

// feriaObservance builds the weekday fallback. Lenten ferias carry the
// traditional long names ("Monday in the second week of Lent"); other
// seasons use the plain term.
func feriaObservance(d time.Time) Observance {
	return Observance{
		ID:         "feria-" + d.Format("2006-01-02"),
		Name:       FeriaName(d),
		Rank:       RankFeria,
		Liturgical: true,
		Feast:      false,
	}
}

// FeriaName names the feria of a date. March 18, 2019 is the Monday in
// the second week of Lent; outside Lent and Passiontide the name is
// simply "Feria".
func FeriaName(d time.Time) string {
	year := LiturgicalYearOf(d)
	ash := FromEaster(year, -46)
	firstSundayOfLent := ash.AddDate(0, 0, 4)
	passionSunday := FromEaster(year, -14)
	palmSunday := FromEaster(year, -7)

	weekday := d.Weekday().String()
	switch {
	case d.After(ash) && d.Before(firstSundayOfLent):
		return weekday + " after Ash Wednesday"
	case !d.Before(firstSundayOfLent) && d.Before(passionSunday):
		week := int(d.Sub(firstSundayOfLent).Hours()/24)/7 + 1
		return fmt.Sprintf("%s in the %s week of Lent", weekday, lower(ordinal(week)))
	case !d.Before(passionSunday) && d.Before(palmSunday):
		return weekday + " in Passion week"
	}
	return "Feria"
}

func lower(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'A' && b[0] <= 'Z' {
		b[0] += 'a' - 'A'
	}
	return string(b)
}
