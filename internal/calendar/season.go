package calendar

import (
	"fmt"
	"time"
)

// Season names. These are the keys of the season reference data.
const (
	SeasonAdvent             = "Advent"
	SeasonChristmastide      = "Christmastide"
	SeasonTimeAfterEpiphany  = "Time after Epiphany"
	SeasonSeptuagesima       = "Septuagesima"
	SeasonShrovetide         = "Shrovetide"
	SeasonLent               = "Lent"
	SeasonPassiontide        = "Passiontide"
	SeasonHolyWeek           = "Holy Week"
	SeasonPaschalTriduum     = "Paschal Triduum"
	SeasonEastertide         = "Eastertide"
	SeasonTimeAfterPentecost = "Time after Pentecost"
	SeasonHallowtide         = "Hallowtide"
)

// Season carries the reference data of a liturgical season: its color
// and the URLs describing it.
type Season struct {
	Name  string   `json:"name"`
	Color string   `json:"color"`
	URLs  []string `json:"urls,omitempty"`
}

// FullName returns the season's name with an article where prose needs
// one ("the Time after Pentecost").
func (s Season) FullName(capitalize bool) string {
	name := s.Name
	if s.Name == SeasonTimeAfterEpiphany || s.Name == SeasonTimeAfterPentecost {
		name = "the " + name
	}
	if capitalize {
		// Season names are already capitalized; only the article
		// needs adjusting.
		if name[0] == 't' {
			name = "T" + name[1:]
		}
	}
	return name
}

// seasonKeyOf determines which liturgical season a date falls in. The
// three Shrovetide days interrupt Septuagesima, and Hallowtide
// interrupts the time after Pentecost, exactly as the rubrics carve
// them out.
func seasonKeyOf(d time.Time) (string, error) {
	year := LiturgicalYearOf(d)

	ash := FromEaster(year, -46)
	for _, shrove := range []time.Time{ash.AddDate(0, 0, -6), ash.AddDate(0, 0, -2), ash.AddDate(0, 0, -1)} {
		if sameDate(d, shrove) {
			return SeasonShrovetide, nil
		}
	}

	xmas := date(year-1, time.December, 25)
	epiphany := date(year, time.January, 6)
	septuagesima := FromEaster(year, -63)
	passionSunday := FromEaster(year, -14)
	palmSunday := FromEaster(year, -7)
	maundyThursday := FromEaster(year, -3)
	easter := Easter(year)
	pentecost := FromEaster(year, 49)
	allHallowsEve := date(year, time.October, 31)
	allSoulsEnd := date(year, time.November, 3)

	switch {
	case !d.Before(YearStart(year)) && d.Before(xmas):
		return SeasonAdvent, nil
	case d.Before(epiphany):
		return SeasonChristmastide, nil
	case d.Before(septuagesima):
		return SeasonTimeAfterEpiphany, nil
	case d.Before(ash):
		return SeasonSeptuagesima, nil
	case d.Before(passionSunday):
		return SeasonLent, nil
	case d.Before(palmSunday):
		return SeasonPassiontide, nil
	case d.Before(maundyThursday):
		return SeasonHolyWeek, nil
	case d.Before(easter):
		return SeasonPaschalTriduum, nil
	case d.Before(pentecost):
		return SeasonEastertide, nil
	case d.Before(allHallowsEve):
		return SeasonTimeAfterPentecost, nil
	case d.Before(allSoulsEnd):
		return SeasonHallowtide, nil
	case !d.After(YearEnd(year)):
		return SeasonTimeAfterPentecost, nil
	}
	return "", fmt.Errorf("no liturgical season for date %s", d.Format("2006-01-02"))
}
