package calendar

import (
	"fmt"
	"sort"
	"time"
)

// ResolvedDay is one fully resolved date of the calendar: the ruling
// observance of the day, outranked observances as commemorations in
// descending precedence, and informational entries that carry no
// liturgical weight.
type ResolvedDay struct {
	Date           time.Time `json:"date"`
	Season         Season    `json:"season"`
	Ruling         Event     `json:"ruling"`
	Commemorations []Event   `json:"commemorations,omitempty"`
	Informational  []Event   `json:"informational,omitempty"`
}

// Liturgical returns the day's rank-bearing events in precedence order,
// ruling observance first.
func (d ResolvedDay) Liturgical() []Event {
	return append([]Event{d.Ruling}, d.Commemorations...)
}

// An overrideRule adjusts a candidate's precedence weight beyond its
// bare class. A rule matches on season, class window, and the addition
// flag; every matching rule's delta is applied. The zero season matches
// every season.
type overrideRule struct {
	season   string
	minRank  Rank
	maxRank  Rank
	addition bool
	delta    float64
}

// Addition events (the Rogation processions) sort after everything of
// their own class but ahead of the next class down.
var overrideRules = []overrideRule{
	{minRank: ClassI, maxRank: RankFeria, addition: true, delta: 0.5},
}

func (r overrideRule) matches(ev Event) bool {
	if r.season != "" && r.season != ev.Season.Name {
		return false
	}
	if ev.Rank < r.minRank || ev.Rank > r.maxRank {
		return false
	}
	if r.addition && !ev.Addition {
		return false
	}
	return true
}

// weight is a liturgical event's total precedence weight; lower weights
// rule. Class carries the integer part, override rules contribute
// fractions.
func weight(ev Event) float64 {
	w := float64(ev.Rank)
	for _, r := range overrideRules {
		if r.matches(ev) {
			w += r.delta
		}
	}
	return w
}

// resolve orders one date's candidates. Informational entries bypass
// ranking and keep their collection order. Liturgical candidates sort
// by weight with a stable sort, so candidates of equal weight keep
// registry declaration order; the front of the sorted list rules the
// day. A date with no liturgical candidate is an internal invariant
// violation, reported rather than skipped.
func resolve(d time.Time, season Season, candidates []Event) (ResolvedDay, error) {
	day := ResolvedDay{Date: d, Season: season}
	var liturgical []Event
	for _, ev := range candidates {
		if ev.Liturgical {
			liturgical = append(liturgical, ev)
		} else {
			day.Informational = append(day.Informational, ev)
		}
	}
	if len(liturgical) == 0 {
		return ResolvedDay{}, fmt.Errorf("no liturgical observance on %s", d.Format("2006-01-02"))
	}
	sort.SliceStable(liturgical, func(i, j int) bool {
		return weight(liturgical[i]) < weight(liturgical[j])
	})
	day.Ruling = liturgical[0]
	if len(liturgical) > 1 {
		day.Commemorations = liturgical[1:]
	}
	return day, nil
}
