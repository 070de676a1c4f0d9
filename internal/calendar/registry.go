package calendar

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

//go:embed data/fixed_feasts.json data/movable_feasts.json data/seasons.json
var dataFS embed.FS

// observanceSpec is the JSON shape of one reference-data entry. Boolean
// pointers distinguish "absent" from "false": liturgical_event and feast
// default to true.
type observanceSpec struct {
	Name            string   `json:"name"`
	Class           int      `json:"class,omitempty"`
	Color           string   `json:"color,omitempty"`
	Titles          []string `json:"titles,omitempty"`
	URLs            []string `json:"urls,omitempty"`
	LiturgicalEvent *bool    `json:"liturgical_event,omitempty"`
	Feast           *bool    `json:"feast,omitempty"`
	Addition        bool     `json:"addition,omitempty"`
	HolyDay         bool     `json:"holy_day,omitempty"`
	EasterOffset    *int     `json:"easter_offset,omitempty"`
	Rule            string   `json:"rule,omitempty"`
}

type seasonSpec struct {
	Color string   `json:"color"`
	URLs  []string `json:"urls,omitempty"`
}

type monthDay struct {
	Month time.Month
	Day   int
}

// Registry is the immutable reference data of the calendar: fixed-date
// observances keyed by month and day, moveable observances in
// declaration order, and the season table. It is loaded and validated
// once and never mutated afterwards; every per-year computation reads
// from it concurrently without locking.
type Registry struct {
	fixed    map[monthDay][]Observance
	moveable []Observance
	byOffset map[int][]Observance
	seasons  map[string]Season
}

// LoadRegistry parses and validates the embedded reference data.
// Malformed entries — a missing or doubled date specification, an
// unknown rank or rule token, a duplicate identifier — are integrity
// errors fatal to the load; they are all reported together rather than
// one at a time.
func LoadRegistry() (*Registry, error) {
	var fixed map[string][]observanceSpec
	if err := loadJSON("data/fixed_feasts.json", &fixed); err != nil {
		return nil, err
	}
	var moveable []observanceSpec
	if err := loadJSON("data/movable_feasts.json", &moveable); err != nil {
		return nil, err
	}
	var seasons map[string]seasonSpec
	if err := loadJSON("data/seasons.json", &seasons); err != nil {
		return nil, err
	}
	return NewRegistry(fixed, moveable, seasons)
}

func loadJSON(name string, v any) error {
	raw, err := dataFS.ReadFile(name)
	if err != nil {
		return fmt.Errorf("read registry data %s: %w", name, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("parse registry data %s: %w", name, err)
	}
	return nil
}

// NewRegistry builds a Registry from parsed reference data. Fixed
// observances are keyed by strings such as "December 25"; moveable
// observances keep their slice order, which is also the deterministic
// tie-break order during resolution.
func NewRegistry(
	fixed map[string][]observanceSpec,
	moveable []observanceSpec,
	seasons map[string]seasonSpec,
) (*Registry, error) {
	reg := &Registry{
		fixed:    make(map[monthDay][]Observance),
		byOffset: make(map[int][]Observance),
		seasons:  make(map[string]Season),
	}

	var errs []error
	ids := make(map[string]bool)

	register := func(o Observance) {
		if ids[o.ID] {
			errs = append(errs, fmt.Errorf("duplicate observance identifier %q", o.ID))
			return
		}
		ids[o.ID] = true
	}

	for key, specs := range fixed {
		day, err := time.Parse("January 2", key)
		if err != nil {
			errs = append(errs, fmt.Errorf("fixed observance key %q is not a month and day", key))
			continue
		}
		md := monthDay{Month: day.Month(), Day: day.Day()}
		for _, spec := range specs {
			o, err := spec.observance()
			if err != nil {
				errs = append(errs, fmt.Errorf("fixed observance %q: %w", spec.Name, err))
				continue
			}
			if spec.EasterOffset != nil || spec.Rule != "" {
				errs = append(errs, fmt.Errorf("fixed observance %q also declares a moveable date", spec.Name))
				continue
			}
			o.Month, o.Day = md.Month, md.Day
			register(o)
			reg.fixed[md] = append(reg.fixed[md], o)
		}
	}

	for _, spec := range moveable {
		o, err := spec.observance()
		if err != nil {
			errs = append(errs, fmt.Errorf("moveable observance %q: %w", spec.Name, err))
			continue
		}
		switch {
		case spec.EasterOffset != nil && spec.Rule != "":
			errs = append(errs, fmt.Errorf("moveable observance %q declares both easter_offset and rule", spec.Name))
			continue
		case spec.EasterOffset == nil && spec.Rule == "":
			errs = append(errs, fmt.Errorf("moveable observance %q has no date specification", spec.Name))
			continue
		case spec.Rule != "":
			if _, ok := dateRules[spec.Rule]; !ok {
				errs = append(errs, fmt.Errorf("moveable observance %q uses unknown rule %q", spec.Name, spec.Rule))
				continue
			}
			o.Rule = spec.Rule
		default:
			offset := *spec.EasterOffset
			o.EasterOffset = &offset
			reg.byOffset[offset] = append(reg.byOffset[offset], o)
		}
		register(o)
		reg.moveable = append(reg.moveable, o)
	}

	for _, name := range []string{
		SeasonAdvent, SeasonChristmastide, SeasonTimeAfterEpiphany,
		SeasonSeptuagesima, SeasonShrovetide, SeasonLent,
		SeasonPassiontide, SeasonHolyWeek, SeasonPaschalTriduum,
		SeasonEastertide, SeasonTimeAfterPentecost, SeasonHallowtide,
	} {
		spec, ok := seasons[name]
		if !ok {
			errs = append(errs, fmt.Errorf("season %q missing from season data", name))
			continue
		}
		if spec.Color == "" {
			errs = append(errs, fmt.Errorf("season %q has no color", name))
			continue
		}
		reg.seasons[name] = Season{Name: name, Color: spec.Color, URLs: spec.URLs}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("registry integrity: %w", errors.Join(errs...))
	}
	return reg, nil
}

// observance converts a data entry into the domain model, validating the
// fields shared by fixed and moveable entries.
func (s observanceSpec) observance() (Observance, error) {
	if s.Name == "" {
		return Observance{}, errors.New("missing name")
	}
	liturgical := s.LiturgicalEvent == nil || *s.LiturgicalEvent
	rank := Rank(s.Class)
	if liturgical && !rank.Valid() {
		return Observance{}, fmt.Errorf("unrecognized rank %d", s.Class)
	}
	if !liturgical && s.Class != 0 {
		return Observance{}, errors.New("informational entry must not carry a rank")
	}
	if !liturgical && s.HolyDay {
		return Observance{}, errors.New("informational entry cannot be a holy day")
	}
	return Observance{
		ID:         slug(s.Name),
		Name:       s.Name,
		Rank:       rank,
		Color:      s.Color,
		Titles:     s.Titles,
		URLs:       s.URLs,
		Liturgical: liturgical,
		Feast:      s.Feast == nil || *s.Feast,
		Addition:   s.Addition,
		HolyDay:    s.HolyDay,
	}, nil
}

// FixedOn returns the fixed-date observances assigned to a month and
// day. Several observances may share a date; callers receive them in
// declaration order.
func (r *Registry) FixedOn(month time.Month, day int) []Observance {
	return r.fixed[monthDay{Month: month, Day: day}]
}

// MoveableAt returns the Easter-anchored observances at the given offset
// in days from Easter Sunday.
func (r *Registry) MoveableAt(offset int) []Observance {
	return r.byOffset[offset]
}

// Moveable returns all moveable observances in declaration order,
// including those whose dates come from named rules rather than Easter
// offsets.
func (r *Registry) Moveable() []Observance {
	return r.moveable
}

// DatesOf computes the date or dates of a moveable observance in a
// liturgical year.
func (r *Registry) DatesOf(o Observance, year int) []time.Time {
	if o.EasterOffset != nil {
		return []time.Time{FromEaster(year, *o.EasterOffset)}
	}
	return dateRules[o.Rule](year)
}

// SeasonByName returns a season's reference data. Season keys are
// validated at load, so a miss indicates a programming error in the
// caller.
func (r *Registry) SeasonByName(name string) (Season, error) {
	s, ok := r.seasons[name]
	if !ok {
		return Season{}, fmt.Errorf("unknown season %q", name)
	}
	return s, nil
}

// slug derives the stable identifier of an observance from its name.
func slug(name string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		case !lastDash:
			b.WriteByte('-')
			lastDash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
