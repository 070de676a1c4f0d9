package calendar

import (
	"time"
)

// Year is one fully resolved liturgical year: the First Sunday of
// Advent in the prior civil year through the Saturday before the next
// First Sunday of Advent. Days is chronological, gap-free, and
// duplicate-free; consecutive years abut exactly, so concatenating them
// never drops or doubles a date.
type Year struct {
	Year  int           `json:"year"`
	Start time.Time     `json:"start"`
	End   time.Time     `json:"end"`
	Days  []ResolvedDay `json:"days"`
}

// ComputeYear resolves every date of a liturgical year from the
// registry. The computation is a pure function of the registry and the
// year: two calls always produce identical results.
func ComputeYear(reg *Registry, year int) (*Year, error) {
	if err := ValidateYear(year); err != nil {
		return nil, err
	}
	candidates, seasons, err := candidatesForYear(reg, year)
	if err != nil {
		return nil, err
	}

	start, end := YearStart(year), YearEnd(year)
	y := &Year{
		Year:  year,
		Start: start,
		End:   end,
		Days:  make([]ResolvedDay, 0, int(end.Sub(start).Hours()/24)+1),
	}
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		day, err := resolve(d, seasons[d], candidates[d])
		if err != nil {
			return nil, err
		}
		y.Days = append(y.Days, day)
	}
	return y, nil
}

// ComputeYears resolves several liturgical years in the order given.
func ComputeYears(reg *Registry, years []int) ([]*Year, error) {
	out := make([]*Year, 0, len(years))
	for _, year := range years {
		y, err := ComputeYear(reg, year)
		if err != nil {
			return nil, err
		}
		out = append(out, y)
	}
	return out, nil
}

// DayOn returns the resolved day for a date, or false when the date
// falls outside the year.
func (y *Year) DayOn(d time.Time) (ResolvedDay, bool) {
	idx := int(d.Sub(y.Start).Hours() / 24)
	if idx < 0 || idx >= len(y.Days) {
		return ResolvedDay{}, false
	}
	return y.Days[idx], true
}
