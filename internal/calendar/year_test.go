package calendar

import (
	"reflect"
	"testing"
	"time"
)

func TestComputeYear_Totality(t *testing.T) {
	reg := mustRegistry(t)
	y, err := ComputeYear(reg, 2019)
	if err != nil {
		t.Fatalf("ComputeYear(2019) failed: %v", err)
	}

	if !y.Start.Equal(date(2018, time.December, 2)) {
		t.Errorf("Start = %s, want 2018-12-02", y.Start.Format("2006-01-02"))
	}
	if !y.End.Equal(date(2019, time.November, 30)) {
		t.Errorf("End = %s, want 2019-11-30", y.End.Format("2006-01-02"))
	}
	if len(y.Days) != 364 {
		t.Fatalf("len(Days) = %d, want 364", len(y.Days))
	}

	// Chronological, gap-free, every day resolved.
	for i, day := range y.Days {
		want := y.Start.AddDate(0, 0, i)
		if !day.Date.Equal(want) {
			t.Fatalf("Days[%d].Date = %s, want %s", i,
				day.Date.Format("2006-01-02"), want.Format("2006-01-02"))
		}
		if day.Ruling.Name == "" {
			t.Errorf("%s has no ruling observance", day.Date.Format("2006-01-02"))
		}
		if day.Season.Name == "" {
			t.Errorf("%s has no season", day.Date.Format("2006-01-02"))
		}
	}
}

func TestComputeYear_KnownDays(t *testing.T) {
	reg := mustRegistry(t)

	tests := []struct {
		date       time.Time
		wantRuling string
		wantSeason string
	}{
		{date(2018, time.December, 2), "First Sunday of Advent", SeasonAdvent},
		{date(2018, time.December, 25), "Christmas", SeasonChristmastide},
		{date(2019, time.January, 2), "The Holy Name", SeasonChristmastide},
		{date(2019, time.January, 6), "The Epiphany", SeasonTimeAfterEpiphany},
		{date(2019, time.January, 13), "The Holy Family", SeasonTimeAfterEpiphany},
		{date(2019, time.January, 20), "Second Sunday after Epiphany", SeasonTimeAfterEpiphany},
		{date(2019, time.March, 6), "Ash Wednesday", SeasonLent},
		{date(2019, time.April, 18), "Maundy Thursday", SeasonPaschalTriduum},
		{date(2019, time.April, 21), "Easter", SeasonEastertide},
		{date(2019, time.June, 9), "Pentecost", SeasonTimeAfterPentecost},
		{date(2019, time.November, 30), "St. Andrew", SeasonTimeAfterPentecost},
	}

	years := make(map[int]*Year)
	for _, tt := range tests {
		year := LiturgicalYearOf(tt.date)
		y, ok := years[year]
		if !ok {
			var err error
			y, err = ComputeYear(reg, year)
			if err != nil {
				t.Fatalf("ComputeYear(%d) failed: %v", year, err)
			}
			years[year] = y
		}
		day, ok := y.DayOn(tt.date)
		if !ok {
			t.Errorf("DayOn(%s) not found", tt.date.Format("2006-01-02"))
			continue
		}
		if day.Ruling.Name != tt.wantRuling {
			t.Errorf("%s ruling = %q, want %q",
				tt.date.Format("2006-01-02"), day.Ruling.Name, tt.wantRuling)
		}
		if day.Season.Name != tt.wantSeason {
			t.Errorf("%s season = %q, want %q",
				tt.date.Format("2006-01-02"), day.Season.Name, tt.wantSeason)
		}
	}
}

func TestComputeYear_Commemorations(t *testing.T) {
	reg := mustRegistry(t)
	y, err := ComputeYear(reg, 2019)
	if err != nil {
		t.Fatalf("ComputeYear(2019) failed: %v", err)
	}

	// Ash Wednesday 2019 falls on the feast of SS. Perpetua and
	// Felicity, which drops to a commemoration.
	day, _ := y.DayOn(date(2019, time.March, 6))
	if day.Ruling.Name != "Ash Wednesday" {
		t.Fatalf("ruling = %q, want Ash Wednesday", day.Ruling.Name)
	}
	found := false
	for _, c := range day.Commemorations {
		if c.Name == "SS. Perpetua and Felicity" {
			found = true
		}
	}
	if !found {
		t.Errorf("Commemorations = %+v, want SS. Perpetua and Felicity", day.Commemorations)
	}

	// The Holy Family outranks the Baptism of Our Lord on January 13
	// by declaration order; both are Class II.
	day, _ = y.DayOn(date(2019, time.January, 13))
	if len(day.Commemorations) == 0 || day.Commemorations[0].Name != "Baptism of Our Lord" {
		t.Errorf("Commemorations = %+v, want Baptism of Our Lord", day.Commemorations)
	}
}

func TestComputeYear_SundaysAfterPentecost(t *testing.T) {
	reg := mustRegistry(t)
	y, err := ComputeYear(reg, 2018)
	if err != nil {
		t.Fatalf("ComputeYear(2018) failed: %v", err)
	}

	day, _ := y.DayOn(date(2018, time.September, 2))
	if day.Ruling.Name != "Fifteenth Sunday after Pentecost" {
		t.Errorf("2018-09-02 ruling = %q, want Fifteenth Sunday after Pentecost", day.Ruling.Name)
	}

	day, _ = y.DayOn(date(2018, time.November, 25))
	if day.Ruling.Name != "Last Sunday after Pentecost" {
		t.Errorf("2018-11-25 ruling = %q, want Last Sunday after Pentecost", day.Ruling.Name)
	}
}

func TestComputeYear_InformationalOverlay(t *testing.T) {
	reg := mustRegistry(t)
	y, err := ComputeYear(reg, 2018)
	if err != nil {
		t.Fatalf("ComputeYear(2018) failed: %v", err)
	}

	day, _ := y.DayOn(date(2018, time.October, 31))
	if day.Ruling.Name != "Vigil of All Saints" {
		t.Errorf("ruling = %q, want Vigil of All Saints", day.Ruling.Name)
	}
	if len(day.Informational) != 1 || day.Informational[0].Name != "Halloween" {
		t.Errorf("Informational = %+v, want Halloween", day.Informational)
	}
	for _, c := range day.Commemorations {
		if !c.Liturgical {
			t.Errorf("informational entry %q ranked as commemoration", c.Name)
		}
	}
}

func TestComputeYear_Deterministic(t *testing.T) {
	reg := mustRegistry(t)
	a, err := ComputeYear(reg, 2019)
	if err != nil {
		t.Fatalf("ComputeYear(2019) failed: %v", err)
	}
	b, err := ComputeYear(reg, 2019)
	if err != nil {
		t.Fatalf("ComputeYear(2019) failed: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("two computations of the same year differ")
	}
}

func TestComputeYears_BoundaryContinuity(t *testing.T) {
	reg := mustRegistry(t)
	years, err := ComputeYears(reg, []int{2018, 2019})
	if err != nil {
		t.Fatalf("ComputeYears failed: %v", err)
	}
	if len(years) != 2 {
		t.Fatalf("len(years) = %d, want 2", len(years))
	}

	last := years[0].Days[len(years[0].Days)-1].Date
	first := years[1].Days[0].Date
	if !last.AddDate(0, 0, 1).Equal(first) {
		t.Errorf("year 2018 ends %s, year 2019 starts %s; want consecutive dates",
			last.Format("2006-01-02"), first.Format("2006-01-02"))
	}
}

func TestComputeYear_InvalidYear(t *testing.T) {
	reg := mustRegistry(t)
	if _, err := ComputeYear(reg, 1500); err == nil {
		t.Error("ComputeYear(1500) succeeded, want error")
	}
}

func TestYearDayOn(t *testing.T) {
	reg := mustRegistry(t)
	y, err := ComputeYear(reg, 2019)
	if err != nil {
		t.Fatalf("ComputeYear(2019) failed: %v", err)
	}
	if _, ok := y.DayOn(date(2018, time.December, 1)); ok {
		t.Error("DayOn returned a day before the year start")
	}
	if _, ok := y.DayOn(date(2019, time.December, 1)); ok {
		t.Error("DayOn returned a day after the year end")
	}
	day, ok := y.DayOn(date(2019, time.July, 4))
	if !ok || !day.Date.Equal(date(2019, time.July, 4)) {
		t.Errorf("DayOn(2019-07-04) = %+v, %v", day, ok)
	}
}
