package calendar

import (
	"testing"
	"time"
)

func TestEaster(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		day   int
	}{
		{2000, time.April, 23},
		{2004, time.April, 11},
		{2018, time.April, 1},
		{2019, time.April, 21},
		{2024, time.March, 31},
		{2027, time.March, 28},
		{2050, time.April, 10},
	}
	for _, tt := range tests {
		got := Easter(tt.year)
		want := date(tt.year, tt.month, tt.day)
		if !got.Equal(want) {
			t.Errorf("Easter(%d) = %s, want %s",
				tt.year, got.Format("2006-01-02"), want.Format("2006-01-02"))
		}
	}
}

func TestFromEaster(t *testing.T) {
	// Ash Wednesday 2019 crosses the March/February boundary.
	if got, want := FromEaster(2019, -46), date(2019, time.March, 6); !got.Equal(want) {
		t.Errorf("FromEaster(2019, -46) = %s, want %s",
			got.Format("2006-01-02"), want.Format("2006-01-02"))
	}
	if got, want := FromEaster(2019, 49), date(2019, time.June, 9); !got.Equal(want) {
		t.Errorf("FromEaster(2019, 49) = %s, want %s",
			got.Format("2006-01-02"), want.Format("2006-01-02"))
	}
}

func TestYearBounds(t *testing.T) {
	tests := []struct {
		year  int
		start time.Time
		end   time.Time
	}{
		{2018, date(2017, time.December, 3), date(2018, time.December, 1)},
		{2019, date(2018, time.December, 2), date(2019, time.November, 30)},
	}
	for _, tt := range tests {
		if got := YearStart(tt.year); !got.Equal(tt.start) {
			t.Errorf("YearStart(%d) = %s, want %s",
				tt.year, got.Format("2006-01-02"), tt.start.Format("2006-01-02"))
		}
		if got := YearEnd(tt.year); !got.Equal(tt.end) {
			t.Errorf("YearEnd(%d) = %s, want %s",
				tt.year, got.Format("2006-01-02"), tt.end.Format("2006-01-02"))
		}
	}
}

func TestYearBoundsAbut(t *testing.T) {
	// Consecutive liturgical years must tile the calendar exactly.
	for year := 2000; year <= 2050; year++ {
		next := YearEnd(year).AddDate(0, 0, 1)
		if !next.Equal(YearStart(year + 1)) {
			t.Errorf("year %d ends %s but year %d starts %s",
				year, YearEnd(year).Format("2006-01-02"),
				year+1, YearStart(year+1).Format("2006-01-02"))
		}
		if YearStart(year).Weekday() != time.Sunday {
			t.Errorf("YearStart(%d) = %s is not a Sunday", year, YearStart(year).Weekday())
		}
	}
}

func TestLiturgicalYearOf(t *testing.T) {
	tests := []struct {
		date time.Time
		want int
	}{
		{date(2018, time.December, 1), 2018},
		{date(2018, time.December, 2), 2019},
		{date(2019, time.June, 15), 2019},
		{date(2019, time.November, 30), 2019},
		{date(2019, time.December, 1), 2020},
	}
	for _, tt := range tests {
		if got := LiturgicalYearOf(tt.date); got != tt.want {
			t.Errorf("LiturgicalYearOf(%s) = %d, want %d",
				tt.date.Format("2006-01-02"), got, tt.want)
		}
	}
}

func TestValidateYear(t *testing.T) {
	tests := []struct {
		year    int
		wantErr bool
	}{
		{1582, true},
		{1583, false},
		{2019, false},
		{9999, false},
		{10000, true},
	}
	for _, tt := range tests {
		err := ValidateYear(tt.year)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateYear(%d) error = %v, wantErr %v", tt.year, err, tt.wantErr)
		}
	}
}
