package ics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jmlarkin/tridentine-calendar/internal/calendar"
)

func computeYear(t *testing.T, year int) *calendar.Year {
	t.Helper()
	reg, err := calendar.LoadRegistry()
	if err != nil {
		t.Fatalf("LoadRegistry() failed: %v", err)
	}
	y, err := calendar.ComputeYear(reg, year)
	if err != nil {
		t.Fatalf("ComputeYear(%d) failed: %v", year, err)
	}
	return y
}

func TestEncode(t *testing.T) {
	y := computeYear(t, 2018)

	var b strings.Builder
	if err := Encode(&b, []*calendar.Year{y}, false); err != nil {
		t.Fatalf("Encode() failed: %v", err)
	}
	out := b.String()

	if !strings.HasPrefix(out, "BEGIN:VCALENDAR\r\n") {
		t.Error("output does not start with BEGIN:VCALENDAR")
	}
	if !strings.HasSuffix(out, "END:VCALENDAR\r\n") {
		t.Error("output does not end with END:VCALENDAR")
	}
	for _, want := range []string{
		"X-WR-CALNAME:Tridentine calendar",
		"SUMMARY:Easter",
		"SUMMARY:Christmas",
		"SUMMARY:» Halloween",
		"DTSTART;VALUE=DATE:20180401",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}

	// A bare weekday produces no event at all: the Friday after the
	// octave of Corpus Christi 2018 has nothing on it.
	if strings.Contains(out, "DTSTART;VALUE=DATE:20180615") {
		t.Error("output contains an event for a bare feria day")
	}

	for _, line := range strings.Split(out, "\r\n") {
		if len(line) > 75 {
			t.Errorf("line exceeds 75 octets: %q", line)
		}
	}
}

func TestEncode_OutrankedMarker(t *testing.T) {
	y := computeYear(t, 2019)

	var b strings.Builder
	if err := Encode(&b, []*calendar.Year{y}, false); err != nil {
		t.Fatalf("Encode() failed: %v", err)
	}
	out := unfold(b.String())

	// SS. Perpetua and Felicity are outranked by Ash Wednesday in 2019.
	if !strings.Contains(out, "SUMMARY:› SS. Perpetua and Felicity") {
		t.Error("outranked feast missing its marker")
	}
	if !strings.Contains(out, "This year the Feast of SS. Perpetua and Felicity is outranked by Ash Wednesday.") {
		t.Error("outranked feast missing its explanation")
	}

	// Addition events keep their plain name even when they do not rule.
	if strings.Contains(out, "SUMMARY:› Minor Rogation") {
		t.Error("addition event carries the outranked marker")
	}
	if !strings.Contains(out, "SUMMARY:Minor Rogation") {
		t.Error("addition event missing")
	}
}

func TestEventDescription(t *testing.T) {
	y := computeYear(t, 2019)

	day, _ := y.DayOn(time.Date(2019, time.April, 21, 0, 0, 0, 0, time.UTC))
	desc := eventDescription(day.Ruling, true, false)
	for _, want := range []string{
		"Easter is a Class I feast.",
		"The liturgical color is white.",
		"More information about Easter:",
		"• https://en.wikipedia.org/wiki/Easter",
		"More information about Eastertide:",
	} {
		if !strings.Contains(desc, want) {
			t.Errorf("description missing %q in:\n%s", want, desc)
		}
	}

	// Holy days announce the obligation.
	day, _ = y.DayOn(time.Date(2019, time.May, 30, 0, 0, 0, 0, time.UTC))
	desc = eventDescription(day.Ruling, true, false)
	if !strings.Contains(desc, "The Feast of the Ascension is a Holy Day of Obligation.") {
		t.Errorf("Ascension description missing obligation note:\n%s", desc)
	}
	if !strings.Contains(desc, "This feast is a Class I feast.") {
		t.Errorf("Ascension description missing class note:\n%s", desc)
	}

	// Lesser feasts in Lent carry the commemoration note.
	day, _ = y.DayOn(time.Date(2019, time.March, 19, 0, 0, 0, 0, time.UTC))
	if day.Ruling.Name != "St. Joseph" {
		t.Fatalf("2019-03-19 ruling = %q, want St. Joseph", day.Ruling.Name)
	}
	day, _ = y.DayOn(time.Date(2019, time.March, 18, 0, 0, 0, 0, time.UTC))
	for _, c := range day.Commemorations {
		t.Fatalf("unexpected commemorations on a bare feria: %+v", c)
	}
}

func TestEventDescription_LentenCommemoration(t *testing.T) {
	y := computeYear(t, 2019)

	// St. Patrick falls on the second Sunday of Lent in 2019 and loses;
	// on a weekday it would rule but still be kept as a commemoration at
	// the feria's mass. Use St. Thomas Aquinas (March 7, a Thursday).
	day, _ := y.DayOn(time.Date(2019, time.March, 7, 0, 0, 0, 0, time.UTC))
	if day.Ruling.Name != "St. Thomas Aquinas" {
		t.Fatalf("2019-03-07 ruling = %q, want St. Thomas Aquinas", day.Ruling.Name)
	}
	desc := eventDescription(day.Ruling, true, false)
	want := "Since the Feast of St. Thomas Aquinas falls during Lent it will ordinarily be celebrated only as a commemoration during the mass of Thursday after Ash Wednesday."
	if !strings.Contains(desc, want) {
		t.Errorf("description missing %q in:\n%s", want, desc)
	}
}

func TestEscapeText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"a,b;c", `a\,b\;c`},
		{"line1\nline2", `line1\nline2`},
		{`back\slash`, `back\\slash`},
	}
	for _, tt := range tests {
		if got := escapeText(tt.in); got != tt.want {
			t.Errorf("escapeText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestURLLabel(t *testing.T) {
	tests := []struct {
		url      string
		fallback string
		want     string
	}{
		{"https://en.wikipedia.org/wiki/Saturnin", "St. Saturninus", "Saturnin (Wikipedia)"},
		{"https://en.wikipedia.org/wiki/Feast_of_the_Ascension", "Ascension", "Feast of the Ascension (Wikipedia)"},
		{"https://fisheaters.com/customsadvent.html", "Advent", "Advent (Fish Eaters)"},
	}
	for _, tt := range tests {
		if got := urlLabel(tt.url, tt.fallback); got != tt.want {
			t.Errorf("urlLabel(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}

func TestWriteAndExtendFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cal.ics")
	y2018 := computeYear(t, 2018)
	y2019 := computeYear(t, 2019)

	if err := WriteFile(path, []*calendar.Year{y2018}, false, false); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	if err := WriteFile(path, []*calendar.Year{y2018}, false, false); err == nil {
		t.Fatal("WriteFile() overwrote an existing file without overwrite set")
	}

	before, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	// Extending with the same year plus a new one only appends the new
	// year's events.
	if err := ExtendFile(path, []*calendar.Year{y2018, y2019}); err != nil {
		t.Fatalf("ExtendFile() failed: %v", err)
	}
	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(after), "DTSTART;VALUE=DATE:20190421") {
		t.Error("extended file missing Easter 2019")
	}
	if c1, c2 := strings.Count(string(after), "DTSTART;VALUE=DATE:20180401"), strings.Count(string(before), "DTSTART;VALUE=DATE:20180401"); c1 != c2 {
		t.Errorf("Easter 2018 duplicated by extension: %d != %d", c1, c2)
	}

	// A second extension with no new years is a no-op.
	if err := ExtendFile(path, []*calendar.Year{y2019}); err != nil {
		t.Fatalf("ExtendFile() failed: %v", err)
	}
	again, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(again) != string(after) {
		t.Error("extending with already-present years changed the file")
	}
}
