// Package ics renders resolved liturgical years as iCalendar (RFC 5545)
// files: one all-day VEVENT per observance per date, with prose
// descriptions of rank, precedence, and season.
package ics

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/jmlarkin/tridentine-calendar/internal/calendar"
)

const (
	calendarName        = "Tridentine calendar"
	calendarDescription = "Liturgical calendar using the 1962 Roman Catholic rubrics."

	// Outranked liturgical events and informational entries carry
	// leading markers so they stand apart in calendar clients.
	outrankedMarker     = "› " // ›
	informationalMarker = "» " // »
)

// Encode writes the years to w as a single VCALENDAR. When html is set,
// description URLs are rendered as <a href=...> links, which display
// well in web calendars but not in most desktop clients.
func Encode(w io.Writer, years []*calendar.Year, html bool) error {
	var b strings.Builder
	writeLine(&b, "BEGIN:VCALENDAR")
	writeLine(&b, "VERSION:2.0")
	writeLine(&b, "PRODID:-//litcal//Tridentine calendar//EN")
	writeLine(&b, "X-WR-CALNAME:"+escapeText(calendarName))
	writeLine(&b, "X-WR-CALDESC:"+escapeText(calendarDescription))
	for _, y := range years {
		appendYear(&b, y, html)
	}
	writeLine(&b, "END:VCALENDAR")
	_, err := io.WriteString(w, b.String())
	return err
}

// WriteFile encodes years to a new ICS file at path. The file must not
// already exist unless overwrite is set.
func WriteFile(path string, years []*calendar.Year, html, overwrite bool) error {
	flags := os.O_WRONLY | os.O_CREATE | os.O_EXCL
	if overwrite {
		flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return err
	}
	if err := Encode(f, years, html); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ExtendFile appends years to an existing ICS file, skipping years whose
// dates the file already covers. Link formatting follows whatever the
// existing file uses.
func ExtendFile(path string, years []*calendar.Year) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	content := string(raw)
	end := strings.LastIndex(content, "END:VCALENDAR")
	if end < 0 {
		return fmt.Errorf("%s is not an iCalendar file", path)
	}

	existing := existingYears(content)
	html := strings.Contains(content, "<a href")

	var b strings.Builder
	for _, y := range years {
		if existing[y.Year] {
			continue
		}
		appendYear(&b, y, html)
	}
	if b.Len() == 0 {
		return nil
	}
	out := content[:end] + b.String() + content[end:]
	return os.WriteFile(path, []byte(out), 0o644)
}

// existingYears collects the civil years of every DTSTART in an ICS
// document. A liturgical year's events span two civil years, so a year
// already written is always detected.
func existingYears(content string) map[int]bool {
	years := make(map[int]bool)
	for _, line := range strings.Split(unfold(content), "\n") {
		line = strings.TrimSuffix(line, "\r")
		if !strings.HasPrefix(line, "DTSTART") {
			continue
		}
		_, value, ok := strings.Cut(line, ":")
		if !ok || len(value) < 4 {
			continue
		}
		if year, err := strconv.Atoi(value[:4]); err == nil {
			years[year] = true
		}
	}
	return years
}

// unfold reverses RFC 5545 line folding.
func unfold(content string) string {
	content = strings.ReplaceAll(content, "\r\n ", "")
	return strings.ReplaceAll(content, "\r\n\t", "")
}

func appendYear(b *strings.Builder, y *calendar.Year, html bool) {
	for _, day := range y.Days {
		events := exportEvents(day)
		for i, ev := range events {
			summary := ev.Name
			var desc string

			if i > 0 && ev.Liturgical && !ev.Addition {
				summary = outrankedMarker + summary
				ruling := events[0]
				if ruling.Fixed() && ev.Fixed() {
					desc = ev.FullName(true) + " is outranked by " + ruling.FullName(false) + "."
				} else {
					desc = "This year " + ev.FullName(false) + " is outranked by " + ruling.FullName(false) + "."
				}
			}
			if !ev.Liturgical {
				summary = informationalMarker + summary
			}

			body := eventDescription(ev, i == 0, html)
			switch {
			case strings.HasPrefix(body, "More information about"):
				desc += "\n\n"
			case strings.HasSuffix(desc, "."):
				desc += "  "
			}
			desc = strings.TrimSpace(desc + body)

			writeEvent(b, day.Date, summary, desc)
		}
	}
}

// exportEvents orders a day's entries for export: the ruling observance,
// outranked observances, then informational entries. Generated ferias
// are omitted; a bare weekday produces no calendar event.
func exportEvents(day calendar.ResolvedDay) []calendar.Event {
	var events []calendar.Event
	for _, ev := range day.Liturgical() {
		if ev.Feria() {
			continue
		}
		events = append(events, ev)
	}
	return append(events, day.Informational...)
}

func writeEvent(b *strings.Builder, d time.Time, summary, desc string) {
	writeLine(b, "BEGIN:VEVENT")
	writeLine(b, "UID:"+uuid.NewString()+"@litcal")
	writeLine(b, "DTSTAMP:"+time.Now().UTC().Format("20060102T150405Z"))
	writeLine(b, "DTSTART;VALUE=DATE:"+d.Format("20060102"))
	writeLine(b, "SUMMARY:"+escapeText(summary))
	writeLine(b, "DESCRIPTION:"+escapeText(desc))
	writeLine(b, "END:VEVENT")
}

// escapeText escapes a property value per RFC 5545 section 3.3.11.
func escapeText(s string) string {
	r := strings.NewReplacer(
		"\\", "\\\\",
		";", "\\;",
		",", "\\,",
		"\r\n", "\\n",
		"\n", "\\n",
	)
	return r.Replace(s)
}

// writeLine emits one content line, folded at 75 octets without
// splitting UTF-8 sequences. Continuation lines lose one octet to the
// leading space.
func writeLine(b *strings.Builder, line string) {
	limit := 75
	for len(line) > limit {
		cut := limit
		for cut > 0 && !utf8.RuneStart(line[cut]) {
			cut--
		}
		b.WriteString(line[:cut])
		b.WriteString("\r\n ")
		line = line[cut:]
		limit = 74
	}
	b.WriteString(line)
	b.WriteString("\r\n")
}
