package ics

import (
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/jmlarkin/tridentine-calendar/internal/calendar"
)

// eventDescription builds the prose description of one event. The
// ranking event of the day carries the liturgical color and, during
// Lent and Passiontide, a note that lesser feasts are ordinarily kept
// only as commemorations at the feria's mass.
func eventDescription(ev calendar.Event, ranking, html bool) string {
	var d string

	if ev.HolyDay {
		d = ev.FullName(true) + " is a Holy Day of Obligation."
	}

	switch {
	case ev.Liturgical && ev.Rank < calendar.ClassIV:
		name := ev.FullName(true)
		if !ranking || ev.HolyDay {
			name = "This feast"
			if !ev.Feast {
				name = "This feria"
			}
		}
		kind := "feast"
		if !ev.Feast {
			kind = "feria"
		}
		d = sentence(d, fmt.Sprintf("%s is a %s %s.", name, ev.Rank, kind))
	case ev.Liturgical && ev.Rank == calendar.ClassIV && ranking:
		d = sentence(d, "Today is a commemoration.")
	case !ev.Liturgical:
		d = sentence(d, ev.FullName(true)+" has no special liturgy.")
	}

	lenten := ev.Season.Name == calendar.SeasonLent || ev.Season.Name == calendar.SeasonPassiontide
	if ranking && lenten && ev.Liturgical && ev.Feast &&
		ev.Rank > calendar.ClassI && ev.Rank < calendar.ClassIV {
		d = sentence(d, fmt.Sprintf(
			"Since %s falls during Lent it will ordinarily be celebrated only as a commemoration during the mass of %s.",
			ev.FullName(false), calendar.FeriaName(ev.Date)))
	}

	if ranking {
		d = sentence(d, "The liturgical color is "+strings.ToLower(ev.Color)+".")
	}
	if d != "" {
		d += "\n\n"
	}

	if len(ev.URLs) > 0 {
		d += "More information about " + ev.FullName(false) + ":\n"
		for _, u := range ev.URLs {
			d += bullet(u, ev.Name, html)
		}
		d += "\n"
	}

	d += "More information about " + ev.Season.FullName(false) + ":\n"
	for _, u := range ev.Season.URLs {
		d += bullet(u, ev.Season.Name, html)
	}

	return strings.TrimSpace(d)
}

// sentence appends s to d with the two-space sentence separation the
// descriptions use throughout.
func sentence(d, s string) string {
	if strings.HasSuffix(d, ".") {
		d += "  "
	}
	return d + s
}

func bullet(u, fallback string, html bool) string {
	if html {
		return "• <a href=" + u + ">" + urlLabel(u, fallback) + "</a>\n"
	}
	return "• " + u + "\n"
}

// urlLabel derives link text for a URL: the Wikipedia article title when
// the URL is a Wikipedia link, the fallback name otherwise, with the
// site name in parentheses.
func urlLabel(rawURL, fallback string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fallback
	}

	var site string
	switch u.Host {
	case "en.wikipedia.org":
		site = "Wikipedia"
	case "www.newadvent.org":
		site = "New Advent"
	case "fisheaters.com", "www.fisheaters.com":
		site = "Fish Eaters"
	}

	label := fallback
	if u.Host == "en.wikipedia.org" {
		base := path.Base(u.Path)
		if unescaped, err := url.PathUnescape(base); err == nil {
			base = unescaped
		}
		label = strings.ReplaceAll(base, "_", " ")
	}
	return label + " (" + site + ")"
}
