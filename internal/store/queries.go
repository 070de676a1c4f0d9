package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmlarkin/tridentine-calendar/internal/calendar"
)

// Event kinds as stored in calendar_events.kind.
const (
	kindRuling        = "ruling"
	kindCommemoration = "commemoration"
	kindInformational = "informational"
)

const dateLayout = "2006-01-02"

// SaveYear writes a resolved liturgical year in one transaction,
// replacing any rows previously stored for that year.
func (db *DB) SaveYear(ctx context.Context, y *calendar.Year) error {
	return db.WithTx(ctx, func(tx *Tx) error {
		// Cascade removes the year's events.
		if _, err := tx.ExecContext(ctx,
			"DELETE FROM calendar_days WHERE liturgical_year = ?", y.Year,
		); err != nil {
			return fmt.Errorf("delete year %d: %w", y.Year, err)
		}

		dayStmt, err := tx.PrepareContext(ctx, `
			INSERT INTO calendar_days (date, liturgical_year, season, season_color)
			VALUES (?, ?, ?, ?)
		`)
		if err != nil {
			return fmt.Errorf("prepare day insert: %w", err)
		}
		defer dayStmt.Close()

		eventStmt, err := tx.PrepareContext(ctx, `
			INSERT INTO calendar_events
				(day_id, slug, name, rank, color, kind, position,
				 feast, addition, holy_day, titles, urls)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return fmt.Errorf("prepare event insert: %w", err)
		}
		defer eventStmt.Close()

		for _, day := range y.Days {
			res, err := dayStmt.ExecContext(ctx,
				day.Date.Format(dateLayout), y.Year,
				day.Season.Name, day.Season.Color,
			)
			if err != nil {
				return fmt.Errorf("insert day %s: %w", day.Date.Format(dateLayout), err)
			}
			dayID, err := res.LastInsertId()
			if err != nil {
				return fmt.Errorf("day id for %s: %w", day.Date.Format(dateLayout), err)
			}

			insert := func(ev calendar.Event, kind string, position int) error {
				var rank any
				if ev.Liturgical {
					rank = int(ev.Rank)
				}
				titles, err := json.Marshal(ev.Titles)
				if err != nil {
					return err
				}
				urls, err := json.Marshal(ev.URLs)
				if err != nil {
					return err
				}
				_, err = eventStmt.ExecContext(ctx,
					dayID, ev.ID, ev.Name, rank, ev.Color, kind, position,
					ev.Feast, ev.Addition, ev.HolyDay, string(titles), string(urls),
				)
				return err
			}

			if err := insert(day.Ruling, kindRuling, 0); err != nil {
				return fmt.Errorf("insert ruling for %s: %w", day.Date.Format(dateLayout), err)
			}
			for i, ev := range day.Commemorations {
				if err := insert(ev, kindCommemoration, i); err != nil {
					return fmt.Errorf("insert commemoration for %s: %w", day.Date.Format(dateLayout), err)
				}
			}
			for i, ev := range day.Informational {
				if err := insert(ev, kindInformational, i); err != nil {
					return fmt.Errorf("insert informational for %s: %w", day.Date.Format(dateLayout), err)
				}
			}
		}

		db.logger.Info("year saved",
			slog.Int("year", y.Year),
			slog.Int("days", len(y.Days)),
		)
		return nil
	})
}

// HasYear reports whether a liturgical year has been stored.
func (db *DB) HasYear(ctx context.Context, year int) (bool, error) {
	var count int
	err := db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM calendar_days WHERE liturgical_year = ?", year,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("count days for year %d: %w", year, err)
	}
	return count > 0, nil
}

// GetDay loads one resolved day by date. Returns ErrNotFound when the
// date has not been stored.
func (db *DB) GetDay(ctx context.Context, date time.Time) (calendar.ResolvedDay, error) {
	var (
		dayID int64
		day   calendar.ResolvedDay
	)
	err := db.QueryRowContext(ctx, `
		SELECT id, date, season, season_color
		FROM calendar_days WHERE date = ?
	`, date.Format(dateLayout)).Scan(&dayID, &dateScanner{&day.Date}, &day.Season.Name, &day.Season.Color)
	if err == sql.ErrNoRows {
		return calendar.ResolvedDay{}, ErrNotFound
	}
	if err != nil {
		return calendar.ResolvedDay{}, fmt.Errorf("query day %s: %w", date.Format(dateLayout), err)
	}

	if err := db.loadEvents(ctx, dayID, &day); err != nil {
		return calendar.ResolvedDay{}, err
	}
	return day, nil
}

// GetYear loads a stored liturgical year. Returns ErrNotFound when the
// year has not been stored.
func (db *DB) GetYear(ctx context.Context, year int) (*calendar.Year, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, date, season, season_color
		FROM calendar_days
		WHERE liturgical_year = ?
		ORDER BY date
	`, year)
	if err != nil {
		return nil, fmt.Errorf("query days for year %d: %w", year, err)
	}
	defer rows.Close()

	y := &calendar.Year{Year: year}
	ids := make([]int64, 0, 366)
	for rows.Next() {
		var (
			dayID int64
			day   calendar.ResolvedDay
		)
		if err := rows.Scan(&dayID, &dateScanner{&day.Date}, &day.Season.Name, &day.Season.Color); err != nil {
			return nil, fmt.Errorf("scan day: %w", err)
		}
		ids = append(ids, dayID)
		y.Days = append(y.Days, day)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate days: %w", err)
	}
	if len(y.Days) == 0 {
		return nil, ErrNotFound
	}

	index := make(map[int64]*calendar.ResolvedDay, len(ids))
	for i, dayID := range ids {
		index[dayID] = &y.Days[i]
	}

	eventRows, err := db.QueryContext(ctx, `
		SELECT e.day_id, e.slug, e.name, e.rank, e.color, e.kind,
		       e.feast, e.addition, e.holy_day, e.titles, e.urls
		FROM calendar_events e
		JOIN calendar_days d ON d.id = e.day_id
		WHERE d.liturgical_year = ?
		ORDER BY d.date, e.kind, e.position
	`, year)
	if err != nil {
		return nil, fmt.Errorf("query events for year %d: %w", year, err)
	}
	defer eventRows.Close()

	for eventRows.Next() {
		var dayID int64
		ev, kind, err := scanEvent(eventRows, &dayID)
		if err != nil {
			return nil, err
		}
		day, ok := index[dayID]
		if !ok {
			continue
		}
		attachEvent(day, ev, kind)
	}
	if err := eventRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}

	y.Start = y.Days[0].Date
	y.End = y.Days[len(y.Days)-1].Date
	return y, nil
}

// loadEvents fills a day's ruling, commemorations, and informational
// entries from calendar_events.
func (db *DB) loadEvents(ctx context.Context, dayID int64, day *calendar.ResolvedDay) error {
	rows, err := db.QueryContext(ctx, `
		SELECT slug, name, rank, color, kind, feast, addition, holy_day, titles, urls
		FROM calendar_events
		WHERE day_id = ?
		ORDER BY kind, position
	`, dayID)
	if err != nil {
		return fmt.Errorf("query events for day %d: %w", dayID, err)
	}
	defer rows.Close()

	for rows.Next() {
		ev, kind, err := scanEvent(rows, nil)
		if err != nil {
			return err
		}
		attachEvent(day, ev, kind)
	}
	return rows.Err()
}

// scanEvent reads one calendar_events row. When dayID is non-nil the
// row is expected to lead with the day_id column.
func scanEvent(rows *sql.Rows, dayID *int64) (calendar.Event, string, error) {
	var (
		ev           calendar.Event
		rank         sql.NullInt64
		kind         string
		titles, urls string
	)
	dest := make([]any, 0, 11)
	if dayID != nil {
		dest = append(dest, dayID)
	}
	dest = append(dest, &ev.ID, &ev.Name, &rank, &ev.Color, &kind,
		&ev.Feast, &ev.Addition, &ev.HolyDay, &titles, &urls)
	if err := rows.Scan(dest...); err != nil {
		return ev, "", fmt.Errorf("scan event: %w", err)
	}

	ev.Liturgical = rank.Valid
	if rank.Valid {
		ev.Rank = calendar.Rank(rank.Int64)
	}
	if err := json.Unmarshal([]byte(titles), &ev.Titles); err != nil {
		return ev, "", fmt.Errorf("decode titles for %s: %w", ev.Name, err)
	}
	if err := json.Unmarshal([]byte(urls), &ev.URLs); err != nil {
		return ev, "", fmt.Errorf("decode urls for %s: %w", ev.Name, err)
	}
	return ev, kind, nil
}

// attachEvent places a loaded event on its day by kind.
func attachEvent(day *calendar.ResolvedDay, ev calendar.Event, kind string) {
	ev.Date = day.Date
	ev.Season = day.Season
	switch kind {
	case kindRuling:
		day.Ruling = ev
	case kindCommemoration:
		day.Commemorations = append(day.Commemorations, ev)
	case kindInformational:
		day.Informational = append(day.Informational, ev)
	}
}

// dateScanner scans a TEXT date column into a time.Time at UTC
// midnight, matching the dates the calendar package produces.
type dateScanner struct {
	dst *time.Time
}

func (s *dateScanner) Scan(v any) error {
	switch t := v.(type) {
	case string:
		parsed, err := time.Parse(dateLayout, t)
		if err != nil {
			return err
		}
		*s.dst = parsed
		return nil
	case time.Time:
		*s.dst = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		return nil
	}
	return fmt.Errorf("cannot scan %T into date", v)
}
