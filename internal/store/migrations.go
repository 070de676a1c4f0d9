package store

// migrationsSQL contains all database migrations, applied in order by
// version number. Each migration is idempotent.
var migrationsSQL = map[int]string{
	1: migrationV1CalendarSchema,
}

// migrationV1CalendarSchema creates the resolved-calendar schema.
//
// calendar_days holds one row per resolved date; calendar_events holds
// the ruling observance, commemorations, and informational entries of
// that date. Rows are written a whole liturgical year at a time and
// never updated in place: regenerating a year deletes and reinserts it.
const migrationV1CalendarSchema = `
-- Migration 001: resolved calendar schema

CREATE TABLE IF NOT EXISTS calendar_days (
    id INTEGER PRIMARY KEY AUTOINCREMENT,

    -- ISO date, e.g. '2019-04-21'. One row per date.
    date TEXT NOT NULL UNIQUE,

    -- The liturgical year the date belongs to. A liturgical year spans
    -- two civil years, so this is not substr(date, 1, 4).
    liturgical_year INTEGER NOT NULL,

    season TEXT NOT NULL,
    season_color TEXT NOT NULL,

    created_at TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_calendar_days_year
    ON calendar_days(liturgical_year);


CREATE TABLE IF NOT EXISTS calendar_events (
    id INTEGER PRIMARY KEY AUTOINCREMENT,

    day_id INTEGER NOT NULL,

    -- Stable observance identifier, e.g. 'ash-wednesday'.
    slug TEXT NOT NULL,
    name TEXT NOT NULL,

    -- Precedence class 1-4, 5 for ferias, NULL for informational
    -- entries.
    rank INTEGER,

    color TEXT NOT NULL,

    -- Where the event landed after resolution.
    kind TEXT NOT NULL CHECK (kind IN (
        'ruling',
        'commemoration',
        'informational'
    )),

    -- Order within its kind (commemorations in descending precedence).
    position INTEGER NOT NULL DEFAULT 0,

    feast INTEGER NOT NULL DEFAULT 1,
    addition INTEGER NOT NULL DEFAULT 0,
    holy_day INTEGER NOT NULL DEFAULT 0,

    -- JSON arrays of strings.
    titles TEXT NOT NULL DEFAULT '[]',
    urls TEXT NOT NULL DEFAULT '[]',

    FOREIGN KEY (day_id) REFERENCES calendar_days(id) ON DELETE CASCADE,
    UNIQUE (day_id, kind, position)
);

CREATE INDEX IF NOT EXISTS idx_calendar_events_day
    ON calendar_events(day_id);
`
