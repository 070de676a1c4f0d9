package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/jmlarkin/tridentine-calendar/internal/calendar"
	"github.com/jmlarkin/tridentine-calendar/internal/config"
	"github.com/jmlarkin/tridentine-calendar/internal/ics"
	"github.com/jmlarkin/tridentine-calendar/internal/store"
)

// Handlers contains all HTTP handlers and their dependencies.
type Handlers struct {
	db     *store.DB
	reg    *calendar.Registry
	cfg    *config.Config
	logger *slog.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(db *store.DB, reg *calendar.Registry, cfg *config.Config, logger *slog.Logger) *Handlers {
	return &Handlers{
		db:     db,
		reg:    reg,
		cfg:    cfg,
		logger: logger,
	}
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Check database health
	if err := h.db.Health(ctx); err != nil {
		h.logger.Warn("health check failed", slog.Any("error", err))
		WriteError(w, http.StatusServiceUnavailable, "Database unhealthy", "HEALTH_CHECK_FAILED")
		return
	}

	WriteSuccess(w, map[string]string{
		"status": "healthy",
	})
}

// GetToday handles GET /api/v1/days/today
func (h *Handlers) GetToday(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	day, err := h.dayOn(ctx, today)
	if err != nil {
		h.logger.Error("failed to resolve today", slog.Any("error", err))
		WriteInternalError(w, "Failed to resolve calendar day")
		return
	}

	WriteSuccess(w, day)
}

// GetDay handles GET /api/v1/days/{YYYY-MM-DD}
func (h *Handlers) GetDay(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	dateStr := chi.URLParam(r, "date")
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid date format: %s. Use YYYY-MM-DD", dateStr))
		return
	}

	if err := calendar.ValidateYear(calendar.LiturgicalYearOf(date)); err != nil {
		WriteBadRequest(w, err.Error())
		return
	}

	day, err := h.dayOn(ctx, date)
	if err != nil {
		h.logger.Error("failed to resolve day",
			slog.String("date", dateStr),
			slog.Any("error", err))
		WriteInternalError(w, "Failed to resolve calendar day")
		return
	}

	WriteSuccess(w, day)
}

// GetYear handles GET /api/v1/years/{year}
func (h *Handlers) GetYear(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	yearStr := chi.URLParam(r, "year")
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid year: %s", yearStr))
		return
	}
	if err := calendar.ValidateYear(year); err != nil {
		WriteBadRequest(w, err.Error())
		return
	}

	y, err := h.yearFor(ctx, year)
	if err != nil {
		h.logger.Error("failed to resolve year",
			slog.Int("year", year),
			slog.Any("error", err))
		WriteInternalError(w, "Failed to resolve liturgical year")
		return
	}

	WriteSuccess(w, y)
}

// GetYearCalendar handles GET /api/v1/years/{year}/calendar.ics
func (h *Handlers) GetYearCalendar(w http.ResponseWriter, r *http.Request) {
	yearStr := chi.URLParam(r, "year")
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid year: %s", yearStr))
		return
	}
	if err := calendar.ValidateYear(year); err != nil {
		WriteBadRequest(w, err.Error())
		return
	}

	// Computed fresh rather than loaded: the export needs season links,
	// which are not persisted.
	y, err := calendar.ComputeYear(h.reg, year)
	if err != nil {
		h.logger.Error("failed to compute year for export",
			slog.Int("year", year),
			slog.Any("error", err))
		WriteInternalError(w, "Failed to build calendar")
		return
	}

	html := r.URL.Query().Get("html") == "true"

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", fmt.Sprintf("tridentine-%d.ics", year)))
	if err := ics.Encode(w, []*calendar.Year{y}, html); err != nil {
		h.logger.Error("failed to write calendar",
			slog.Int("year", year),
			slog.Any("error", err))
	}
}

// dayOn returns the resolved day for a date, computing and caching its
// liturgical year on a store miss.
func (h *Handlers) dayOn(ctx context.Context, date time.Time) (calendar.ResolvedDay, error) {
	day, err := h.db.GetDay(ctx, date)
	if err == nil {
		return day, nil
	}
	if !store.IsNotFound(err) {
		return calendar.ResolvedDay{}, err
	}

	y, err := h.yearFor(ctx, calendar.LiturgicalYearOf(date))
	if err != nil {
		return calendar.ResolvedDay{}, err
	}
	day, ok := y.DayOn(date)
	if !ok {
		return calendar.ResolvedDay{}, fmt.Errorf("date %s not in liturgical year %d",
			date.Format("2006-01-02"), y.Year)
	}
	return day, nil
}

// yearFor returns a liturgical year from the store, computing and
// saving it on a miss.
func (h *Handlers) yearFor(ctx context.Context, year int) (*calendar.Year, error) {
	y, err := h.db.GetYear(ctx, year)
	if err == nil {
		return y, nil
	}
	if !store.IsNotFound(err) {
		return nil, err
	}

	y, err = calendar.ComputeYear(h.reg, year)
	if err != nil {
		return nil, err
	}
	if err := h.db.SaveYear(ctx, y); err != nil {
		return nil, err
	}
	return y, nil
}
