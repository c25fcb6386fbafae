package web

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"agendacal/internal/agenda"
	"agendacal/internal/calendar"
	"agendacal/internal/config"
	"agendacal/internal/ics"
	appLog "agendacal/internal/log"
	"agendacal/internal/model"
	"agendacal/internal/pagination"
	"agendacal/internal/snapshot"
)

const (
	readTimeout     = 10 * time.Second
	writeTimeout    = 30 * time.Second
	shutdownTimeout = 5 * time.Second
)

// Server exposes the agenda, week, calendar and live views over HTTP.
// The snapshot is re-read on every request so edits on disk show up
// without a restart.
type Server struct {
	cfg    *config.Config
	loc    *time.Location
	clock  func() time.Time
	router chi.Router
}

// NewServer constructs a Server. clock may be nil, in which case time.Now
// is used.
func NewServer(cfg *config.Config, clock func() time.Time) (*Server, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	if clock == nil {
		clock = time.Now
	}
	s := &Server{
		cfg:    cfg,
		loc:    loc,
		clock:  clock,
		router: chi.NewRouter(),
	}
	s.registerRoutes()
	return s, nil
}

// Handler returns the underlying http.Handler for this server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// StartServer serves on cfg.Listen until ctx is cancelled, then shuts down
// gracefully.
func StartServer(ctx context.Context, cfg *config.Config) error {
	s, err := NewServer(cfg, nil)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         cfg.Listen,
		Handler:      s.Handler(),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		appLog.Info("starting HTTP server", "listen", "http://"+cfg.Listen)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

func (s *Server) registerRoutes() {
	r := s.router
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	// /health is always reachable without credentials.
	r.Get("/health", s.handleHealth)

	r.Group(func(r chi.Router) {
		if auth := s.cfg.BasicAuth; auth != nil {
			appLog.Info("HTTP basic auth enabled", "listen", "http://"+s.cfg.Listen)
			r.Use(middleware.BasicAuth("agendacal", map[string]string{auth.Username: auth.Password}))
		}
		r.Get("/api/agenda", s.handleAgenda)
		r.Get("/api/agenda.ics", s.handleAgendaICS)
		r.Get("/api/week", s.handleWeek)
		r.Get("/api/calendar", s.handleCalendar)
		r.Get("/api/live", s.handleLive)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

type agendaResponse struct {
	Page   int               `json:"page"`
	Window pagination.Window `json:"window"`
	Days   []model.AgendaDay `json:"days"`
}

// handleAgenda returns one page of the day-grouped agenda.
//
// GET /api/agenda?page=0
//   - page: window index; 0 is centred on now, each step is two months.
func (s *Server) handleAgenda(w http.ResponseWriter, r *http.Request) {
	page, ok := s.intParam(w, r, "page", 0)
	if !ok {
		return
	}
	snap, ok := s.loadSnapshot(w, r)
	if !ok {
		return
	}

	now := s.clock()
	win := pagination.MonthWindow(page, now)
	appLog.Debug("api agenda request", "page", page,
		"from", win.From.Format(time.RFC3339), "to", win.To.Format(time.RFC3339))

	days := s.daysIn(snap, win.Range(), now)
	render.JSON(w, r, agendaResponse{Page: page, Window: win, Days: days})
}

// handleAgendaICS exports the current agenda page as an iCalendar feed.
func (s *Server) handleAgendaICS(w http.ResponseWriter, r *http.Request) {
	page, ok := s.intParam(w, r, "page", 0)
	if !ok {
		return
	}
	snap, ok := s.loadSnapshot(w, r)
	if !ok {
		return
	}

	now := s.clock()
	days := s.daysIn(snap, pagination.MonthWindow(page, now).Range(), now)

	var buf bytes.Buffer
	if err := ics.Export(&buf, days, now); err != nil {
		appLog.Error("api agenda.ics: export failed", err)
		s.writeError(w, r, http.StatusInternalServerError, "failed to export agenda")
		return
	}
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

type weekResponse struct {
	Offset int              `json:"offset"`
	Week   model.AgendaWeek `json:"week"`
}

// handleWeek returns the Monday..Sunday week offset weeks from now.
func (s *Server) handleWeek(w http.ResponseWriter, r *http.Request) {
	offset, ok := s.intParam(w, r, "offset", 0)
	if !ok {
		return
	}
	snap, ok := s.loadSnapshot(w, r)
	if !ok {
		return
	}

	now := s.clock()
	win := pagination.WeekWindow(offset, now, s.loc)
	week := agenda.BuildWeek(snap.Sources, snap.Preferences, win.From, s.options(now))
	render.JSON(w, r, weekResponse{Offset: offset, Week: week})
}

type calendarResponse struct {
	Year  int                  `json:"year"`
	Month int                  `json:"month"`
	Weeks []model.CalendarWeek `json:"weeks"`
}

// handleCalendar returns the month grid. Year and month default to the
// current ones.
func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	now := s.clock().In(s.loc)
	year, ok := s.intParam(w, r, "year", now.Year())
	if !ok {
		return
	}
	month, ok := s.intParam(w, r, "month", int(now.Month()))
	if !ok {
		return
	}
	if month < 1 || month > 12 {
		s.writeError(w, r, http.StatusBadRequest, "month must be between 1 and 12")
		return
	}

	weeks := calendar.MonthGrid(year, time.Month(month), now, s.loc)
	render.JSON(w, r, calendarResponse{Year: year, Month: month, Weeks: weeks})
}

type liveResponse struct {
	At    time.Time          `json:"at"`
	Items []model.AgendaItem `json:"items"`
}

// handleLive lists the items in progress right now.
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.loadSnapshot(w, r)
	if !ok {
		return
	}
	now := s.clock()
	days := agenda.Build(snap.Sources, snap.Preferences, s.options(now))
	items := agenda.LiveItems(days, now)
	if items == nil {
		items = []model.AgendaItem{}
	}
	render.JSON(w, r, liveResponse{At: now.In(s.loc), Items: items})
}

func (s *Server) options(now time.Time) agenda.Options {
	return agenda.Options{Now: now, Location: s.loc}
}

// daysIn builds the agenda from the items starting inside rng.
func (s *Server) daysIn(snap *snapshot.Snapshot, rng model.DateRange, now time.Time) []model.AgendaDay {
	items := agenda.Filter(agenda.Normalize(snap.Sources, s.loc), snap.Preferences, s.loc)
	return agenda.GroupByDay(agenda.InRange(items, rng), s.loc, now)
}

func (s *Server) loadSnapshot(w http.ResponseWriter, r *http.Request) (*snapshot.Snapshot, bool) {
	snap, err := snapshot.Load(s.cfg.Snapshot)
	if err != nil {
		appLog.Error("snapshot load failed", err, "path", s.cfg.Snapshot)
		s.writeError(w, r, http.StatusInternalServerError, "failed to load snapshot")
		return nil, false
	}
	return snap, true
}

// intParam reads an optional integer query parameter. On a malformed value
// it writes a 400 response and returns false.
func (s *Server) intParam(w http.ResponseWriter, r *http.Request, name string, def int) (int, bool) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, true
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, "invalid "+name+" parameter")
		return 0, false
	}
	return n, true
}

type errResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	render.Status(r, status)
	render.JSON(w, r, errResponse{Error: msg})
}
