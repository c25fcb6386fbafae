package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/goccy/go-json"
	"github.com/robfig/cron/v3"

	"agendacal/internal/agenda"
	"agendacal/internal/calendar"
	"agendacal/internal/ics"
	appLog "agendacal/internal/log"
	"agendacal/internal/model"
	"agendacal/internal/pagination"
	"agendacal/internal/snapshot"
)

const (
	viewAgenda = "agenda"
	viewWeek   = "week"
	viewMonth  = "month"
)

// icsHorizon is how far around now a timetable feed is expanded.
const icsHorizon = 6

// source locates the data for one run: the snapshot and an optional
// timetable feed merged into it.
type source struct {
	snapshotPath string
	icsPath      string
	loc          *time.Location
}

func (s source) load(now time.Time) (*snapshot.Snapshot, error) {
	snap, err := snapshot.Load(s.snapshotPath)
	if err != nil {
		return nil, err
	}
	if s.icsPath == "" {
		return snap, nil
	}

	body, err := os.ReadFile(s.icsPath)
	if err != nil {
		return nil, err
	}
	feed, err := ics.ParseTimetable(body, ics.ExpandConfig{
		Location:   s.loc,
		RangeStart: now.AddDate(0, -icsHorizon, 0),
		RangeEnd:   now.AddDate(0, icsHorizon, 0),
	})
	if err != nil {
		return nil, fmt.Errorf("timetable %s: %w", s.icsPath, err)
	}
	appLog.Debug("timetable merged", "path", s.icsPath,
		"lectures", len(feed.Lectures), "deadlines", len(feed.Deadlines))
	snap.Sources = snap.Sources.Merge(feed)
	return snap, nil
}

// renderView writes one view of snap as indented JSON.
func renderView(w io.Writer, snap *snapshot.Snapshot, view string, page int, now time.Time, loc *time.Location) error {
	var out any
	switch view {
	case viewAgenda:
		out = agendaPage(snap, page, now, loc)
	case viewWeek:
		win := pagination.WeekWindow(page, now, loc)
		out = agenda.BuildWeek(snap.Sources, snap.Preferences, win.From, agenda.Options{Now: now, Location: loc})
	case viewMonth:
		first := time.Date(now.In(loc).Year(), now.In(loc).Month()+time.Month(page), 1, 0, 0, 0, 0, loc)
		out = calendar.MonthGrid(first.Year(), first.Month(), now, loc)
	default:
		return fmt.Errorf("unknown view %q", view)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// agendaPage loads pages from 0 towards page one window at a time, the way
// an infinite scroll would, and returns the days of the last one.
func agendaPage(snap *snapshot.Snapshot, page int, now time.Time, loc *time.Location) []model.AgendaDay {
	items := agenda.Filter(agenda.Normalize(snap.Sources, loc), snap.Preferences, loc)

	step := 1
	if page < 0 {
		step = -1
	}
	cur := pagination.NewCursor[[]model.AgendaDay](0)
	for p := 0; ; p += step {
		win := pagination.MonthWindow(p, now)
		cur = cur.Commit(p, agenda.GroupByDay(agenda.InRange(items, win.Range()), loc, now))
		if p == page {
			break
		}
	}

	days, _ := cur.Current()
	return days
}

// liveNow returns the agenda items in progress at now.
func liveNow(snap *snapshot.Snapshot, now time.Time, loc *time.Location) []model.AgendaItem {
	days := agenda.Build(snap.Sources, snap.Preferences, agenda.Options{Now: now, Location: loc})
	return agenda.LiveItems(days, now)
}

// startWatch re-reads the data on schedule and logs the live items. The
// returned cron is already running.
func startWatch(schedule string, src source) (*cron.Cron, error) {
	logger := cronLogger{}
	c := cron.New(
		cron.WithLocation(src.loc),
		cron.WithLogger(logger),
		cron.WithChain(cron.SkipIfStillRunning(logger)),
	)

	_, err := c.AddFunc(schedule, func() {
		now := time.Now()
		snap, err := src.load(now)
		if err != nil {
			appLog.Error("watch: snapshot load failed", err, "path", src.snapshotPath)
			return
		}
		live := liveNow(snap, now, src.loc)
		if len(live) == 0 {
			appLog.Debug("watch: nothing live")
			return
		}
		for _, item := range live {
			appLog.Info("watch: live",
				"key", item.Key,
				"type", string(item.Type),
				"title", item.Title,
				"until", item.End.In(src.loc).Format("15:04"),
			)
		}
	})
	if err != nil {
		return nil, err
	}

	appLog.Info("watch started", "schedule", schedule, "timezone", src.loc.String())
	c.Start()
	return c, nil
}

// cronLogger routes cron's own messages (skips, panics) through appLog.
// cron logs routine scheduling at info level, so that goes to Debug.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...any) {
	appLog.Debug("cron: "+msg, keysAndValues...)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...any) {
	appLog.Error("cron: "+msg, err, keysAndValues...)
}
