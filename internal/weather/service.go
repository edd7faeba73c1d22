package weather

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// ErrSuperseded is returned when a refresh cycle finished after a newer
// one had already started; its results are discarded so stale data never
// overwrites a fresher view.
var ErrSuperseded = errors.New("refresh superseded by a newer request")

// Service orchestrates refresh cycles: it fans out the upstream fetches
// for both locations, runs the pure comparison core over the results and
// keeps settings and streaks persisted.
type Service struct {
	fetcher  Fetcher
	views    ViewStore
	state    StateStore
	timeline *Timeline
	log      *logrus.Logger

	mu         sync.Mutex
	settings   Settings
	streaks    map[Slot]StreakRecord
	generation uint64
}

// NewService creates a Service. Previously persisted settings and streaks
// are loaded from the state store; defaults apply when nothing was saved
// yet.
func NewService(fetcher Fetcher, views ViewStore, state StateStore, timeline *Timeline, defaults Settings, log *logrus.Logger) *Service {
	settings, streaks, err := state.Load()
	if err != nil {
		log.WithError(err).Warn("could not load persisted state, using defaults")
		settings = defaults
		streaks = nil
	}
	if settings.Primary.Name == "" {
		settings = defaults
	}
	if streaks == nil {
		streaks = make(map[Slot]StreakRecord)
	}

	return &Service{
		fetcher:  fetcher,
		views:    views,
		state:    state,
		timeline: timeline,
		log:      log,
		settings: settings,
		streaks:  streaks,
	}
}

// sideData collects one location's fetch results for a refresh cycle.
// Only the forecast error is fatal; the rest degrade to absent fields.
type sideData struct {
	snapshot *Snapshot
	err      error
	aqi      *AirQuality
	lastYear *DayExtremes
	history  []HistoryDay
}

// Refresh runs one full refresh cycle. The eight upstream requests (four
// per location) run concurrently; the cycle fails only when a forecast
// fetch fails, in which case the previously stored view stays current. A
// cycle that was superseded by a newer Refresh call returns ErrSuperseded
// and stores nothing.
func (s *Service) Refresh(ctx context.Context) (*ComparisonView, error) {
	s.mu.Lock()
	s.generation++
	gen := s.generation
	settings := s.settings
	s.mu.Unlock()

	lastYearDate := s.timeline.DateKeyYearsAgo(1)
	historyStart := s.timeline.DateKeyDaysAgo(30)
	historyEnd := s.timeline.CurrentDateKey()

	var wg sync.WaitGroup
	sides := make([]sideData, 2)
	locs := [2]Location{settings.Primary, settings.Secondary}

	for i := range locs {
		i, loc := i, locs[i]

		wg.Add(1)
		go func() {
			defer wg.Done()
			sides[i].snapshot, sides[i].err = s.fetcher.Forecast(ctx, loc, settings.TempUnit)
		}()

		wg.Add(1)
		go func() {
			defer wg.Done()
			aqi, err := s.fetcher.AirQuality(ctx, loc)
			if err != nil {
				s.log.WithError(err).WithField("city", loc.Name).Warn("air quality fetch failed, omitting")
				return
			}
			sides[i].aqi = aqi
		}()

		wg.Add(1)
		go func() {
			defer wg.Done()
			ly, err := s.fetcher.ArchiveDay(ctx, loc, lastYearDate, settings.TempUnit)
			if err != nil {
				s.log.WithError(err).WithField("city", loc.Name).Warn("prior-year fetch failed, omitting")
				return
			}
			sides[i].lastYear = ly
		}()

		wg.Add(1)
		go func() {
			defer wg.Done()
			hist, err := s.fetcher.ArchiveRange(ctx, loc, historyStart, historyEnd, settings.TempUnit)
			if err != nil {
				s.log.WithError(err).WithField("city", loc.Name).Warn("30-day history fetch failed, omitting")
				return
			}
			sides[i].history = hist
		}()
	}

	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for i := range sides {
		if sides[i].err != nil {
			return nil, fmt.Errorf("fetching forecast for %s: %w", locs[i].Name, sides[i].err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.generation != gen {
		return nil, ErrSuperseded
	}

	// Streaks move at most once per calendar day, no matter how many
	// refreshes happen.
	today := s.timeline.CurrentDateKey()
	for i, slot := range [2]Slot{SlotPrimary, SlotSecondary} {
		if sides[i].snapshot == nil {
			continue
		}
		s.streaks[slot] = UpdateStreak(s.streaks[slot], today, sides[i].snapshot.Current.WeatherCode)
	}
	if err := s.state.Save(s.settings, s.streaks); err != nil {
		s.log.WithError(err).Warn("persisting streak state failed")
	}

	year, month, day := s.timeline.Today()
	view := ComparisonView{
		Timestamp: time.Now().UTC(),
		Primary:   s.buildSide(settings.Primary, sides[0], s.streaks[SlotPrimary]),
		Secondary: s.buildSide(settings.Secondary, sides[1], s.streaks[SlotSecondary]),
		Battle:    Battle(sides[0].snapshot, sides[1].snapshot, settings.Primary.Name, settings.Secondary.Name),
		Stats:     Stats(sides[0].snapshot, sides[1].snapshot, settings.Primary, settings.Secondary),
		MoonPhase: MoonPhaseFor(year, month, day),
	}

	s.views.SaveView(view)
	return &view, nil
}

func (s *Service) buildSide(loc Location, d sideData, streak StreakRecord) SideView {
	side := SideView{
		Location:   loc,
		Snapshot:   d.snapshot,
		AirQuality: d.aqi,
		LastYear:   d.lastYear,
		History:    d.history,
	}

	if d.aqi != nil {
		lvl := AQILevelFor(d.aqi.USAQI)
		side.AQILevel = &lvl
	}
	if d.snapshot != nil {
		side.TodayIndex = s.timeline.FindDayIndex(d.snapshot.Daily.Time)
		side.HourIndex = s.timeline.FindHourIndex(d.snapshot.Hourly.Time)
		side.Icon = WeatherIconFor(d.snapshot.Current.WeatherCode)
		uv := UVLevelFor(d.snapshot.Current.UVIndex)
		side.UVLevel = &uv
		side.Advice = Advice(d.snapshot.Current, d.aqi)
		side.Outfit = OutfitRecommendation(d.snapshot.Current)
	}
	if streak.Count > 0 {
		rec := streak
		side.Streak = &rec
	}
	return side
}

// Latest returns the most recently stored comparison view.
func (s *Service) Latest() (ComparisonView, error) {
	return s.views.Latest()
}

// Range returns stored views between from and to, inclusive.
func (s *Service) Range(from, to time.Time) ([]ComparisonView, error) {
	return s.views.Range(from, to)
}

// CurrentSettings returns a copy of the active settings.
func (s *Service) CurrentSettings() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// Streaks returns a copy of the current streak records.
func (s *Service) Streaks() map[Slot]StreakRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[Slot]StreakRecord, len(s.streaks))
	for k, v := range s.streaks {
		out[k] = v
	}
	return out
}

// ApplySettings replaces the active settings and persists them. Callers
// are expected to trigger a Refresh afterwards so the view reflects the
// new pair.
func (s *Service) ApplySettings(settings Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.settings = settings
	if err := s.state.Save(s.settings, s.streaks); err != nil {
		return fmt.Errorf("persisting settings: %w", err)
	}
	return nil
}
