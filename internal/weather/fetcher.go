package weather

import (
	"context"
	"time"
)

// Fetcher abstracts the upstream weather data source. Forecast is the
// primary call; the other three are auxiliary and callers tolerate their
// failure.
type Fetcher interface {
	// Forecast fetches current conditions plus the 7-day daily and hourly
	// series for a location, in the given temperature unit.
	Forecast(ctx context.Context, loc Location, unit string) (*Snapshot, error)

	// AirQuality fetches the current air-quality reading for a location.
	AirQuality(ctx context.Context, loc Location) (*AirQuality, error)

	// ArchiveDay fetches the recorded extremes for a single past date
	// (YYYY-MM-DD).
	ArchiveDay(ctx context.Context, loc Location, date, unit string) (*DayExtremes, error)

	// ArchiveRange fetches daily extremes for an inclusive past date range.
	ArchiveRange(ctx context.Context, loc Location, start, end, unit string) ([]HistoryDay, error)
}

// ViewStore is the contract for keeping assembled comparison views.
type ViewStore interface {
	SaveView(v ComparisonView)
	Latest() (ComparisonView, error)
	Range(from, to time.Time) ([]ComparisonView, error)
}

// StateStore persists user settings and streak records across restarts.
type StateStore interface {
	Load() (Settings, map[Slot]StreakRecord, error)
	Save(settings Settings, streaks map[Slot]StreakRecord) error
}
