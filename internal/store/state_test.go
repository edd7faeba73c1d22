package store

import (
	"path/filepath"
	"testing"

	"github.com/armstrongwx/weather-duel/internal/weather"
)

func TestFileStateStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	s, err := NewFileStateStore(path)
	if err != nil {
		t.Fatal(err)
	}

	settings := weather.Settings{
		Primary:   weather.Location{Name: "Oneonta, NY", Lat: 42.4528, Lon: -75.0638},
		Secondary: weather.Location{Name: "Gray Court, SC", Lat: 34.6193, Lon: -82.0787},
		TempUnit:  "fahrenheit",
	}
	streaks := map[weather.Slot]weather.StreakRecord{
		weather.SlotPrimary: {LastDate: "2025-01-02", LastCondition: weather.ConditionSunny, Count: 4},
	}

	if err := s.Save(settings, streaks); err != nil {
		t.Fatal(err)
	}

	gotSettings, gotStreaks, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	if gotSettings != settings {
		t.Fatalf("settings mismatch:\n got %+v\nwant %+v", gotSettings, settings)
	}
	if gotStreaks[weather.SlotPrimary] != streaks[weather.SlotPrimary] {
		t.Fatalf("streaks mismatch:\n got %+v\nwant %+v", gotStreaks, streaks)
	}
}

func TestFileStateStoreMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.json")
	s, err := NewFileStateStore(path)
	if err != nil {
		t.Fatal(err)
	}

	settings, streaks, err := s.Load()
	if err != nil {
		t.Fatalf("missing file should not be an error, got %v", err)
	}
	if settings.Primary.Name != "" || streaks != nil {
		t.Fatalf("expected zero state, got %+v / %+v", settings, streaks)
	}
}

func TestFileStateStoreEmptyPath(t *testing.T) {
	if _, err := NewFileStateStore(""); err == nil {
		t.Fatal("expected error for empty path")
	}
}
