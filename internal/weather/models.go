package weather

import (
	"time"
)

// Condition is a coarse condition category derived from the provider's
// WMO weather code. Code 0 maps to sunny, 1-67 to rainy and everything
// above to snowy. Codes 1-3 (cloudy) landing in the rainy bucket is
// long-standing observable behaviour; keep the partition as is.
type Condition string

const (
	ConditionSunny Condition = "sunny"
	ConditionRainy Condition = "rainy"
	ConditionSnowy Condition = "snowy"
)

// ClassifyCondition buckets a WMO weather code into a streak category.
func ClassifyCondition(code int) Condition {
	switch {
	case code == 0:
		return ConditionSunny
	case code <= 67:
		return ConditionRainy
	default:
		return ConditionSnowy
	}
}

// Slot identifies one of the two compared locations.
type Slot string

const (
	SlotPrimary   Slot = "city1"
	SlotSecondary Slot = "city2"
)

// Location is a user-configured place to compare.
type Location struct {
	Name string  `json:"name" yaml:"name" validate:"required"`
	Lat  float64 `json:"lat" yaml:"lat" validate:"gte=-90,lte=90"`
	Lon  float64 `json:"lon" yaml:"lon" validate:"gte=-180,lte=180"`
}

// Settings is the persisted user configuration for the comparison pair.
// Temperatures everywhere in the service are in TempUnit; no conversion
// happens past the provider boundary.
type Settings struct {
	Primary     Location `json:"city1" yaml:"city1" validate:"required"`
	Secondary   Location `json:"city2" yaml:"city2" validate:"required"`
	TempUnit    string   `json:"tempUnit" yaml:"tempUnit" validate:"oneof=fahrenheit celsius"`
	AutoRefresh bool     `json:"autoRefresh" yaml:"autoRefresh"`
}

// CurrentConditions is the "current" block of the forecast payload.
// UV index and visibility are optional upstream; absent values arrive as 0.
type CurrentConditions struct {
	Time          string  `json:"time"`
	Temperature   float64 `json:"temperature_2m"`
	Humidity      float64 `json:"relative_humidity_2m"`
	ApparentTemp  float64 `json:"apparent_temperature"`
	Precipitation float64 `json:"precipitation"`
	WeatherCode   int     `json:"weather_code"`
	WindSpeed     float64 `json:"wind_speed_10m"`
	UVIndex       float64 `json:"uv_index"`
	Visibility    float64 `json:"visibility"`
}

// DailySeries carries the per-day parallel arrays of the forecast payload.
// All slices are index-aligned with Time; Time is sorted ascending and its
// entries are YYYY-MM-DD keys in the reporting timezone.
type DailySeries struct {
	Time          []string  `json:"time"`
	WeatherCode   []int     `json:"weather_code"`
	TempMax       []float64 `json:"temperature_2m_max"`
	TempMin       []float64 `json:"temperature_2m_min"`
	Sunrise       []string  `json:"sunrise"`
	Sunset        []string  `json:"sunset"`
	PrecipProbMax []int     `json:"precipitation_probability_max"`
	WindSpeedMax  []float64 `json:"wind_speed_10m_max"`
	UVIndexMax    []float64 `json:"uv_index_max"`
}

// HourlySeries carries the per-hour parallel arrays, index-aligned with
// Time; entries are YYYY-MM-DDTHH:00 keys in the reporting timezone.
type HourlySeries struct {
	Time        []string  `json:"time"`
	Temperature []float64 `json:"temperature_2m"`
	PrecipProb  []int     `json:"precipitation_probability"`
	WeatherCode []int     `json:"weather_code"`
	UVIndex     []float64 `json:"uv_index"`
	WindSpeed   []float64 `json:"wind_speed_10m"`
}

// Snapshot is one location's full forecast bundle as returned by the
// provider, normalized into typed series.
type Snapshot struct {
	Current CurrentConditions `json:"current"`
	Daily   DailySeries       `json:"daily"`
	Hourly  HourlySeries      `json:"hourly"`
}

// AirQuality is the optional air-quality reading for a location.
type AirQuality struct {
	USAQI float64 `json:"us_aqi"`
	PM10  float64 `json:"pm10"`
	PM25  float64 `json:"pm2_5"`
}

// DayExtremes is a single archived day, used for the prior-year comparison.
type DayExtremes struct {
	Date      string  `json:"date"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	PrecipSum float64 `json:"precipSum"`
}

// HistoryDay is one row of the trailing 30-day archive series.
type HistoryDay struct {
	Date string  `json:"date"`
	High float64 `json:"high"`
	Low  float64 `json:"low"`
}

// StreakRecord tracks consecutive days of the same condition category for
// one location. Count is at least 1 once a streak exists.
type StreakRecord struct {
	LastDate      string    `json:"lastDate"`
	LastCondition Condition `json:"lastCondition"`
	Count         int       `json:"count"`
}

// BattleSide is one location's half of a battle verdict.
type BattleSide struct {
	Slot    Slot     `json:"key"`
	City    string   `json:"city"`
	Score   int      `json:"score"`
	Reasons []string `json:"reasons"`
}

// BattleResult is the comfort-score verdict between the two locations.
// Reasons are present on the winner only, and only when scores differ.
type BattleResult struct {
	Winner BattleSide `json:"winner"`
	Loser  BattleSide `json:"loser"`
}

// SideView bundles everything the display layer needs for one location.
type SideView struct {
	Location   Location      `json:"location"`
	Snapshot   *Snapshot     `json:"snapshot"`
	Icon       string        `json:"icon"`
	UVLevel    *UVLevel      `json:"uvLevel,omitempty"`
	AirQuality *AirQuality   `json:"airQuality,omitempty"`
	AQILevel   *AQILevel     `json:"aqiLevel,omitempty"`
	LastYear   *DayExtremes  `json:"lastYear,omitempty"`
	History    []HistoryDay  `json:"history30Days,omitempty"`
	Advice     []string      `json:"advice"`
	Outfit     []string      `json:"outfit"`
	Streak     *StreakRecord `json:"streak,omitempty"`

	// Alignment anchors into the snapshot's daily/hourly series.
	TodayIndex int `json:"todayIndex"`
	HourIndex  int `json:"hourIndex"`
}

// ComparisonView is the full assembled output of one refresh cycle.
type ComparisonView struct {
	Timestamp time.Time       `json:"timestamp"` // always UTC
	Primary   SideView        `json:"city1"`
	Secondary SideView        `json:"city2"`
	Battle    BattleResult    `json:"battle"`
	Stats     ComparisonStats `json:"stats"`
	MoonPhase MoonPhase       `json:"moonPhase"`
}

// ComparisonStats holds the human-readable head-to-head sentences.
type ComparisonStats struct {
	Temperature string  `json:"temp"`
	Humidity    string  `json:"humidity"`
	UV          string  `json:"uv"`
	DistanceKm  float64 `json:"distanceKm"`
}

// MoonPhase is the current synodic phase shared by both locations.
type MoonPhase struct {
	Name  string `json:"name"`
	Emoji string `json:"emoji"`
}

// AQILevel is a display band for a US AQI value.
type AQILevel struct {
	Level string `json:"level"`
	Desc  string `json:"desc"`
}

// UVLevel is a display band for a UV index value.
type UVLevel struct {
	Level string `json:"level"`
}
