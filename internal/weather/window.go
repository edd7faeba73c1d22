package weather

// at returns xs[i] or the zero value when i is out of range. Provider
// series are documented as index-aligned, but a short array must degrade
// to a zero cell rather than a panic.
func at[T any](xs []T, i int) T {
	if i >= 0 && i < len(xs) {
		return xs[i]
	}
	var zero T
	return zero
}

// ForecastDay is one display row of the aligned daily forecast window.
type ForecastDay struct {
	Date        string  `json:"date"`
	Label       string  `json:"label"`
	ShortDate   string  `json:"shortDate"`
	FullDate    string  `json:"fullDate"`
	WeatherCode int     `json:"weatherCode"`
	Icon        string  `json:"icon"`
	High        float64 `json:"high"`
	Low         float64 `json:"low"`
	PrecipProb  int     `json:"precipProb"`
	UVMax       float64 `json:"uvMax"`
	Sunrise     string  `json:"sunrise"`
	Sunset      string  `json:"sunset"`
}

// ForecastWindow slices up to days entries of the daily series starting at
// start, formatting dates and sun times for display. The window is capped
// to the available data.
func ForecastWindow(s *Snapshot, start, days int) []ForecastDay {
	if s == nil || start < 0 {
		return nil
	}
	end := ClampWindow(start, days, len(s.Daily.Time))

	out := make([]ForecastDay, 0, end-start)
	for i := start; i < end; i++ {
		date := s.Daily.Time[i]
		out = append(out, ForecastDay{
			Date:        date,
			Label:       FormatDayLabel(date),
			ShortDate:   FormatShortDate(date),
			FullDate:    FormatFullDate(date),
			WeatherCode: at(s.Daily.WeatherCode, i),
			Icon:        WeatherIconFor(at(s.Daily.WeatherCode, i)),
			High:        at(s.Daily.TempMax, i),
			Low:         at(s.Daily.TempMin, i),
			PrecipProb:  at(s.Daily.PrecipProbMax, i),
			UVMax:       at(s.Daily.UVIndexMax, i),
			Sunrise:     FormatClock(at(s.Daily.Sunrise, i)),
			Sunset:      FormatClock(at(s.Daily.Sunset, i)),
		})
	}
	return out
}

// HourlyRow is one display row of the aligned hourly window.
type HourlyRow struct {
	Time        string  `json:"time"`
	Label       string  `json:"label"`
	Temperature float64 `json:"temp"`
	PrecipProb  int     `json:"precipProb"`
	UVIndex     float64 `json:"uv"`
	WindSpeed   float64 `json:"wind"`
	WeatherCode int     `json:"weatherCode"`
	Icon        string  `json:"icon"`
}

// HourlyWindow slices up to hours entries of the hourly series starting at
// start, capped to the available data.
func HourlyWindow(s *Snapshot, start, hours int) []HourlyRow {
	if s == nil || start < 0 {
		return nil
	}
	end := ClampWindow(start, hours, len(s.Hourly.Time))

	out := make([]HourlyRow, 0, end-start)
	for i := start; i < end; i++ {
		out = append(out, hourlyRowAt(s, i))
	}
	return out
}

// HoursForDate returns every hourly row whose key falls on the given
// YYYY-MM-DD date, for the per-day detail view.
func HoursForDate(s *Snapshot, date string) []HourlyRow {
	if s == nil {
		return nil
	}

	var out []HourlyRow
	for i, key := range s.Hourly.Time {
		if len(key) < 10 || key[:10] != date {
			continue
		}
		out = append(out, hourlyRowAt(s, i))
	}
	return out
}

func hourlyRowAt(s *Snapshot, i int) HourlyRow {
	key := at(s.Hourly.Time, i)
	return HourlyRow{
		Time:        key,
		Label:       FormatClock(key),
		Temperature: at(s.Hourly.Temperature, i),
		PrecipProb:  at(s.Hourly.PrecipProb, i),
		UVIndex:     at(s.Hourly.UVIndex, i),
		WindSpeed:   at(s.Hourly.WindSpeed, i),
		WeatherCode: at(s.Hourly.WeatherCode, i),
		Icon:        WeatherIconFor(at(s.Hourly.WeatherCode, i)),
	}
}
