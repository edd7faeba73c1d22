package weather

import (
	"strings"
	"testing"
)

func TestOutfitTemperatureBands(t *testing.T) {
	cases := []struct {
		temp float64
		want string
	}{
		{20, "Heavy winter coat"},
		{40, "Jacket or coat"},
		{60, "Long sleeve shirt"},
		{75, "T-shirt"},
		{95, "Light breathable clothing"},
	}
	for _, tc := range cases {
		outfit := OutfitRecommendation(CurrentConditions{Temperature: tc.temp})
		if len(outfit) == 0 || outfit[0] != tc.want {
			t.Errorf("outfit at %.0f° = %v, want first item %q", tc.temp, outfit, tc.want)
		}
	}
}

func TestOutfitAddsRainAndSnowGear(t *testing.T) {
	rain := OutfitRecommendation(CurrentConditions{Temperature: 60, WeatherCode: 63})
	if !containsItem(rain, "Umbrella") {
		t.Fatalf("rainy outfit missing umbrella: %v", rain)
	}

	snow := OutfitRecommendation(CurrentConditions{Temperature: 60, WeatherCode: 73})
	if !containsItem(snow, "Rain gear") || containsItem(snow, "Umbrella") {
		t.Fatalf("snowy outfit wrong gear: %v", snow)
	}
}

func TestOutfitCappedAtFiveItems(t *testing.T) {
	// Cold, rainy, windy and sunny all at once piles up suggestions.
	outfit := OutfitRecommendation(CurrentConditions{
		Temperature: 20,
		WeatherCode: 65,
		WindSpeed:   25,
		UVIndex:     8,
	})
	if len(outfit) > 5 {
		t.Fatalf("outfit exceeds five items: %v", outfit)
	}
}

func TestAdviceUsesAirQuality(t *testing.T) {
	c := CurrentConditions{Temperature: 70, WeatherCode: 1}

	without := Advice(c, nil)
	for _, a := range without {
		if strings.Contains(a, "air quality") {
			t.Fatalf("advice mentions AQI without a reading: %v", without)
		}
	}

	with := Advice(c, &AirQuality{USAQI: 150})
	found := false
	for _, a := range with {
		if strings.Contains(a, "air quality") {
			found = true
		}
	}
	if !found {
		t.Fatalf("advice ignores poor air quality: %v", with)
	}
}

func TestAdviceNeverEmpty(t *testing.T) {
	got := Advice(CurrentConditions{Temperature: 70, WeatherCode: 80}, nil)
	if len(got) == 0 {
		t.Fatal("advice should fall back to a default line")
	}
}

func TestWeatherIconBands(t *testing.T) {
	cases := []struct {
		code int
		want string
	}{
		{0, "☀️"},
		{2, "⛅"},
		{45, "🌧️"},
		{61, "🌧️"},
		{71, "🌨️"},
		{80, "🌧️"}, // showers fall back to the rain icon
		{95, "⛈️"},
	}
	for _, tc := range cases {
		if got := WeatherIconFor(tc.code); got != tc.want {
			t.Errorf("WeatherIconFor(%d) = %q, want %q", tc.code, got, tc.want)
		}
	}
}

func TestAQILevelBands(t *testing.T) {
	cases := []struct {
		aqi  float64
		want string
	}{
		{0, "Unknown"},
		{30, "Good"},
		{75, "Moderate"},
		{125, "Unhealthy for Sensitive"},
		{175, "Unhealthy"},
		{250, "Very Unhealthy"},
		{400, "Hazardous"},
	}
	for _, tc := range cases {
		if got := AQILevelFor(tc.aqi); got.Level != tc.want {
			t.Errorf("AQILevelFor(%.0f) = %q, want %q", tc.aqi, got.Level, tc.want)
		}
	}
}

func TestUVLevelBands(t *testing.T) {
	cases := []struct {
		uv   float64
		want string
	}{
		{1, "Low"},
		{4, "Moderate"},
		{6.5, "High"},
		{9, "Very High"},
		{12, "Extreme"},
	}
	for _, tc := range cases {
		if got := UVLevelFor(tc.uv); got.Level != tc.want {
			t.Errorf("UVLevelFor(%.1f) = %q, want %q", tc.uv, got.Level, tc.want)
		}
	}
}

func TestStatsSentences(t *testing.T) {
	oneonta := Location{Name: "Oneonta, NY", Lat: 42.4528, Lon: -75.0638}
	grayCourt := Location{Name: "Gray Court, SC", Lat: 34.6193, Lon: -82.0787}

	a := &Snapshot{Current: CurrentConditions{Temperature: 40, Humidity: 70, UVIndex: 1}}
	b := &Snapshot{Current: CurrentConditions{Temperature: 65, Humidity: 40, UVIndex: 6}}

	stats := Stats(a, b, oneonta, grayCourt)

	if !strings.HasPrefix(stats.Temperature, "Gray Court, SC is 25.0° warmer") {
		t.Errorf("temperature sentence: %q", stats.Temperature)
	}
	if !strings.HasPrefix(stats.Humidity, "Oneonta, NY is 30% more humid") {
		t.Errorf("humidity sentence: %q", stats.Humidity)
	}
	if stats.UV != "UV index differs by 5.0 points" {
		t.Errorf("uv sentence: %q", stats.UV)
	}
	if stats.DistanceKm < 1000 || stats.DistanceKm > 1300 {
		t.Errorf("distance between the two cities looks wrong: %.1f km", stats.DistanceKm)
	}
}

func TestStatsSimilarUV(t *testing.T) {
	a := &Snapshot{Current: CurrentConditions{UVIndex: 3}}
	b := &Snapshot{Current: CurrentConditions{UVIndex: 4}}
	stats := Stats(a, b, Location{Name: "A"}, Location{Name: "B"})
	if stats.UV != "Similar UV exposure" {
		t.Errorf("uv sentence: %q", stats.UV)
	}
}

func TestMoonPhaseForKnownDates(t *testing.T) {
	// Phase names must come out of the fixed eight-phase table.
	valid := map[string]bool{}
	for _, p := range moonPhases {
		valid[p.Name] = true
	}

	for day := 1; day <= 28; day++ {
		got := MoonPhaseFor(2025, 1, day)
		if !valid[got.Name] {
			t.Fatalf("unknown phase %q for 2025-01-%02d", got.Name, day)
		}
	}
}

func containsItem(items []string, want string) bool {
	for _, it := range items {
		if it == want {
			return true
		}
	}
	return false
}
