package weather

import (
	"fmt"
	"math"

	"github.com/umahmood/haversine"
)

// OutfitRecommendation suggests up to five clothing items for a location's
// current conditions: a temperature band, rain or snow gear, a windbreaker
// above 15 mph and sun protection above UV 6.
func OutfitRecommendation(c CurrentConditions) []string {
	var outfit []string

	switch {
	case c.Temperature < 30:
		outfit = append(outfit, "Heavy winter coat", "Scarf and gloves", "Insulated boots")
	case c.Temperature < 50:
		outfit = append(outfit, "Jacket or coat", "Long pants", "Closed-toe shoes")
	case c.Temperature < 70:
		outfit = append(outfit, "Long sleeve shirt", "Pants or jeans")
	case c.Temperature < 85:
		outfit = append(outfit, "T-shirt", "Shorts or light pants")
	default:
		outfit = append(outfit, "Light breathable clothing", "Shorts", "Hat for sun protection")
	}

	if c.WeatherCode > 60 && c.WeatherCode <= 67 {
		outfit = append(outfit, "Umbrella", "Waterproof shoes")
	} else if c.WeatherCode > 67 {
		outfit = append(outfit, "Waterproof gloves", "Rain gear")
	}

	if c.WindSpeed > 15 {
		outfit = append(outfit, "Windbreaker")
	}
	if c.UVIndex > 6 {
		outfit = append(outfit, "Sunglasses", "Sunscreen")
	}

	if len(outfit) > 5 {
		outfit = outfit[:5]
	}
	return outfit
}

// Advice produces short activity hints for a location, factoring in the
// optional air-quality reading.
func Advice(c CurrentConditions, aqi *AirQuality) []string {
	var advice []string

	switch {
	case c.WeatherCode == 0:
		advice = append(advice, "Beautiful day, perfect for outdoor activities")
	case c.WeatherCode <= 3:
		advice = append(advice, "Partly cloudy, great weather for a walk")
	case c.WeatherCode <= 67:
		advice = append(advice, "Rain expected, bring an umbrella")
	case c.WeatherCode <= 77:
		advice = append(advice, "Snow expected, dress warmly")
	}

	switch {
	case c.Temperature < 32:
		advice = append(advice, "Freezing temps, layer up and protect extremities")
	case c.Temperature < 50:
		advice = append(advice, "Cool weather, jacket recommended")
	case c.Temperature > 85:
		advice = append(advice, "Hot day, stay hydrated and seek shade")
	}

	if c.UVIndex > 7 {
		advice = append(advice, "High UV, wear sunscreen and sunglasses")
	}
	if aqi != nil && aqi.USAQI > 100 {
		advice = append(advice, "Poor air quality, consider limiting outdoor activity")
	}

	if len(advice) == 0 {
		advice = append(advice, "Good weather for most activities")
	}
	return advice
}

// WeatherIconFor maps a WMO weather code onto the display icon. Codes
// 68-77 are the snow band; 78-82 are showers and render as rain again.
func WeatherIconFor(code int) string {
	switch {
	case code == 0:
		return "☀️"
	case code <= 3:
		return "⛅"
	case code <= 67:
		return "🌧️"
	case code <= 77:
		return "🌨️"
	case code <= 82:
		return "🌧️"
	default:
		return "⛈️"
	}
}

// AQILevelFor maps a US AQI value onto the standard EPA display bands.
func AQILevelFor(aqi float64) AQILevel {
	switch {
	case aqi <= 0:
		return AQILevel{Level: "Unknown", Desc: "No data"}
	case aqi <= 50:
		return AQILevel{Level: "Good", Desc: "Air quality is satisfactory"}
	case aqi <= 100:
		return AQILevel{Level: "Moderate", Desc: "Acceptable for most people"}
	case aqi <= 150:
		return AQILevel{Level: "Unhealthy for Sensitive", Desc: "Sensitive groups may be affected"}
	case aqi <= 200:
		return AQILevel{Level: "Unhealthy", Desc: "Everyone may begin to feel effects"}
	case aqi <= 300:
		return AQILevel{Level: "Very Unhealthy", Desc: "Health alert, everyone affected"}
	default:
		return AQILevel{Level: "Hazardous", Desc: "Health warnings of emergency"}
	}
}

// UVLevelFor maps a UV index onto display bands.
func UVLevelFor(uv float64) UVLevel {
	switch {
	case uv <= 2:
		return UVLevel{Level: "Low"}
	case uv <= 5:
		return UVLevel{Level: "Moderate"}
	case uv <= 7:
		return UVLevel{Level: "High"}
	case uv <= 10:
		return UVLevel{Level: "Very High"}
	default:
		return UVLevel{Level: "Extreme"}
	}
}

// Stats builds the head-to-head comparison sentences plus the great-circle
// distance between the two locations.
func Stats(primary, secondary *Snapshot, locA, locB Location) ComparisonStats {
	var stats ComparisonStats

	_, km := haversine.Distance(
		haversine.Coord{Lat: locA.Lat, Lon: locA.Lon},
		haversine.Coord{Lat: locB.Lat, Lon: locB.Lon},
	)
	stats.DistanceKm = math.Round(km*10) / 10

	if primary == nil || secondary == nil {
		return stats
	}

	t1, t2 := primary.Current.Temperature, secondary.Current.Temperature
	warmer, colder := locA.Name, locB.Name
	if t2 > t1 {
		warmer, colder = locB.Name, locA.Name
	}
	stats.Temperature = fmt.Sprintf("%s is %.1f° warmer than %s", warmer, math.Abs(t1-t2), colder)

	h1, h2 := primary.Current.Humidity, secondary.Current.Humidity
	moreHumid := locA.Name
	if h2 > h1 {
		moreHumid = locB.Name
	}
	stats.Humidity = fmt.Sprintf("%s is %.0f%% more humid", moreHumid, math.Abs(h1-h2))

	uvDiff := math.Abs(primary.Current.UVIndex - secondary.Current.UVIndex)
	if uvDiff > 2 {
		stats.UV = fmt.Sprintf("UV index differs by %.1f points", uvDiff)
	} else {
		stats.UV = "Similar UV exposure"
	}

	return stats
}

var moonPhases = [...]MoonPhase{
	{Name: "New Moon", Emoji: "🌑"},
	{Name: "Waxing Crescent", Emoji: "🌒"},
	{Name: "First Quarter", Emoji: "🌓"},
	{Name: "Waxing Gibbous", Emoji: "🌔"},
	{Name: "Full Moon", Emoji: "🌕"},
	{Name: "Waning Gibbous", Emoji: "🌖"},
	{Name: "Last Quarter", Emoji: "🌗"},
	{Name: "Waning Crescent", Emoji: "🌘"},
}

// MoonPhaseFor approximates the synodic phase for a calendar date using a
// Julian-day estimate of the lunation fraction.
func MoonPhaseFor(year, month, day int) MoonPhase {
	if month < 3 {
		year--
		month += 12
	}
	jd := 365.25*float64(year) + 30.6*float64(month+1) + float64(day) - 694039.09
	jd /= 29.5305882
	jd -= math.Trunc(jd)
	idx := int(math.Round(jd * 8))
	if idx >= 8 {
		idx = 0
	}
	return moonPhases[idx]
}
