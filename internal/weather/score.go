package weather

import "math"

// Comfort scoring constants. Temperatures are in whatever unit the user
// configured; the ideal band was calibrated for Fahrenheit and is applied
// to the raw numbers either way, matching how the score has always behaved.
const (
	idealTemp     = 75.0
	hotThreshold  = 85.0
	idealHumidity = 50.0
)

func clamp01(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}

// ComfortScore rates a location's current conditions on a 0-100 scale,
// higher is better. Starts at 50 and adjusts for temperature, humidity,
// UV and precipitation, then clamps.
func ComfortScore(c CurrentConditions) int {
	s := 50.0

	// Temperature: up to +25 near the ideal, an extra penalty of up to
	// -25 once more than 15 degrees off.
	td := math.Abs(c.Temperature - idealTemp)
	s += 25 * clamp01(1-td/30)
	s -= 25 * clamp01((td-15)/20)

	// Humidity: up to +10 near 50%, down to -10 when very dry or muggy.
	hd := math.Abs(c.Humidity - idealHumidity)
	s += 10 * clamp01(1-hd/50)
	s -= 10 * clamp01((hd-20)/40)

	// UV penalty kicks in above index 8.
	if c.UVIndex > 8 {
		s -= 10 * clamp01((c.UVIndex-8)/4)
	}

	// Rain band (60,67] loses 10; snow and storms above that lose 20.
	if c.WeatherCode > 60 && c.WeatherCode <= 67 {
		s -= 10
	}
	if c.WeatherCode > 67 {
		s -= 20
	}

	return int(math.Max(0, math.Min(100, math.Round(s))))
}

// Battle scores both locations and picks a winner. Ties go to the primary
// location and produce no reasons. Reasons are emitted for the winner in a
// fixed priority order, each only when its condition holds.
func Battle(primary, secondary *Snapshot, primaryCity, secondaryCity string) BattleResult {
	if primary == nil || secondary == nil {
		return BattleResult{
			Winner: BattleSide{Slot: SlotPrimary, City: primaryCity, Reasons: []string{}},
			Loser:  BattleSide{Slot: SlotSecondary, City: secondaryCity, Reasons: []string{}},
		}
	}

	s1 := ComfortScore(primary.Current)
	s2 := ComfortScore(secondary.Current)

	winner := BattleSide{Slot: SlotPrimary, City: primaryCity, Score: s1}
	loser := BattleSide{Slot: SlotSecondary, City: secondaryCity, Score: s2}
	w, l := primary.Current, secondary.Current
	if s2 > s1 {
		winner, loser = BattleSide{Slot: SlotSecondary, City: secondaryCity, Score: s2},
			BattleSide{Slot: SlotPrimary, City: primaryCity, Score: s1}
		w, l = secondary.Current, primary.Current
	}

	reasons := []string{}
	if s1 != s2 {
		if w.Temperature < hotThreshold && l.Temperature > hotThreshold {
			reasons = append(reasons, "More comfortable temperature")
		}
		if math.Abs(w.Temperature-idealTemp) < math.Abs(l.Temperature-idealTemp) {
			reasons = append(reasons, "Closer to ideal temp")
		}
		if w.Humidity < l.Humidity {
			reasons = append(reasons, "Less humidity")
		}
		if w.UVIndex < l.UVIndex {
			reasons = append(reasons, "Lower UV exposure")
		}
		if w.WeatherCode < l.WeatherCode {
			reasons = append(reasons, "Better weather conditions")
		}
	}
	winner.Reasons = reasons
	loser.Reasons = []string{}

	return BattleResult{Winner: winner, Loser: loser}
}
