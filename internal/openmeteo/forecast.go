package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/armstrongwx/weather-duel/internal/weather"
)

const (
	currentVars = "temperature_2m,relative_humidity_2m,apparent_temperature,precipitation,weather_code,wind_speed_10m,uv_index,visibility"
	hourlyVars  = "temperature_2m,precipitation_probability,weather_code,uv_index,wind_speed_10m"
	dailyVars   = "weather_code,temperature_2m_max,temperature_2m_min,sunrise,sunset,precipitation_probability_max,wind_speed_10m_max,uv_index_max"
)

// Forecast fetches current conditions plus 7 days of daily and hourly
// series. Wind comes back in mph and temperatures in the requested unit;
// all timestamps are naive strings in the client's timezone.
func (c *Client) Forecast(ctx context.Context, loc weather.Location, unit string) (*weather.Snapshot, error) {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("latitude", fmt.Sprintf("%f", loc.Lat))
		values.Set("longitude", fmt.Sprintf("%f", loc.Lon))
		values.Set("current", currentVars)
		values.Set("hourly", hourlyVars)
		values.Set("daily", dailyVars)
		values.Set("forecast_days", "7")
		values.Set("temperature_unit", unit)
		values.Set("wind_speed_unit", "mph")
		values.Set("timezone", c.timezone)
		values.Set("past_days", "0")

		u := fmt.Sprintf("%s?%s", c.forecastURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := c.doRequestWithResilience(ctx, c.forecastCB, buildRequest)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var snapshot weather.Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&snapshot); err != nil {
		return nil, fmt.Errorf("decoding forecast response: %w", err)
	}

	if len(snapshot.Daily.Time) == 0 || len(snapshot.Hourly.Time) == 0 {
		return nil, fmt.Errorf("forecast response missing daily or hourly series")
	}

	return &snapshot, nil
}
