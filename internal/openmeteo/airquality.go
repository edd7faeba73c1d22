package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/armstrongwx/weather-duel/internal/weather"
)

// AirQuality fetches the current US AQI and particulate readings for a
// location.
func (c *Client) AirQuality(ctx context.Context, loc weather.Location) (*weather.AirQuality, error) {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("latitude", fmt.Sprintf("%f", loc.Lat))
		values.Set("longitude", fmt.Sprintf("%f", loc.Lon))
		values.Set("current", "us_aqi,pm10,pm2_5")

		u := fmt.Sprintf("%s?%s", c.airQualityURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := c.doRequestWithResilience(ctx, c.airQualityCB, buildRequest)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload struct {
		Current weather.AirQuality `json:"current"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding air quality response: %w", err)
	}

	return &payload.Current, nil
}
