package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/armstrongwx/weather-duel/internal/weather"
)

type archivePayload struct {
	Daily struct {
		Time      []string  `json:"time"`
		TempMax   []float64 `json:"temperature_2m_max"`
		TempMin   []float64 `json:"temperature_2m_min"`
		PrecipSum []float64 `json:"precipitation_sum"`
	} `json:"daily"`
}

func (c *Client) fetchArchive(ctx context.Context, loc weather.Location, start, end, daily, unit string) (*archivePayload, error) {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("latitude", fmt.Sprintf("%f", loc.Lat))
		values.Set("longitude", fmt.Sprintf("%f", loc.Lon))
		values.Set("start_date", start)
		values.Set("end_date", end)
		values.Set("daily", daily)
		values.Set("temperature_unit", unit)
		values.Set("timezone", c.timezone)

		u := fmt.Sprintf("%s?%s", c.archiveURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := c.doRequestWithResilience(ctx, c.archiveCB, buildRequest)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload archivePayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding archive response: %w", err)
	}
	return &payload, nil
}

// ArchiveDay fetches the recorded daily extremes for a single past date,
// used for the "this day last year" comparison.
func (c *Client) ArchiveDay(ctx context.Context, loc weather.Location, date, unit string) (*weather.DayExtremes, error) {
	payload, err := c.fetchArchive(ctx, loc, date, date,
		"temperature_2m_max,temperature_2m_min,precipitation_sum", unit)
	if err != nil {
		return nil, err
	}

	d := payload.Daily
	if len(d.Time) == 0 || len(d.TempMax) == 0 || len(d.TempMin) == 0 {
		return nil, fmt.Errorf("archive has no data for %s", date)
	}

	extremes := &weather.DayExtremes{
		Date: d.Time[0],
		High: d.TempMax[0],
		Low:  d.TempMin[0],
	}
	if len(d.PrecipSum) > 0 {
		extremes.PrecipSum = d.PrecipSum[0]
	}
	return extremes, nil
}

// ArchiveRange fetches daily extremes for an inclusive date range, used
// for the trailing 30-day history charts.
func (c *Client) ArchiveRange(ctx context.Context, loc weather.Location, start, end, unit string) ([]weather.HistoryDay, error) {
	payload, err := c.fetchArchive(ctx, loc, start, end,
		"temperature_2m_max,temperature_2m_min", unit)
	if err != nil {
		return nil, err
	}

	d := payload.Daily
	days := make([]weather.HistoryDay, 0, len(d.Time))
	for i, date := range d.Time {
		if i >= len(d.TempMax) || i >= len(d.TempMin) {
			break
		}
		days = append(days, weather.HistoryDay{
			Date: date,
			High: d.TempMax[i],
			Low:  d.TempMin[i],
		})
	}
	return days, nil
}
