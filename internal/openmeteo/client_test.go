package openmeteo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/armstrongwx/weather-duel/internal/weather"
)

func testClient(srv *httptest.Server) *Client {
	c := NewClient(srv.Client(), "America/New_York")
	c.forecastURL = srv.URL + "/forecast"
	c.airQualityURL = srv.URL + "/air-quality"
	c.archiveURL = srv.URL + "/archive"
	c.backoff = BackoffConfig{
		MaxRetries:      2,
		InitialInterval: time.Millisecond,
		MaxInterval:     2 * time.Millisecond,
	}
	return c
}

var testLoc = weather.Location{Name: "Oneonta, NY", Lat: 42.4528, Lon: -75.0638}

func TestForecastRequestAndDecode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("forecast_days") != "7" {
			t.Errorf("forecast_days = %q", q.Get("forecast_days"))
		}
		if q.Get("temperature_unit") != "fahrenheit" {
			t.Errorf("temperature_unit = %q", q.Get("temperature_unit"))
		}
		if q.Get("timezone") != "America/New_York" {
			t.Errorf("timezone = %q", q.Get("timezone"))
		}
		if q.Get("wind_speed_unit") != "mph" {
			t.Errorf("wind_speed_unit = %q", q.Get("wind_speed_unit"))
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"current": {"time":"2025-01-05T10:15","temperature_2m":34.5,"relative_humidity_2m":62,"apparent_temperature":29.1,"weather_code":3,"wind_speed_10m":8.2,"uv_index":1.5,"visibility":24000},
			"daily": {"time":["2025-01-05"],"weather_code":[3],"temperature_2m_max":[38],"temperature_2m_min":[25],"sunrise":["2025-01-05T07:24"],"sunset":["2025-01-05T16:45"],"precipitation_probability_max":[10],"wind_speed_10m_max":[12],"uv_index_max":[2]},
			"hourly": {"time":["2025-01-05T10:00"],"temperature_2m":[34.5],"precipitation_probability":[5],"weather_code":[3],"uv_index":[1.5],"wind_speed_10m":[8.2]}
		}`))
	}))
	defer srv.Close()

	c := testClient(srv)
	snap, err := c.Forecast(context.Background(), testLoc, "fahrenheit")
	if err != nil {
		t.Fatal(err)
	}

	if snap.Current.Temperature != 34.5 || snap.Current.WeatherCode != 3 {
		t.Fatalf("current block decoded wrong: %+v", snap.Current)
	}
	if len(snap.Daily.Time) != 1 || snap.Daily.TempMax[0] != 38 {
		t.Fatalf("daily series decoded wrong: %+v", snap.Daily)
	}
	if len(snap.Hourly.Time) != 1 || snap.Hourly.Temperature[0] != 34.5 {
		t.Fatalf("hourly series decoded wrong: %+v", snap.Hourly)
	}
}

func TestForecastRejectsEmptySeries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"current":{},"daily":{"time":[]},"hourly":{"time":[]}}`))
	}))
	defer srv.Close()

	if _, err := testClient(srv).Forecast(context.Background(), testLoc, "fahrenheit"); err == nil {
		t.Fatal("expected error for empty series")
	}
}

func TestRetryOnServerError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"current":{"us_aqi":42,"pm10":9,"pm2_5":5}}`))
	}))
	defer srv.Close()

	aqi, err := testClient(srv).AirQuality(context.Background(), testLoc)
	if err != nil {
		t.Fatalf("expected retry to recover, got %v", err)
	}
	if aqi.USAQI != 42 || aqi.PM25 != 5 {
		t.Fatalf("air quality decoded wrong: %+v", aqi)
	}
	if calls.Load() != 2 {
		t.Fatalf("expected exactly one retry, saw %d calls", calls.Load())
	}
}

func TestArchiveDay(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("start_date") != "2024-01-05" || q.Get("end_date") != "2024-01-05" {
			t.Errorf("unexpected date range: %s .. %s", q.Get("start_date"), q.Get("end_date"))
		}
		w.Write([]byte(`{"daily":{"time":["2024-01-05"],"temperature_2m_max":[41],"temperature_2m_min":[28],"precipitation_sum":[0.3]}}`))
	}))
	defer srv.Close()

	day, err := testClient(srv).ArchiveDay(context.Background(), testLoc, "2024-01-05", "fahrenheit")
	if err != nil {
		t.Fatal(err)
	}
	if day.High != 41 || day.Low != 28 || day.PrecipSum != 0.3 {
		t.Fatalf("archive day decoded wrong: %+v", day)
	}
}

func TestArchiveDayNoData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"daily":{"time":[]}}`))
	}))
	defer srv.Close()

	if _, err := testClient(srv).ArchiveDay(context.Background(), testLoc, "2024-01-05", "fahrenheit"); err == nil {
		t.Fatal("expected error when archive has no rows")
	}
}

func TestArchiveRangeTruncatesShortArrays(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"daily":{"time":["2025-01-01","2025-01-02"],"temperature_2m_max":[40],"temperature_2m_min":[30]}}`))
	}))
	defer srv.Close()

	days, err := testClient(srv).ArchiveRange(context.Background(), testLoc, "2025-01-01", "2025-01-02", "fahrenheit")
	if err != nil {
		t.Fatal(err)
	}
	if len(days) != 1 {
		t.Fatalf("expected short parallel arrays to truncate, got %d rows", len(days))
	}
}

func TestClientErrorSurfaced(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	_, err := testClient(srv).AirQuality(context.Background(), testLoc)
	if err == nil {
		t.Fatal("expected error for 400 response")
	}
}
