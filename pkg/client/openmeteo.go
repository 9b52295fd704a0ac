package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"weatherdesk/internal/models"

	"go.uber.org/zap"
)

const (
	currentFields = "temperature_2m,apparent_temperature,is_day,weather_code,wind_speed_10m,wind_direction_10m,relative_humidity_2m"
	hourlyFields  = "temperature_2m,precipitation_probability,relative_humidity_2m"

	// Open-Meteo timestamps are local wall times without a zone suffix.
	openMeteoTimeLayout = "2006-01-02T15:04"
)

// ForecastClient talks to the Open-Meteo forecast API.
type ForecastClient struct {
	*BaseClient
	baseURL string
}

type forecastResponse struct {
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
	Timezone         string  `json:"timezone"`
	UTCOffsetSeconds int     `json:"utc_offset_seconds"`
	Current          struct {
		Time                string  `json:"time"`
		Temperature2M       float64 `json:"temperature_2m"`
		ApparentTemperature float64 `json:"apparent_temperature"`
		IsDay               int     `json:"is_day"`
		WeatherCode         int     `json:"weather_code"`
		WindSpeed10M        float64 `json:"wind_speed_10m"`
		WindDirection10M    float64 `json:"wind_direction_10m"`
		RelativeHumidity2M  float64 `json:"relative_humidity_2m"`
	} `json:"current"`
	Hourly struct {
		Time                     []string   `json:"time"`
		Temperature2M            []float64  `json:"temperature_2m"`
		PrecipitationProbability []*float64 `json:"precipitation_probability"`
		RelativeHumidity2M       []float64  `json:"relative_humidity_2m"`
	} `json:"hourly"`
}

func NewForecastClient(baseURL string, config ClientConfig, logger *zap.Logger) *ForecastClient {
	return &ForecastClient{
		BaseClient: NewBaseClient("openmeteo", config, logger),
		baseURL:    baseURL,
	}
}

// FetchWeather retrieves the current conditions and hourly series for a
// place in one request. Values stay in the upstream units (Celsius, km/h).
func (c *ForecastClient) FetchWeather(ctx context.Context, place models.Place) (*models.WeatherSnapshot, error) {
	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(place.Latitude, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(place.Longitude, 'f', -1, 64))
	params.Set("current", currentFields)
	params.Set("hourly", hourlyFields)
	params.Set("timezone", "auto")

	data, err := c.Get(ctx, c.baseURL+"/forecast?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch weather: %w", err)
	}

	var response forecastResponse
	if err := json.Unmarshal(data, &response); err != nil {
		return nil, fmt.Errorf("failed to parse forecast response: %w", err)
	}

	hourly, err := parseHourly(&response)
	if err != nil {
		return nil, err
	}

	snapshot := &models.WeatherSnapshot{
		Place: place,
		Current: models.CurrentConditions{
			Temperature:         response.Current.Temperature2M,
			ApparentTemperature: response.Current.ApparentTemperature,
			IsDay:               response.Current.IsDay == 1,
			WeatherCode:         response.Current.WeatherCode,
			WindSpeed:           response.Current.WindSpeed10M,
			WindDirection:       response.Current.WindDirection10M,
			Humidity:            response.Current.RelativeHumidity2M,
		},
		Hourly:    hourly,
		FetchedAt: time.Now(),
	}

	c.logger.Debug("Weather fetched",
		zap.String("place", place.Name),
		zap.Int("hourly_points", hourly.Len()))

	return snapshot, nil
}

func parseHourly(response *forecastResponse) (models.HourlySeries, error) {
	n := len(response.Hourly.Time)
	if len(response.Hourly.Temperature2M) != n {
		return models.HourlySeries{}, fmt.Errorf("hourly series length mismatch: %d times, %d temperatures",
			n, len(response.Hourly.Temperature2M))
	}

	zone := time.FixedZone(response.Timezone, response.UTCOffsetSeconds)

	hourly := models.HourlySeries{
		Time:                     make([]time.Time, 0, n),
		Temperature:              make([]float64, 0, n),
		PrecipitationProbability: make([]float64, 0, n),
		Humidity:                 make([]float64, 0, n),
	}

	for i := 0; i < n; i++ {
		ts, err := time.ParseInLocation(openMeteoTimeLayout, response.Hourly.Time[i], zone)
		if err != nil {
			return models.HourlySeries{}, fmt.Errorf("failed to parse hourly timestamp %q: %w", response.Hourly.Time[i], err)
		}
		hourly.Time = append(hourly.Time, ts)
		hourly.Temperature = append(hourly.Temperature, response.Hourly.Temperature2M[i])

		// Precipitation probability may be missing entirely or null per
		// point; either way it defaults to 0.
		var precip float64
		if i < len(response.Hourly.PrecipitationProbability) && response.Hourly.PrecipitationProbability[i] != nil {
			precip = *response.Hourly.PrecipitationProbability[i]
		}
		hourly.PrecipitationProbability = append(hourly.PrecipitationProbability, precip)

		var humidity float64
		if i < len(response.Hourly.RelativeHumidity2M) {
			humidity = response.Hourly.RelativeHumidity2M[i]
		}
		hourly.Humidity = append(hourly.Humidity, humidity)
	}

	return hourly, nil
}
