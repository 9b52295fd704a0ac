package services

import (
	"time"

	"weatherdesk/internal/convert"
	"weatherdesk/internal/models"
)

// MaxUpcomingHours bounds the hourly projection.
const MaxUpcomingHours = 12

// CurrentView is the display projection of the current conditions, with
// temperatures converted to the active unit.
type CurrentView struct {
	Temperature         float64 `json:"temperature"`
	ApparentTemperature float64 `json:"apparent_temperature"`
	UnitSymbol          string  `json:"unit_symbol"`
	Condition           string  `json:"condition"`
	IsDay               bool    `json:"is_day"`
	WindSpeed           float64 `json:"wind_speed"`
	WindDirection       float64 `json:"wind_direction"`
	WindCompass         string  `json:"wind_compass"`
	Humidity            float64 `json:"humidity"`
}

// HourView is one hour of the upcoming projection.
type HourView struct {
	Time                     time.Time `json:"time"`
	Temperature              float64   `json:"temperature"`
	PrecipitationProbability float64   `json:"precipitation_probability"`
}

func convertTemperature(celsius float64, unit models.Unit) float64 {
	if unit == models.UnitFahrenheit {
		return convert.CelsiusToFahrenheit(celsius)
	}
	return celsius
}

// DeriveCurrent projects the snapshot's current conditions into the
// active unit. Returns nil when there is no snapshot.
func DeriveCurrent(snapshot *models.WeatherSnapshot, unit models.Unit) *CurrentView {
	if snapshot == nil {
		return nil
	}

	current := snapshot.Current
	return &CurrentView{
		Temperature:         convertTemperature(current.Temperature, unit),
		ApparentTemperature: convertTemperature(current.ApparentTemperature, unit),
		UnitSymbol:          unit.Symbol(),
		Condition:           convert.WeatherCodeLabel(current.WeatherCode),
		IsDay:               current.IsDay,
		WindSpeed:           current.WindSpeed,
		WindDirection:       current.WindDirection,
		WindCompass:         convert.DegreesToCompass(current.WindDirection),
		Humidity:            current.Humidity,
	}
}

// DeriveUpcomingHours projects the hourly series onto the hours at or
// after now, in chronological order, capped at MaxUpcomingHours. The
// projection is recomputed on every call; with at most a couple of days
// of hourly points there is nothing worth caching.
func DeriveUpcomingHours(snapshot *models.WeatherSnapshot, unit models.Unit, now time.Time) []HourView {
	if snapshot == nil {
		return nil
	}

	hourly := snapshot.Hourly
	hours := make([]HourView, 0, MaxUpcomingHours)

	for i := 0; i < hourly.Len(); i++ {
		if hourly.Time[i].Before(now) {
			continue
		}
		if len(hours) >= MaxUpcomingHours {
			break
		}

		hour := HourView{
			Time:        hourly.Time[i],
			Temperature: convertTemperature(hourly.Temperature[i], unit),
		}
		if i < len(hourly.PrecipitationProbability) {
			hour.PrecipitationProbability = hourly.PrecipitationProbability[i]
		}
		hours = append(hours, hour)
	}

	return hours
}
