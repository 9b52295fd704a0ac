package models

import (
	"time"
)

// Place is a single geocoding result. Immutable once received.
type Place struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Admin1    string  `json:"admin1,omitempty"`
	Country   string  `json:"country,omitempty"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Label renders the place with its region/country qualifiers for display.
func (p Place) Label() string {
	label := p.Name
	if p.Admin1 != "" {
		label += ", " + p.Admin1
	}
	if p.Country != "" {
		label += ", " + p.Country
	}
	return label
}

// CurrentConditions is an immutable snapshot of the present weather.
// Temperatures are Celsius and wind speed km/h, as received upstream.
type CurrentConditions struct {
	Temperature         float64 `json:"temperature"`
	ApparentTemperature float64 `json:"apparent_temperature"`
	IsDay               bool    `json:"is_day"`
	WeatherCode         int     `json:"weather_code"`
	WindSpeed           float64 `json:"wind_speed"`
	WindDirection       float64 `json:"wind_direction"`
	Humidity            float64 `json:"humidity"`
}

// HourlySeries holds parallel sequences indexed by hour. Every slice
// has the same length as Time; a missing precipitation probability is 0.
type HourlySeries struct {
	Time                     []time.Time `json:"time"`
	Temperature              []float64   `json:"temperature"`
	PrecipitationProbability []float64   `json:"precipitation_probability"`
	Humidity                 []float64   `json:"humidity"`
}

func (h HourlySeries) Len() int {
	return len(h.Time)
}

// WeatherSnapshot bundles the current conditions and the hourly series
// from one successful fetch. Replaced wholesale, never mutated.
type WeatherSnapshot struct {
	Place     Place             `json:"place"`
	Current   CurrentConditions `json:"current"`
	Hourly    HourlySeries      `json:"hourly"`
	FetchedAt time.Time         `json:"fetched_at"`
}

// Unit is the temperature unit preference for presentation. Raw data
// stays Celsius regardless of the active unit.
type Unit int

const (
	UnitCelsius Unit = iota
	UnitFahrenheit
)

func (u Unit) String() string {
	if u == UnitFahrenheit {
		return "fahrenheit"
	}
	return "celsius"
}

// Symbol returns the display suffix for the unit.
func (u Unit) Symbol() string {
	if u == UnitFahrenheit {
		return "°F"
	}
	return "°C"
}

// ParseUnit maps a user-supplied unit name to a Unit. Unknown values
// fall back to Celsius.
func ParseUnit(s string) Unit {
	switch s {
	case "fahrenheit", "F", "°F":
		return UnitFahrenheit
	default:
		return UnitCelsius
	}
}
