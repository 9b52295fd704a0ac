package convert

import (
	"math"
)

// CelsiusToFahrenheit converts exactly; rounding happens at display time only.
func CelsiusToFahrenheit(c float64) float64 {
	return c*9/5 + 32
}

var compassLabels = [16]string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

// DegreesToCompass maps a wind direction in degrees to one of 16 compass
// labels. The circle is split into 22.5° sectors centered on each label;
// inputs outside [0,360) are normalized first, so 360 and -90 are valid.
func DegreesToCompass(deg float64) string {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	idx := int(math.Round(deg/22.5)) % 16
	return compassLabels[idx]
}

// WMO weather interpretation codes.
var weatherCodes = map[int]string{
	0:  "Clear sky",
	1:  "Mainly clear",
	2:  "Partly cloudy",
	3:  "Overcast",
	45: "Foggy",
	48: "Depositing rime fog",
	51: "Light drizzle",
	53: "Moderate drizzle",
	55: "Dense drizzle",
	56: "Light freezing drizzle",
	57: "Dense freezing drizzle",
	61: "Slight rain",
	63: "Moderate rain",
	65: "Heavy rain",
	66: "Light freezing rain",
	67: "Heavy freezing rain",
	71: "Slight snow fall",
	73: "Moderate snow fall",
	75: "Heavy snow fall",
	77: "Snow grains",
	80: "Slight rain showers",
	81: "Moderate rain showers",
	82: "Violent rain showers",
	85: "Slight snow showers",
	86: "Heavy snow showers",
	95: "Thunderstorm",
	96: "Thunderstorm with slight hail",
	99: "Thunderstorm with heavy hail",
}

// WeatherCodeLabel looks up the human label for a WMO weather code.
// Unknown codes yield a neutral placeholder, never an error.
func WeatherCodeLabel(code int) string {
	if label, ok := weatherCodes[code]; ok {
		return label
	}
	return "—"
}
