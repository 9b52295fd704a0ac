package services

import (
	"testing"
	"time"

	"weatherdesk/internal/models"
)

func hourlySnapshot(times []time.Time, temps []float64, precip []float64) *models.WeatherSnapshot {
	return &models.WeatherSnapshot{
		Place: place(1, "Prague"),
		Current: models.CurrentConditions{
			Temperature:         20,
			ApparentTemperature: 18.5,
			IsDay:               true,
			WeatherCode:         2,
			WindSpeed:           15,
			WindDirection:       225,
			Humidity:            65,
		},
		Hourly: models.HourlySeries{
			Time:                     times,
			Temperature:              temps,
			PrecipitationProbability: precip,
		},
	}
}

func TestDeriveCurrentNilSnapshot(t *testing.T) {
	if got := DeriveCurrent(nil, models.UnitCelsius); got != nil {
		t.Errorf("expected nil view for nil snapshot, got %+v", got)
	}
}

func TestDeriveCurrent(t *testing.T) {
	snapshot := hourlySnapshot(nil, nil, nil)

	tests := []struct {
		name         string
		unit         models.Unit
		wantTemp     float64
		wantApparent float64
		wantSymbol   string
	}{
		{"celsius passthrough", models.UnitCelsius, 20, 18.5, "°C"},
		{"fahrenheit conversion", models.UnitFahrenheit, 68, 65.3, "°F"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := DeriveCurrent(snapshot, tt.unit)
			if view == nil {
				t.Fatal("expected a view")
			}
			if diff := view.Temperature - tt.wantTemp; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("Temperature = %v, want %v", view.Temperature, tt.wantTemp)
			}
			if diff := view.ApparentTemperature - tt.wantApparent; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("ApparentTemperature = %v, want %v", view.ApparentTemperature, tt.wantApparent)
			}
			if view.UnitSymbol != tt.wantSymbol {
				t.Errorf("UnitSymbol = %q, want %q", view.UnitSymbol, tt.wantSymbol)
			}
			if view.Condition != "Partly cloudy" {
				t.Errorf("Condition = %q, want %q", view.Condition, "Partly cloudy")
			}
			if view.WindCompass != "SW" {
				t.Errorf("WindCompass = %q, want %q", view.WindCompass, "SW")
			}
			if !view.IsDay || view.Humidity != 65 || view.WindSpeed != 15 {
				t.Errorf("passthrough fields wrong: %+v", view)
			}
		})
	}
}

func TestDeriveUpcomingHoursFiltersPast(t *testing.T) {
	ten := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	eleven := time.Date(2024, 1, 1, 11, 0, 0, 0, time.UTC)
	snapshot := hourlySnapshot(
		[]time.Time{ten, eleven},
		[]float64{5, 6},
		[]float64{10, 20},
	)

	now := time.Date(2024, 1, 1, 10, 30, 0, 0, time.UTC)
	hours := DeriveUpcomingHours(snapshot, models.UnitCelsius, now)

	if len(hours) != 1 {
		t.Fatalf("expected exactly 1 hour, got %d", len(hours))
	}
	if !hours[0].Time.Equal(eleven) {
		t.Errorf("expected the 11:00 entry, got %v", hours[0].Time)
	}
	if hours[0].Temperature != 6 || hours[0].PrecipitationProbability != 20 {
		t.Errorf("unexpected hour values: %+v", hours[0])
	}
}

func TestDeriveUpcomingHoursBoundaryIsInclusive(t *testing.T) {
	ten := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	snapshot := hourlySnapshot([]time.Time{ten}, []float64{5}, []float64{0})

	hours := DeriveUpcomingHours(snapshot, models.UnitCelsius, ten)
	if len(hours) != 1 {
		t.Fatalf("an hour exactly at now must qualify, got %d entries", len(hours))
	}
}

func TestDeriveUpcomingHoursCapAndOrder(t *testing.T) {
	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	times := make([]time.Time, 0, 24)
	temps := make([]float64, 0, 24)
	for i := 0; i < 24; i++ {
		times = append(times, start.Add(time.Duration(i)*time.Hour))
		temps = append(temps, float64(i))
	}
	snapshot := hourlySnapshot(times, temps, nil)

	hours := DeriveUpcomingHours(snapshot, models.UnitCelsius, start.Add(90*time.Minute))

	if len(hours) != MaxUpcomingHours {
		t.Fatalf("expected %d hours, got %d", MaxUpcomingHours, len(hours))
	}
	// First qualifying hour is 02:00; order must stay chronological.
	for i, hour := range hours {
		want := start.Add(time.Duration(i+2) * time.Hour)
		if !hour.Time.Equal(want) {
			t.Errorf("hour %d = %v, want %v", i, hour.Time, want)
		}
		if hour.PrecipitationProbability != 0 {
			t.Errorf("missing precipitation must default to 0, got %v", hour.PrecipitationProbability)
		}
	}
}

func TestDeriveUpcomingHoursConvertsUnit(t *testing.T) {
	ts := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	snapshot := hourlySnapshot([]time.Time{ts}, []float64{0}, []float64{0})

	hours := DeriveUpcomingHours(snapshot, models.UnitFahrenheit, ts)
	if len(hours) != 1 || hours[0].Temperature != 32 {
		t.Errorf("expected 0°C to convert to 32°F, got %+v", hours)
	}
}

func TestDeriveUpcomingHoursNilSnapshot(t *testing.T) {
	if got := DeriveUpcomingHours(nil, models.UnitCelsius, time.Now()); got != nil {
		t.Errorf("expected nil for nil snapshot, got %+v", got)
	}
}
