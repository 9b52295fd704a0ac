package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"weatherdesk/internal/models"

	"go.uber.org/zap"
)

// GeocodingClient talks to the Open-Meteo geocoding API to resolve a
// place name typed by the user into candidate places.
type GeocodingClient struct {
	*BaseClient
	baseURL  string
	language string
}

type geocodingResponse struct {
	Results []struct {
		ID        int64   `json:"id"`
		Name      string  `json:"name"`
		Admin1    string  `json:"admin1"`
		Country   string  `json:"country"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"results"`
}

func NewGeocodingClient(baseURL string, config ClientConfig, logger *zap.Logger) *GeocodingClient {
	return &GeocodingClient{
		BaseClient: NewBaseClient("geocoding", config, logger),
		baseURL:    baseURL,
		language:   "en",
	}
}

// SearchPlaces looks up places matching name, returning at most count
// results. An absent "results" field means no matches, not an error.
func (c *GeocodingClient) SearchPlaces(ctx context.Context, name string, count int) ([]models.Place, error) {
	params := url.Values{}
	params.Set("name", name)
	params.Set("count", fmt.Sprintf("%d", count))
	params.Set("language", c.language)
	params.Set("format", "json")

	data, err := c.Get(ctx, c.baseURL+"/search?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("failed to search places: %w", err)
	}

	var response geocodingResponse
	if err := json.Unmarshal(data, &response); err != nil {
		return nil, fmt.Errorf("failed to parse geocoding response: %w", err)
	}

	places := make([]models.Place, 0, len(response.Results))
	for _, r := range response.Results {
		if len(places) >= count {
			break
		}
		places = append(places, models.Place{
			ID:        r.ID,
			Name:      r.Name,
			Admin1:    r.Admin1,
			Country:   r.Country,
			Latitude:  r.Latitude,
			Longitude: r.Longitude,
		})
	}

	return places, nil
}
