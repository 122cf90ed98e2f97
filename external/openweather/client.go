package openweather

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"
)

const DefaultEndpoint = "https://api.openweathermap.org"

// CurrentWeather is a parsed current-conditions sample. Units are
// imperial: °F, mph; precipitation is normalized to mm/hr.
type CurrentWeather struct {
	Temperature   float64
	WindSpeed     float64
	Precipitation float64
	Description   string
	Icon          string
}

type Client struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

func New(endpoint, apiKey string) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	return &Client{
		endpoint: endpoint,
		apiKey:   apiKey,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Current fetches current conditions for a coordinate.
func (c *Client) Current(lat, lng float64) (*CurrentWeather, error) {
	q := url.URL{
		Path: "data/2.5/weather",
		RawQuery: url.Values{
			"lat":   []string{strconv.FormatFloat(lat, 'f', -1, 64)},
			"lon":   []string{strconv.FormatFloat(lng, 'f', -1, 64)},
			"appid": []string{c.apiKey},
			"units": []string{"imperial"},
		}.Encode(),
	}

	resp, err := c.client.Get(fmt.Sprintf("%s/%s", c.endpoint, q.String()))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		dumpBytes, _ := httputil.DumpResponse(resp, true)
		log.WithField("prefix", "openweather").WithField("resp", string(dumpBytes)).Error("error response from openweathermap")
		return nil, fmt.Errorf("fail to query weather: status %d", resp.StatusCode)
	}

	var payload struct {
		Main struct {
			Temp float64 `json:"temp"`
		} `json:"main"`
		Wind struct {
			Speed float64 `json:"speed"`
		} `json:"wind"`
		Weather []struct {
			Description string `json:"description"`
			Icon        string `json:"icon"`
		} `json:"weather"`
		Rain map[string]float64 `json:"rain"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}

	current := &CurrentWeather{
		Temperature:   payload.Main.Temp,
		WindSpeed:     payload.Wind.Speed,
		Precipitation: precipitationRate(payload.Rain),
	}
	if len(payload.Weather) > 0 {
		current.Description = payload.Weather[0].Description
		current.Icon = payload.Weather[0].Icon
	}

	return current, nil
}

// precipitationRate normalizes the rain block to mm/hr: the 1h reading is
// already a rate, the 3h total gets divided down.
func precipitationRate(rain map[string]float64) float64 {
	if v, ok := rain["1h"]; ok {
		return v
	}
	if v, ok := rain["3h"]; ok {
		return v / 3
	}
	return 0
}
