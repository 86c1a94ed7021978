// Package freeastro calls the FreeAstrologyAPI natal wheel endpoint. Any
// failure here is recoverable: callers degrade to the local approximation.
package freeastro

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/lunara/astro-api/internal/astro"
	"github.com/lunara/astro-api/internal/domain/natal"
)

const (
	defaultBaseURL = "https://json.freeastrologyapi.com"
	defaultTimeout = 12 * time.Second

	// The product serves a Brazilian audience; birth times are interpreted
	// in BRT until per-profile timezones exist.
	birthTimezone = -3.0
)

// Client talks to the FreeAstrologyAPI western chart service.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewClient builds an ephemeris client. The API key is optional; the
// provider serves a limited unauthenticated tier.
func NewClient(apiKey, baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		apiKey:     apiKey,
	}
}

type chartRequest struct {
	Year        int     `json:"year"`
	Month       int     `json:"month"`
	Date        int     `json:"date"`
	Hour        int     `json:"hour"`
	Minute      int     `json:"minute"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Timezone    float64 `json:"timezone"`
	HouseSystem string  `json:"house_system"`
}

type planetPosition struct {
	Sign   string  `json:"sign"`
	Degree float64 `json:"degree"`
	House  int     `json:"house"`
}

type chartResponse struct {
	Output struct {
		PlanetPositions map[string]planetPosition `json:"planet_positions"`
		Houses          []struct {
			Sign   string  `json:"sign"`
			Degree float64 `json:"degree"`
		} `json:"houses"`
		Aspects []struct {
			First  string  `json:"first"`
			Second string  `json:"second"`
			Type   string  `json:"type"`
			Angle  float64 `json:"angle"`
		} `json:"aspects"`
		Ascendant planetPosition `json:"ascendant"`
	} `json:"output"`
}

// NatalChart requests a precise chart for the given birth data.
func (c *Client) NatalChart(ctx context.Context, input natal.BirthInput) (astro.Chart, error) {
	hours, minutes, err := parseClock(input.Time)
	if err != nil {
		return astro.Chart{}, err
	}
	body, err := json.Marshal(chartRequest{
		Year:        input.Date.Year(),
		Month:       int(input.Date.Month()),
		Date:        input.Date.Day(),
		Hour:        hours,
		Minute:      minutes,
		Latitude:    input.Latitude,
		Longitude:   input.Longitude,
		Timezone:    birthTimezone,
		HouseSystem: "Placidus",
	})
	if err != nil {
		return astro.Chart{}, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/western/natal-wheel-chart", bytes.NewReader(body))
	if err != nil {
		return astro.Chart{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return astro.Chart{}, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return astro.Chart{}, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return astro.Chart{}, fmt.Errorf("ephemeris provider returned status %d", resp.StatusCode)
	}

	var parsed chartResponse
	if err := json.Unmarshal(payload, &parsed); err != nil {
		return astro.Chart{}, fmt.Errorf("unmarshal response: %w", err)
	}
	return c.toChart(parsed)
}

func (c *Client) toChart(resp chartResponse) (astro.Chart, error) {
	positions := resp.Output.PlanetPositions

	sun, err := requiredPlacement(positions, "sun")
	if err != nil {
		return astro.Chart{}, err
	}
	moon, err := requiredPlacement(positions, "moon")
	if err != nil {
		return astro.Chart{}, err
	}
	ascendantSign, ok := astro.ParseSign(resp.Output.Ascendant.Sign)
	if !ok {
		return astro.Chart{}, fmt.Errorf("unknown ascendant sign %q", resp.Output.Ascendant.Sign)
	}

	chart := astro.Chart{
		Sun:  sun,
		Moon: moon,
		Ascendant: astro.Placement{
			Sign:   ascendantSign,
			Degree: resp.Output.Ascendant.Degree,
		},
		Mercury: optionalPlacement(positions, "mercury"),
		Venus:   optionalPlacement(positions, "venus"),
		Mars:    optionalPlacement(positions, "mars"),
		Jupiter: optionalPlacement(positions, "jupiter"),
		Saturn:  optionalPlacement(positions, "saturn"),
		Uranus:  optionalPlacement(positions, "uranus"),
		Neptune: optionalPlacement(positions, "neptune"),
		Pluto:   optionalPlacement(positions, "pluto"),

		CalculatedAt: time.Now().UTC(),
	}
	for _, house := range resp.Output.Houses {
		sign, ok := astro.ParseSign(house.Sign)
		if !ok {
			continue
		}
		chart.Houses = append(chart.Houses, astro.HouseCusp{Sign: sign, Degree: house.Degree})
	}
	for _, aspect := range resp.Output.Aspects {
		chart.Aspects = append(chart.Aspects, astro.Aspect{
			First:  aspect.First,
			Second: aspect.Second,
			Type:   aspect.Type,
			Angle:  aspect.Angle,
		})
	}
	return chart, nil
}

func requiredPlacement(positions map[string]planetPosition, name string) (astro.Placement, error) {
	position, found := positions[name]
	if !found {
		return astro.Placement{}, fmt.Errorf("missing %s position", name)
	}
	sign, ok := astro.ParseSign(position.Sign)
	if !ok {
		return astro.Placement{}, fmt.Errorf("unknown sign %q for %s", position.Sign, name)
	}
	return astro.Placement{Sign: sign, Degree: position.Degree, House: position.House}, nil
}

func optionalPlacement(positions map[string]planetPosition, name string) *astro.Placement {
	position, found := positions[name]
	if !found {
		return nil
	}
	sign, ok := astro.ParseSign(position.Sign)
	if !ok {
		return nil
	}
	return &astro.Placement{Sign: sign, Degree: position.Degree, House: position.House}
}

func parseClock(value string) (int, int, error) {
	parsed, err := time.Parse("15:04", value)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid birth time %q: %w", value, err)
	}
	return parsed.Hour(), parsed.Minute(), nil
}

var _ natal.EphemerisClient = (*Client)(nil)
