package holidays

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// NagerClient reads public holidays from the Nager.Date API.
type NagerClient struct {
	baseURL string
	client  *http.Client
}

// NewNagerClient builds a client against baseURL, e.g. https://date.nager.at/api/v3.
func NewNagerClient(baseURL string, timeout time.Duration) *NagerClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &NagerClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// Name identifies the source in logs and metrics.
func (c *NagerClient) Name() string { return "nager" }

// PublicHolidays fetches /PublicHolidays/{year}/{country}.
func (c *NagerClient) PublicHolidays(ctx context.Context, year int, country string) ([]PublicHoliday, error) {
	url := fmt.Sprintf("%s/PublicHolidays/%d/%s", c.baseURL, year, strings.ToUpper(country))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build nager request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("nager request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &UpstreamError{Source: c.Name(), StatusCode: resp.StatusCode}
	}

	var holidays []PublicHoliday
	if err := json.NewDecoder(resp.Body).Decode(&holidays); err != nil {
		return nil, fmt.Errorf("decode nager response: %w", err)
	}
	for i := range holidays {
		holidays[i].Date = strings.TrimSpace(holidays[i].Date)
		if _, err := time.Parse("2006-01-02", holidays[i].Date); err != nil {
			return nil, fmt.Errorf("nager returned invalid date %q", holidays[i].Date)
		}
	}
	return holidays, nil
}
