// Package twelvedata implements the price-history provider boundary against
// the Twelve Data REST API. Short responses are returned as-is: data
// insufficiency is judged by the engine, not treated as a transport error.
// Transport failures are propagated unchanged; the retry policy lives in the
// shared HTTP client, never in the engine.
package twelvedata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpclient "github.com/tsquant/engine/internal/platform/http"
	"github.com/tsquant/engine/models"
)

const dateLayout = "2006-01-02"

var _ models.PriceClient = (*Client)(nil)

// Client is the Twelve Data API client
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *httpclient.Client
	logger     zerolog.Logger
}

// ClientOptions holds options for creating a new Twelve Data client
type ClientOptions struct {
	APIKey          string
	RequestTimeout  time.Duration
	RequestsPerSec  int
	MaxRetryTimeout time.Duration
}

// NewClient creates a new Twelve Data API client
func NewClient(options ClientOptions) *Client {
	return &Client{
		apiKey:  options.APIKey,
		baseURL: "https://api.twelvedata.com",
		httpClient: httpclient.NewClient(httpclient.ClientOptions{
			Timeout:         options.RequestTimeout,
			RequestsPerSec:  options.RequestsPerSec,
			MaxRetryTimeout: options.MaxRetryTimeout,
		}),
		logger: log.With().Str("component", "twelvedata_client").Logger(),
	}
}

// timeSeriesResponse is the wire shape of the time_series endpoint
type timeSeriesResponse struct {
	Meta struct {
		Symbol   string `json:"symbol"`
		Interval string `json:"interval"`
	} `json:"meta"`
	Values []struct {
		Datetime string  `json:"datetime"`
		Close    float64 `json:"close,string"`
	} `json:"values"`
	Status string `json:"status"`
}

// FetchPrices implements models.PriceClient: daily close prices for the
// symbol between start and end, sorted oldest first.
func (c *Client) FetchPrices(ctx context.Context, symbol string, start, end time.Time) ([]models.PricePoint, error) {
	endpoint := fmt.Sprintf(
		"%s/time_series?symbol=%s&interval=1day&start_date=%s&end_date=%s&apikey=%s",
		c.baseURL,
		url.QueryEscape(symbol),
		start.Format(dateLayout),
		end.Format(dateLayout),
		c.apiKey,
	)

	c.logger.Debug().Str("symbol", symbol).
		Str("start", start.Format(dateLayout)).
		Str("end", end.Format(dateLayout)).
		Msg("Fetching price history")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.DoRequest(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if strings.Contains(string(body), `"status":"error"`) {
		c.logger.Error().Str("response", string(body)).Msg("Twelve Data API error")
		return nil, fmt.Errorf("Twelve Data API error: %s", string(body))
	}

	var data timeSeriesResponse
	if err := json.Unmarshal(body, &data); err != nil {
		c.logger.Error().Err(err).Msg("Error parsing JSON")
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	// Sort oldest first for proper calculations
	sort.Slice(data.Values, func(i, j int) bool {
		return data.Values[i].Datetime < data.Values[j].Datetime
	})

	points := make([]models.PricePoint, 0, len(data.Values))
	for _, v := range data.Values {
		ts, err := time.Parse(dateLayout, v.Datetime)
		if err != nil {
			c.logger.Warn().Str("datetime", v.Datetime).Msg("Skipping unparseable timestamp")
			continue
		}
		points = append(points, models.PricePoint{Timestamp: ts, Close: v.Close})
	}

	c.logger.Debug().Int("count", len(points)).Msg("Fetched price history")
	return points, nil
}
