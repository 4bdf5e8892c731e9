// Package fetch pulls current prices, moving averages and volume
// figures from a Yahoo-style chart endpoint.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultBaseURL is the public chart API host.
const DefaultBaseURL = "https://query1.finance.yahoo.com"

// DefaultSuffix maps bare symbols onto the NSE listing.
const DefaultSuffix = ".NS"

const (
	dmaDays       = 20
	avgVolumeDays = 5
)

// Quote is one instrument's market snapshot: the current price, the
// 20-day moving average derived from daily closes, and volume figures
// for the liquidity filter.
type Quote struct {
	Symbol     string
	Price      decimal.Decimal
	DMA20      decimal.Decimal
	Volume     int64
	AvgVolume5 int64
	Time       time.Time
}

// Client fetches quotes over HTTP.
type Client struct {
	baseURL    string
	suffix     string
	httpClient *http.Client
}

// NewClient creates a chart API client. Empty arguments fall back to
// the public endpoint and the NSE suffix.
func NewClient(baseURL, suffix string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		baseURL: baseURL,
		suffix:  suffix,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// chartResponse mirrors the chart API payload down to the fields we read.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol             string  `json:"symbol"`
				RegularMarketPrice float64 `json:"regularMarketPrice"`
				RegularMarketTime  int64   `json:"regularMarketTime"`
			} `json:"meta"`
			Indicators struct {
				Quote []struct {
					Close  []*float64 `json:"close"`
					Volume []*int64   `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// GetQuote fetches one instrument's quote. The configured suffix is
// appended to the symbol for the request but stripped from the result.
func (c *Client) GetQuote(ctx context.Context, symbol string) (Quote, error) {
	if symbol == "" {
		return Quote{}, fmt.Errorf("symbol is required")
	}

	params := url.Values{}
	params.Set("interval", "1d")
	params.Set("range", "1mo")

	apiURL := fmt.Sprintf("%s/v8/finance/chart/%s?%s",
		c.baseURL, url.PathEscape(symbol+c.suffix), params.Encode())

	httpReq, err := http.NewRequestWithContext(ctx, "GET", apiURL, nil)
	if err != nil {
		return Quote{}, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("User-Agent", "etfdesk/1.0")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return Quote{}, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return Quote{}, fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	var apiResp chartResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return Quote{}, fmt.Errorf("decode response: %w", err)
	}

	if apiResp.Chart.Error != nil {
		return Quote{}, fmt.Errorf("chart error %s: %s", apiResp.Chart.Error.Code, apiResp.Chart.Error.Description)
	}
	if len(apiResp.Chart.Result) == 0 || len(apiResp.Chart.Result[0].Indicators.Quote) == 0 {
		return Quote{}, fmt.Errorf("empty chart result for %s", symbol)
	}

	result := apiResp.Chart.Result[0]
	series := result.Indicators.Quote[0]

	if result.Meta.RegularMarketPrice <= 0 {
		return Quote{}, fmt.Errorf("no market price for %s", symbol)
	}

	q := Quote{
		Symbol: symbol,
		Price:  decimal.NewFromFloat(result.Meta.RegularMarketPrice),
		Time:   time.Unix(result.Meta.RegularMarketTime, 0).UTC(),
	}

	closes := tail(series.Close, dmaDays)
	if len(closes) == 0 {
		return Quote{}, fmt.Errorf("no close history for %s", symbol)
	}
	sum := decimal.Zero
	for _, v := range closes {
		sum = sum.Add(decimal.NewFromFloat(v))
	}
	q.DMA20 = sum.Div(decimal.NewFromInt(int64(len(closes)))).Round(4)

	volumes := tailInt(series.Volume, avgVolumeDays)
	if n := len(volumes); n > 0 {
		q.Volume = volumes[n-1]
		var total int64
		for _, v := range volumes {
			total += v
		}
		q.AvgVolume5 = total / int64(n)
	}

	return q, nil
}

// GetQuotes fetches many symbols, skipping the ones that fail. A quote
// that cannot be fetched is logged and left out of the result rather
// than failing the whole refresh.
func (c *Client) GetQuotes(ctx context.Context, symbols []string) (map[string]Quote, error) {
	quotes := make(map[string]Quote, len(symbols))
	for _, sym := range symbols {
		q, err := c.GetQuote(ctx, sym)
		if err != nil {
			if ctx.Err() != nil {
				return quotes, ctx.Err()
			}
			slog.Warn("quote fetch failed", "symbol", sym, "error", err)
			continue
		}
		quotes[sym] = q
	}
	return quotes, nil
}

// tail returns the last n non-null values.
func tail(vals []*float64, n int) []float64 {
	var out []float64
	for _, v := range vals {
		if v != nil {
			out = append(out, *v)
		}
	}
	if len(out) > n {
		out = out[len(out)-n:]
	}
	return out
}

func tailInt(vals []*int64, n int) []int64 {
	var out []int64
	for _, v := range vals {
		if v != nil {
			out = append(out, *v)
		}
	}
	if len(out) > n {
		out = out[len(out)-n:]
	}
	return out
}
