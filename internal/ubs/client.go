package ubs

import (
	"context"
	"fmt"
	"net/http/cookiejar"
	"strings"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"

	"hargaemas/internal/config"
	"hargaemas/internal/logger"
)

const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"

// Client fetches buyback price series from the retailer's admin-ajax
// endpoint.
type Client struct {
	http       *resty.Client
	endpoint   string
	action     string
	instrument string
}

// NewClient builds a Client for cfg. The endpoint sits behind Cloudflare,
// so the transport carries the bypass round-tripper, a cookie jar and a
// desktop user agent, with request pacing to stay under the rate limit.
func NewClient(cfg config.UBSConfig) (*Client, error) {
	httpClient := resty.New()
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	httpClient.SetCookieJar(jar)
	httpClient.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(httpClient.GetClient().Transport)

	httpClient.SetHeader("user-agent", browserUserAgent)
	httpClient.SetTimeout(cfg.Timeout())

	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 2
	}
	limiter := rate.NewLimiter(rate.Limit(rps), rps)
	httpClient.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		return limiter.Wait(req.Context())
	})

	return &Client{
		http:       httpClient,
		endpoint:   cfg.Endpoint,
		action:     cfg.Action,
		instrument: cfg.Instrument,
	}, nil
}

// FetchSeries issues one POST selecting the instrument and look-back
// interval. Transport failures, non-2xx statuses and malformed payloads
// all map to ErrNetwork; there is no automatic retry.
func (c *Client) FetchSeries(ctx context.Context, interval int) ([]Series, error) {
	path := fmt.Sprintf("ajax/chart_interval_jual/%s/%d", c.instrument, interval)
	logger.Infof("fetching harga emas ubs, path=%s", path)

	res, err := c.http.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"action": c.action,
			"path":   path,
		}).
		Post(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	if res.StatusCode() < 200 || res.StatusCode() >= 300 {
		return nil, fmt.Errorf("%w: unexpected status %s", ErrNetwork, res.Status())
	}

	series, err := parseSeries(res.Body())
	if err != nil {
		return nil, err
	}
	logger.Infof("fetched %d series from %s", len(series), c.endpoint)
	return series, nil
}

// parseSeries maps the admin-ajax response onto typed series. WordPress
// answers "0" or an HTML error page when the action is unknown, so the
// body goes through a tolerant validity gate before any typed mapping.
// Prices are built from the raw JSON literals so their exact decimal
// representation survives the round trip.
func parseSeries(body []byte) ([]Series, error) {
	raw := strings.TrimSpace(string(body))
	if raw == "" || !gjson.Valid(raw) {
		return nil, fmt.Errorf("%w: response is not valid json", ErrNetwork)
	}
	parsed := gjson.Parse(raw)
	if !parsed.IsArray() {
		return nil, fmt.Errorf("%w: response root is not an array", ErrNetwork)
	}

	var (
		out      []Series
		parseErr error
	)
	parsed.ForEach(func(_, item gjson.Result) bool {
		s := Series{Name: item.Get("name").String()}
		item.Get("data").ForEach(func(_, row gjson.Result) bool {
			entry, err := parseSeriesEntry(row)
			if err != nil {
				parseErr = err
				return false
			}
			s.Entries = append(s.Entries, entry)
			return true
		})
		if parseErr != nil {
			return false
		}
		out = append(out, s)
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}
	return out, nil
}

// parseSeriesEntry maps one [timestamp_ms, open, high, low, close] row.
func parseSeriesEntry(row gjson.Result) (SeriesEntry, error) {
	cols := row.Array()
	if len(cols) < 5 {
		return SeriesEntry{}, fmt.Errorf("%w: chart row has %d columns, want 5", ErrNetwork, len(cols))
	}
	entry := SeriesEntry{UnixMilli: cols[0].Int()}

	fields := []struct {
		name string
		dst  *decimal.Decimal
		col  gjson.Result
	}{
		{"open", &entry.Open, cols[1]},
		{"high", &entry.High, cols[2]},
		{"low", &entry.Low, cols[3]},
		{"close", &entry.Close, cols[4]},
	}
	for _, f := range fields {
		raw := strings.TrimSpace(f.col.Raw)
		if f.col.Type == gjson.String {
			// numbers sometimes arrive quoted; take the unescaped text
			raw = f.col.Str
		}
		v, err := decimal.NewFromString(raw)
		if err != nil {
			return SeriesEntry{}, fmt.Errorf("%w: bad %s value %q", ErrNetwork, f.name, raw)
		}
		*f.dst = v
	}
	return entry, nil
}
