package prayer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"yawm/pkg/timeutil"
	"yawm/pkg/utils"
)

const defaultBaseURL = "https://api.aladhan.com/v1"

// Client fetches prayer times from the Aladhan API, consulting an
// injected bounded cache first.
type Client struct {
	httpClient *http.Client
	cache      *Cache
	baseURL    string
}

// NewClient creates a Client backed by the given cache. A nil cache
// gets a default-capacity one.
func NewClient(cache *Cache) *Client {
	if cache == nil {
		cache = NewCache(DefaultCacheCapacity)
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		cache:   cache,
		baseURL: defaultBaseURL,
	}
}

// timingsResponse mirrors the slice of the Aladhan payload we consume.
type timingsResponse struct {
	Data struct {
		Timings map[string]string `json:"timings"`
	} `json:"data"`
}

// TimesFor returns the prayer times for a date and address, fetching
// from the network on a cache miss.
func (c *Client) TimesFor(ctx context.Context, dateISO, city, country string) (*Times, error) {
	key := CacheKey(dateISO, city, country)
	if cached := c.cache.Get(key); cached != nil {
		utils.Log("Prayer times cache hit: %s", key)
		return cached, nil
	}

	address := url.QueryEscape(city + "," + country)
	endpoint := fmt.Sprintf("%s/timingsByAddress/%s?address=%s",
		c.baseURL, timeutil.ToAladhanDate(dateISO), address)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("aladhan: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var parsed timingsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("aladhan: decoding response: %w", err)
	}
	if parsed.Data.Timings == nil {
		return nil, fmt.Errorf("aladhan: response has no timings")
	}

	times := &Times{
		Fajr:    clockOnly(parsed.Data.Timings["Fajr"]),
		Dhuhr:   clockOnly(parsed.Data.Timings["Dhuhr"]),
		Asr:     clockOnly(parsed.Data.Timings["Asr"]),
		Maghrib: clockOnly(parsed.Data.Timings["Maghrib"]),
		Isha:    clockOnly(parsed.Data.Timings["Isha"]),
	}

	c.cache.Put(key, times)
	utils.Log("Fetched prayer times for %s", key)

	return times, nil
}

// clockOnly strips timezone suffixes like "05:12 (CET)" that the API
// appends in some modes.
func clockOnly(s string) string {
	if len(s) >= 5 {
		return s[:5]
	}
	return s
}
