package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/namefreezers/weather-lookup/internal/config"
)

// RequestTimeout bounds every lookup. Callers may shorten it through their
// context but never extend it.
const RequestTimeout = 5 * time.Second

// MaxBodySize caps how much of a response body is read.
const MaxBodySize = 1 << 20

// Query describes one lookup. An empty Credential falls back to the
// API key the client was configured with.
type Query struct {
	City       string
	Credential string
}

// Client queries the weather.com v3 conditions endpoint.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces http.DefaultClient.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithBaseURL points the client at another conditions endpoint.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// NewClient returns a new Client, or an error if the API key is not set.
func NewClient(cfg *config.Config, opts ...Option) (*Client, error) {
	if cfg.WeatherAPIKey == "" {
		return nil, fmt.Errorf("WEATHER_API_KEY is not set")
	}
	c := &Client{
		apiKey:  cfg.WeatherAPIKey,
		baseURL: cfg.WeatherAPIURL,
		http:    http.DefaultClient,
	}
	if c.baseURL == "" {
		c.baseURL = config.DefaultWeatherAPIURL
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// FetchTemperature issues exactly one GET for q.City and returns the
// "temperature" field of the response unmodified.
// Every failure matches ErrLookupFailure.
func (c *Client) FetchTemperature(ctx context.Context, q Query) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, RequestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.requestURL(q), nil)
	if err != nil {
		return 0, &NetworkError{City: q.City, Err: err}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, &NetworkError{City: q.City, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, &StatusError{City: q.City, StatusCode: resp.StatusCode}
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodySize+1))
	if err != nil {
		return 0, &NetworkError{City: q.City, Err: err}
	}
	if len(raw) > MaxBodySize {
		return 0, &ParseError{Err: fmt.Errorf("response body exceeds %d bytes", MaxBodySize)}
	}
	return parseTemperature(raw)
}

// requestURL keeps the city-then-apikey parameter order of the endpoint
// documentation, escaping both values.
func (c *Client) requestURL(q Query) string {
	key := q.Credential
	if key == "" {
		key = c.apiKey
	}
	return fmt.Sprintf("%s?city=%s&apikey=%s",
		c.baseURL, url.QueryEscape(q.City), url.QueryEscape(key))
}

// parseTemperature accepts only a JSON object whose "temperature" is a number.
func parseTemperature(raw []byte) (float64, error) {
	var body map[string]json.RawMessage
	if err := json.Unmarshal(raw, &body); err != nil {
		return 0, &ParseError{Err: err}
	}
	// A literal null decodes into a nil map without error.
	if body == nil {
		return 0, &ParseError{Err: fmt.Errorf("response is not a JSON object")}
	}

	field, ok := body["temperature"]
	if !ok || string(field) == "null" {
		return 0, &MissingFieldError{Field: "temperature"}
	}

	var temp float64
	if err := json.Unmarshal(field, &temp); err != nil {
		return 0, &ParseError{Err: err}
	}
	return temp, nil
}
