package hubeau

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/Austin-SALVATORE/data-visual-water-quality/internal/logger"
	"github.com/Austin-SALVATORE/data-visual-water-quality/internal/quality"
	"github.com/sony/gobreaker"
)

// DefaultBaseURL is the public Hub'Eau API root.
const DefaultBaseURL = "https://hubeau.eaufrance.fr/api"

const analysesPath = "/v2/qualite_rivieres/analyse_pc"

// Fixed query: a small box around central Paris, first page of ten analyses.
const (
	queryBBox = "2.35,48.85,2.36,48.86"
	queryPage = "1"
	querySize = "10"
)

var (
	ErrUnexpectedStatus = errors.New("unexpected status code")
	ErrCircuitOpen      = errors.New("circuit breaker open")
	ErrNoDataField      = errors.New("response has no data array")
	errNoHTTPClient     = errors.New("http client not configured")
)

// Client fetches physico-chemical river analyses from Hub'Eau.
type Client struct {
	baseURL string
	http    *http.Client
	circuit *gobreaker.CircuitBreaker
	log     logger.Logger
}

// NewClient creates a Client. An empty baseURL selects DefaultBaseURL.
func NewClient(client *http.Client, baseURL string, log logger.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	log = log.WithField("component", "hubeau")

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "hubeau",
		MaxRequests: 1,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warnf("circuit %s: %s -> %s", name, from, to)
		},
	})

	return &Client{
		baseURL: baseURL,
		http:    client,
		circuit: cb,
		log:     log,
	}
}

func (c *Client) endpoint() string {
	values := url.Values{}
	values.Set("bbox", queryBBox)
	values.Set("page", queryPage)
	values.Set("size", querySize)
	return fmt.Sprintf("%s%s?%s", c.baseURL, analysesPath, values.Encode())
}

// Fetch performs one GET and returns the records under the "data" key.
// Every call hits the network.
func (c *Client) Fetch(ctx context.Context) ([]quality.Record, error) {
	if c.http == nil {
		return nil, errNoHTTPClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	result, err := c.circuit.Execute(func() (interface{}, error) {
		resp, execErr := c.http.Do(req)
		if execErr != nil {
			return nil, execErr
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			_, _ = io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
		}
		return resp, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %v", ErrCircuitOpen, err)
		}
		return nil, err
	}

	resp, ok := result.(*http.Response)
	if !ok {
		return nil, fmt.Errorf("unexpected result type from circuit breaker")
	}
	defer resp.Body.Close()

	records, err := decodeAnalyses(resp.Body)
	if err != nil {
		return nil, err
	}

	c.log.Debugf("fetched %d records in %s", len(records), time.Since(start))
	return records, nil
}

func decodeAnalyses(r io.Reader) ([]quality.Record, error) {
	var payload struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(r).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(payload.Data) == 0 || string(payload.Data) == "null" {
		return nil, ErrNoDataField
	}

	var records []quality.Record
	if err := json.Unmarshal(payload.Data, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoDataField, err)
	}
	return records, nil
}

var _ quality.Fetcher = (*Client)(nil)
