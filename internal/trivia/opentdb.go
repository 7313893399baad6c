package trivia

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the public Open Trivia DB endpoint.
	DefaultBaseURL = "https://opentdb.com"

	defaultTimeout = 10 * time.Second

	// maxBodyBytes bounds how much of a response is read.
	maxBodyBytes = 1 << 20
)

// Open Trivia DB response codes.
const (
	codeSuccess          = 0
	codeNoResults        = 1
	codeInvalidParameter = 2
	codeTokenNotFound    = 3
	codeTokenEmpty       = 4
	codeRateLimit        = 5
)

// OpenTDB fetches questions from the Open Trivia DB HTTP API.
type OpenTDB struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
}

// Option configures an OpenTDB client.
type Option func(*OpenTDB)

// WithBaseURL overrides the API base URL.
func WithBaseURL(u string) Option {
	return func(c *OpenTDB) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *OpenTDB) { c.httpClient = hc }
}

// WithTimeout bounds a single Fetch.
func WithTimeout(d time.Duration) Option {
	return func(c *OpenTDB) { c.timeout = d }
}

// NewOpenTDB creates a client for the public API.
func NewOpenTDB(opts ...Option) *OpenTDB {
	c := &OpenTDB{
		baseURL:    DefaultBaseURL,
		httpClient: http.DefaultClient,
		timeout:    defaultTimeout,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

var _ Source = (*OpenTDB)(nil)

func (c *OpenTDB) Name() string { return "opentdb" }

type apiResponse struct {
	ResponseCode int        `json:"response_code"`
	Results      []Question `json:"results"`
}

// Fetch requests req.Amount questions of req.Type.
func (c *OpenTDB) Fetch(ctx context.Context, req Request) ([]Question, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	body, err := c.get(ctx, c.endpoint(req))
	if err != nil {
		return nil, unavailable(c.Name(), err)
	}

	if err := validatePayload(body); err != nil {
		return nil, unavailable(c.Name(), err)
	}

	var resp apiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, unavailable(c.Name(), fmt.Errorf("decode response: %w", err))
	}

	if err := responseCodeError(resp.ResponseCode); err != nil {
		return nil, unavailable(c.Name(), err)
	}

	if err := validateBatch(resp.Results); err != nil {
		return nil, unavailable(c.Name(), err)
	}

	return resp.Results, nil
}

func (c *OpenTDB) endpoint(req Request) string {
	q := url.Values{}
	q.Set("amount", strconv.Itoa(req.Amount))
	if req.Type != "" {
		q.Set("type", req.Type)
	}
	return c.baseURL + "/api.php?" + q.Encode()
}

func (c *OpenTDB) get(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
}

func responseCodeError(code int) error {
	switch code {
	case codeSuccess:
		return nil
	case codeNoResults:
		return ErrNoResults
	case codeInvalidParameter:
		return fmt.Errorf("invalid parameter")
	case codeTokenNotFound, codeTokenEmpty:
		return fmt.Errorf("session token rejected (code %d)", code)
	case codeRateLimit:
		return fmt.Errorf("rate limited")
	default:
		return fmt.Errorf("unknown response code %d", code)
	}
}
