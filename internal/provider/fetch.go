package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	apperrors "github.com/map-service/internal/pkg/errors"
)

const (
	FetchTimeout    = 10 * time.Second
	MaxRedirects    = 1
	MaxResponseSize = 1048576
	UserAgent       = "Simple Location for Go"
)

// JSONResponse is a classified 2xx response.
type JSONResponse struct {
	StatusCode  int
	ContentType string
	Body        []byte
	Data        interface{}
}

// Fetcher performs GET requests against vendor JSON APIs. It never retries;
// every failure is classified into one of the transport/http/invalid-response kinds.
type Fetcher struct {
	client    *http.Client
	userAgent string
	maxBytes  int64
}

func NewFetcher() *Fetcher {
	return NewFetcherWithClient(&http.Client{})
}

// NewFetcherWithClient applies the fixed timeout and redirect policy to client.
func NewFetcherWithClient(client *http.Client) *Fetcher {
	c := *client
	c.Timeout = FetchTimeout
	c.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		if len(via) > MaxRedirects {
			return fmt.Errorf("stopped after %d redirect(s)", MaxRedirects)
		}
		return nil
	}
	return &Fetcher{
		client:    &c,
		userAgent: UserAgent,
		maxBytes:  MaxResponseSize,
	}
}

// FetchJSON appends query to rawURL, performs the GET and returns the decoded body.
func (f *Fetcher) FetchJSON(ctx context.Context, rawURL string, query url.Values) (interface{}, error) {
	resp, err := f.FetchJSONResponse(ctx, rawURL, query)
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// FetchJSONResponse is FetchJSON that also reports the status code and content type.
func (f *Fetcher) FetchJSONResponse(ctx context.Context, rawURL string, query url.Values) (*JSONResponse, error) {
	target, err := withQuery(rawURL, query)
	if err != nil {
		return nil, apperrors.NewTransportError(fmt.Errorf("build url: %w", redactURL(err)))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, apperrors.NewTransportError(fmt.Errorf("create request: %w", redactURL(err)))
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, apperrors.NewTransportError(redactURL(err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, apperrors.NewTransportError(fmt.Errorf("read body: %w", err))
	}
	if int64(len(body)) > f.maxBytes {
		return nil, apperrors.NewTransportError(fmt.Errorf("response exceeds %d bytes", f.maxBytes))
	}

	if resp.StatusCode/100 != 2 {
		return nil, apperrors.NewHTTPError(resp.StatusCode, string(body))
	}

	contentType := resp.Header.Get("Content-Type")
	var data interface{}
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, apperrors.NewInvalidResponseError(string(body), contentType, err)
	}
	if isEmptyJSON(data) {
		return nil, apperrors.NewInvalidResponseError(string(body), contentType, nil)
	}

	return &JSONResponse{
		StatusCode:  resp.StatusCode,
		ContentType: contentType,
		Body:        body,
		Data:        data,
	}, nil
}

// withQuery merges query into the URL's own query string; query keys win.
func withQuery(rawURL string, query url.Values) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	if len(query) == 0 {
		return u.String(), nil
	}
	q := u.Query()
	for key, values := range query {
		q[key] = values
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// redactURL drops the query from the URL that net/http puts into its errors.
// Vendor credentials such as access_token travel in the query.
func redactURL(err error) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		if i := strings.IndexByte(ue.URL, '?'); i >= 0 {
			ue.URL = ue.URL[:i]
		}
	}
	return err
}

// isEmptyJSON reports decoded values that carry nothing: null, false, 0, "", "0", [] and {}.
func isEmptyJSON(v interface{}) bool {
	switch d := v.(type) {
	case nil:
		return true
	case bool:
		return !d
	case float64:
		return d == 0
	case string:
		return d == "" || d == "0"
	case []interface{}:
		return len(d) == 0
	case map[string]interface{}:
		return len(d) == 0
	}
	return false
}
