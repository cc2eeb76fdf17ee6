// Package omdb is a minimal client for the OMDb HTTP API, used to
// enrich catalog writes with poster URLs and to feed the seeder.
package omdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"cinevault/errs"
	"cinevault/movie"
)

const DefaultBaseURL = "https://www.omdbapi.com"

// ErrAPIKeyMissing is surfaced when a lookup is attempted without a
// configured credential. The operation fails; it does not degrade to
// the sentinel value.
var ErrAPIKeyMissing = errs.Errorf(errs.EINTERNAL, "omdb api key missing")

type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewClient(apiKey, baseURL string) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		apiKey:     strings.TrimSpace(apiKey),
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Record is one OMDb title lookup result. Field names follow the OMDb
// wire format.
type Record struct {
	Title      string `json:"Title"`
	Year       string `json:"Year"`
	Released   string `json:"Released"`
	Runtime    string `json:"Runtime"`
	Plot       string `json:"Plot"`
	Poster     string `json:"Poster"`
	IMDBRating string `json:"imdbRating"`
	Response   string `json:"Response"`
	Error      string `json:"Error"`
}

func (r Record) Found() bool {
	return r.Response == "True"
}

// PosterByTitle looks a title up by exact name and returns its poster
// URL. A well-formed "not found" answer, or a record without a usable
// poster, yields the sentinel value; transport failures are errors.
func (c *Client) PosterByTitle(ctx context.Context, title string) (string, error) {
	rec, err := c.lookup(ctx, url.Values{"t": {title}})
	if err != nil {
		return "", err
	}
	if !rec.Found() || rec.Poster == "" || rec.Poster == movie.PosterNotAvailable {
		return movie.PosterNotAvailable, nil
	}
	return rec.Poster, nil
}

// ByIMDBID fetches the full record for an IMDb id. Unknown ids return
// a zero Record with Found() == false.
func (c *Client) ByIMDBID(ctx context.Context, imdbID string) (Record, error) {
	return c.lookup(ctx, url.Values{"i": {imdbID}})
}

func (c *Client) lookup(ctx context.Context, params url.Values) (Record, error) {
	if c.apiKey == "" {
		return Record{}, ErrAPIKeyMissing
	}

	params.Set("apikey", c.apiKey)
	endpoint := c.baseURL + "/?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Record{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Record{}, fmt.Errorf("omdb: lookup failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Record{}, fmt.Errorf("omdb: unexpected status %s", resp.Status)
	}

	var rec Record
	if err := json.NewDecoder(resp.Body).Decode(&rec); err != nil {
		return Record{}, fmt.Errorf("omdb: decode response: %w", err)
	}

	return rec, nil
}
