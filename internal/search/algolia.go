package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strconv"

	"github.com/pkg/errors"
	"github.com/shishikan-sg/shishikan/internal/sskerror"
	"github.com/shishikan-sg/shishikan/pkg/libssk"
)

// AlgoliaConfig configures the Algolia driver.
type AlgoliaConfig struct {
	ApplicationID string
	APIKey        string
	Index         string
	Endpoint      string // Defaults to https://<ApplicationID>.algolia.net
	HTTP          *http.Client
}

type algolia struct {
	cfg AlgoliaConfig
}

// NewAlgolia returns an Index backed by the Algolia REST API.
func NewAlgolia(cfg AlgoliaConfig) (Index, error) {
	if cfg.ApplicationID == "" || cfg.APIKey == "" {
		return nil, errors.New("algolia: missing application id or api key")
	}
	if cfg.Index == "" {
		return nil, errors.New("algolia: missing index name")
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = fmt.Sprintf("https://%s.algolia.net", cfg.ApplicationID)
	}
	if _, err := url.Parse(cfg.Endpoint); err != nil {
		return nil, errors.Wrap(err, "algolia: could not parse endpoint")
	}
	if cfg.HTTP == nil {
		cfg.HTTP = http.DefaultClient
	}

	return &algolia{cfg: cfg}, nil
}

type batchRequest struct {
	Action string `json:"action"`
	Body   any    `json:"body"`
}

func (a *algolia) Save(ctx context.Context, hits ...libssk.Hit) error {
	if len(hits) == 0 {
		return nil
	}

	requests := make([]batchRequest, 0, len(hits))
	for _, hit := range hits {
		requests = append(requests, batchRequest{Action: "updateObject", Body: hit})
	}
	return a.do(ctx, "batch", map[string]any{"requests": requests}, nil)
}

func (a *algolia) Delete(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}

	requests := make([]batchRequest, 0, len(ids))
	for _, id := range ids {
		requests = append(requests, batchRequest{Action: "deleteObject", Body: map[string]string{"objectID": id}})
	}
	return a.do(ctx, "batch", map[string]any{"requests": requests}, nil)
}

func (a *algolia) Clear(ctx context.Context) error {
	return a.do(ctx, "clear", map[string]any{}, nil)
}

func (a *algolia) Search(ctx context.Context, params libssk.SearchParams) (*libssk.SearchResult, error) {
	params = params.Normalize()

	values := url.Values{}
	values.Set("query", params.Query)
	values.Set("page", strconv.Itoa(params.Page))
	values.Set("hitsPerPage", strconv.Itoa(params.HitsPerPage))
	if params.Filters != "" {
		values.Set("filters", params.Filters)
	}
	if len(params.Facets) > 0 {
		facets, err := json.Marshal(params.Facets)
		if err != nil {
			return nil, errors.Wrap(err, "could not serialize facets")
		}
		values.Set("facets", string(facets))
	}

	var result libssk.SearchResult
	if err := a.do(ctx, "query", map[string]string{"params": values.Encode()}, &result); err != nil {
		return nil, err
	}
	if result.Hits == nil {
		result.Hits = []libssk.Hit{}
	}
	return &result, nil
}

func (a *algolia) do(ctx context.Context, operation string, payload, v any) error {
	u, _ := url.Parse(a.cfg.Endpoint) // Checked by NewAlgolia
	u.Path = path.Join(u.Path, "1/indexes", url.PathEscape(a.cfg.Index), operation)

	b, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "algolia: could not serialize request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), bytes.NewReader(b))
	if err != nil {
		return errors.Wrap(err, "algolia: could not build request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Algolia-Application-Id", a.cfg.ApplicationID)
	req.Header.Set("X-Algolia-API-Key", a.cfg.APIKey)

	res, err := a.cfg.HTTP.Do(req)
	if err != nil {
		return errors.Wrap(err, "algolia: could not perform request")
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		var aerr struct {
			Message string `json:"message"`
		}
		body, _ := io.ReadAll(io.LimitReader(res.Body, 1<<16))
		if json.Unmarshal(body, &aerr) != nil || aerr.Message == "" {
			aerr.Message = http.StatusText(res.StatusCode)
		}

		if res.StatusCode == http.StatusBadRequest {
			return sskerror.BadRequest(aerr.Message)
		}
		return errors.Errorf("algolia: %s: %d %s", operation, res.StatusCode, aerr.Message)
	}

	if v == nil {
		return nil
	}
	return errors.Wrap(json.NewDecoder(res.Body).Decode(v), "algolia: could not parse response")
}
