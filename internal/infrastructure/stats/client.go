// Package stats is the HTTP client side of the view-statistics collaborator.
package stats

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	zlog "github.com/rs/zerolog/log"

	"github.com/dkotelnikov/eventory/internal/domain"
	"github.com/dkotelnikov/eventory/internal/stats/statdto"
)

type Client struct {
	baseURL string
	app     string
	http    *http.Client
}

func NewClient(baseURL, app string, timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		app:     app,
		http:    &http.Client{Timeout: timeout},
	}
}

// RecordView posts a hit and never fails the caller; a lost view is not worth
// failing a read for.
func (c *Client) RecordView(ctx context.Context, uri, ip string) {
	hit := statdto.EndpointHit{
		App:       c.app,
		URI:       uri,
		IP:        ip,
		Timestamp: statdto.WireTime(time.Now()),
	}
	body, err := json.Marshal(hit)
	if err != nil {
		zlog.Warn().Err(err).Str("uri", uri).Msg("stats hit encode failed")
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/hit", bytes.NewReader(body))
	if err != nil {
		zlog.Warn().Err(err).Str("uri", uri).Msg("stats hit request failed")
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		zlog.Warn().Err(err).Str("uri", uri).Msg("stats hit send failed")
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		zlog.Warn().Int("status", resp.StatusCode).Str("uri", uri).Msg("stats hit rejected")
	}
}

// ViewCounts asks the collaborator for hit counts per uri. A 4xx answer means
// the caller built a bad query and surfaces as IncorrectParameters; transport
// and 5xx failures are returned as-is for the caller to degrade on.
func (c *Client) ViewCounts(ctx context.Context, uris []string, since, until time.Time, uniqueOnly bool) (map[string]int64, error) {
	q := url.Values{}
	q.Set("start", since.Format(statdto.TimeLayout))
	q.Set("end", until.Format(statdto.TimeLayout))
	if len(uris) > 0 {
		q.Set("uris", strings.Join(uris, ","))
	}
	if uniqueOnly {
		q.Set("unique", "true")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/stats?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 && resp.StatusCode < 500 {
		return nil, domain.ErrIncorrectParameters("stats query rejected",
			fmt.Sprintf("stats service answered %d", resp.StatusCode))
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("stats service answered %d", resp.StatusCode)
	}

	var rows []statdto.ViewStats
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("decode stats answer: %w", err)
	}

	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.URI] += row.Hits
	}
	return out, nil
}
