package masteruser

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/MKhiriev/onelock/internal/utils"
	"github.com/go-resty/resty/v2"
)

// Snapshot is what a push sends: the encrypted vault blob as stored, never
// plaintext records.
type Snapshot struct {
	Username string    `json:"username"`
	Records  int       `json:"records"`
	Blob     string    `json:"blob"`
	SyncedAt time.Time `json:"syncedAt"`
}

// NopPusher accepts every snapshot and sends nothing. Push then only
// records the sync time.
type NopPusher struct{}

func (NopPusher) Push(context.Context, Snapshot) error { return nil }

// HTTPPusher POSTs snapshots as JSON.
type HTTPPusher struct {
	client     *utils.HTTPClient
	url        string
	signingKey string
}

// NewHTTPPusher posts snapshots to url, signed with signingKey when set.
func NewHTTPPusher(client *utils.HTTPClient, url, signingKey string) *HTTPPusher {
	return &HTTPPusher{client: client, url: url, signingKey: signingKey}
}

// Push sends the snapshot as JSON.
func (p *HTTPPusher) Push(ctx context.Context, snapshot Snapshot) error {
	body, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	req := p.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body)
	if p.signingKey != "" {
		req.SetHeader(utils.SignatureHeader, utils.Sign(body, p.signingKey))
	}

	resp, err := req.Post(p.url)
	if err != nil {
		return fmt.Errorf("%w: push snapshot: %w", ErrRemote, err)
	}
	return mapHTTPError(resp)
}

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))
	if body == "" {
		body = http.StatusText(resp.StatusCode())
	}
	return fmt.Errorf("%w: http %d: %s", ErrRemote, resp.StatusCode(), body)
}
