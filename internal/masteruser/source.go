package masteruser

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/MKhiriev/onelock/internal/utils"
	"github.com/MKhiriev/onelock/models"
)

//go:embed dataset.json
var bundledDataset []byte

// Dataset is the wire shape of a remote record collection.
type Dataset struct {
	Passwords []models.Credential `json:"passwords"`
}

// Source supplies the dataset that replaces the vault on pull.
type Source interface {
	Fetch(ctx context.Context) (Dataset, error)
}

// Pusher receives a snapshot of the vault on push.
type Pusher interface {
	Push(ctx context.Context, snapshot Snapshot) error
}

func decodeDataset(data []byte) (Dataset, error) {
	var ds Dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return Dataset{}, fmt.Errorf("%w: %w", ErrInvalidDataset, err)
	}
	if ds.Passwords == nil {
		return Dataset{}, fmt.Errorf("%w: missing passwords", ErrInvalidDataset)
	}
	return ds, nil
}

// EmbeddedSource serves the dataset bundled with the binary.
type EmbeddedSource struct{}

func (EmbeddedSource) Fetch(context.Context) (Dataset, error) {
	return decodeDataset(bundledDataset)
}

// FileSource reads the dataset from a local JSON file.
type FileSource struct {
	Path string
}

// Fetch reads and decodes the file at Path.
func (s FileSource) Fetch(context.Context) (Dataset, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return Dataset{}, fmt.Errorf("read dataset: %w", err)
	}
	return decodeDataset(data)
}

// HTTPSource downloads the dataset. With a signing key set, the response
// must carry a valid utils.SignatureHeader.
type HTTPSource struct {
	client     *utils.HTTPClient
	url        string
	signingKey string
}

// NewHTTPSource fetches the dataset from url. A non-empty signingKey
// requires a valid response signature.
func NewHTTPSource(client *utils.HTTPClient, url, signingKey string) *HTTPSource {
	return &HTTPSource{client: client, url: url, signingKey: signingKey}
}

func (s *HTTPSource) Fetch(ctx context.Context) (Dataset, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		Get(s.url)
	if err != nil {
		return Dataset{}, fmt.Errorf("%w: fetch dataset: %w", ErrRemote, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return Dataset{}, err
	}

	body := resp.Body()
	if s.signingKey != "" && !utils.VerifySignature(body, s.signingKey, resp.Header().Get(utils.SignatureHeader)) {
		return Dataset{}, ErrBadSignature
	}
	return decodeDataset(body)
}
