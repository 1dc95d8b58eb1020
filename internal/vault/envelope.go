package vault

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/MKhiriev/onelock/internal/crypto"
	"github.com/MKhiriev/onelock/models"
)

const envelopeVersion = 1

// envelope is the plaintext layout of the vault blob.
type envelope struct {
	Version int                 `json:"version"`
	Records []models.Credential `json:"records"`
}

// encode serialises records and seals them with c.
func encode(c crypto.Cipher, records []models.Credential) (string, error) {
	if records == nil {
		records = []models.Credential{}
	}
	plain, err := json.Marshal(envelope{Version: envelopeVersion, Records: records})
	if err != nil {
		return "", fmt.Errorf("marshal vault: %w", err)
	}
	return c.Encrypt(plain)
}

// decode opens blob and validates the records it holds. Every failure is
// reported as ErrVaultCorrupted. A bare JSON array is accepted as the
// legacy layout.
func (s *Store) decode(ctx context.Context, c crypto.Cipher, blob string) ([]models.Credential, error) {
	plain, err := c.Decrypt(blob)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrVaultCorrupted, err)
	}

	var records []models.Credential
	trimmed := bytes.TrimSpace(plain)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		err = json.Unmarshal(trimmed, &records)
	} else {
		var env envelope
		err = json.Unmarshal(trimmed, &env)
		if err == nil && env.Version != envelopeVersion {
			err = fmt.Errorf("unsupported envelope version %d", env.Version)
		}
		records = env.Records
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrVaultCorrupted, err)
	}

	for i := range records {
		if records[i].Category == "" {
			records[i].Category = models.CategoryOther
		}
	}
	if err = s.validator.Validate(ctx, records); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrVaultCorrupted, err)
	}
	if records == nil {
		records = []models.Credential{}
	}

	return records, nil
}
