package http

import (
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
)

const maxBodyBytes = 4 << 20

// decodeJSON reads a single JSON value into v. Unknown fields are
// rejected. An empty body is an error unless allowEmpty is set.
func decodeJSON(r *http.Request, v any, allowEmpty bool) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if err == io.EOF && allowEmpty {
			return nil
		}
		return fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	return nil
}

// requireJSON rejects requests whose Content-Type is not application/json.
func requireJSON(r *http.Request) error {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mediaType != "application/json" {
		return ErrUnsupportedMediaType
	}
	return nil
}
