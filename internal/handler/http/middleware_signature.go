package http

import (
	"net/http"

	"github.com/MKhiriev/onelock/internal/utils"
)

// withSignature adds utils.SignatureHeader, an HMAC-SHA256 of the body
// under the configured signing key, to every response. Without a key it
// passes responses through untouched.
func (h *Handler) withSignature(next http.Handler) http.Handler {
	if h.signingKey == "" {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		bw := newBufferedWriter()
		next.ServeHTTP(bw, r)

		bw.Header().Set(utils.SignatureHeader, utils.Sign(bw.body.Bytes(), h.signingKey))
		if err := bw.flush(w); err != nil {
			h.logger.Err(err).Str("func", "*Handler.withSignature").Msg("failed to write signed response")
		}
	})
}
