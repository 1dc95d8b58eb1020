package http

import (
	"fmt"
	"net/http"

	"github.com/MKhiriev/onelock/internal/passwords"
	"github.com/MKhiriev/onelock/internal/utils"
)

const (
	modeRandom    = "random"
	modeMemorable = "memorable"
	modePIN       = "pin"
)

type generateRequest struct {
	Mode      string             `json:"mode"`
	Options   *passwords.Options `json:"options,omitempty"`
	WordCount int                `json:"wordCount,omitempty"`
	PINLength int                `json:"pinLength,omitempty"`
}

type generateResponse struct {
	Password string             `json:"password"`
	Strength passwords.Strength `json:"strength"`
}

type strengthRequest struct {
	Password string `json:"password"`
}

func (h *Handler) generatePassword(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := decodeJSON(r, &req, true); err != nil {
		writeServiceError(w, r, "*Handler.generatePassword", err)
		return
	}

	var (
		pw  string
		err error
	)
	switch req.Mode {
	case "", modeRandom:
		opts := passwords.DefaultOptions()
		if req.Options != nil {
			opts = *req.Options
		}
		pw, err = passwords.Generate(opts)
	case modeMemorable:
		pw, err = passwords.Memorable(orDefault(req.WordCount, passwords.DefaultWordCount))
	case modePIN:
		pw, err = passwords.PIN(orDefault(req.PINLength, passwords.DefaultPINLength))
	default:
		err = fmt.Errorf("%w: unknown mode %q", ErrInvalidJSON, req.Mode)
	}
	if err != nil {
		writeServiceError(w, r, "*Handler.generatePassword", err)
		return
	}

	_, _ = utils.WriteJSON(w, generateResponse{Password: pw, Strength: passwords.Check(pw)}, http.StatusOK)
}

func (h *Handler) checkStrength(w http.ResponseWriter, r *http.Request) {
	var req strengthRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeServiceError(w, r, "*Handler.checkStrength", err)
		return
	}
	_, _ = utils.WriteJSON(w, passwords.Check(req.Password), http.StatusOK)
}

func orDefault(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}
