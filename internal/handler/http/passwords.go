package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/MKhiriev/onelock/internal/utils"
	"github.com/MKhiriev/onelock/internal/vault"
	"github.com/MKhiriev/onelock/models"
	"github.com/go-chi/chi/v5"
)

// listFilter reads q, category, favorites, sort and order from the query
// string.
func listFilter(r *http.Request) (vault.Filter, error) {
	q := r.URL.Query()

	f := vault.Filter{Query: q.Get("q")}

	if c := q.Get("category"); c != "" {
		category, err := models.ParseCategory(c)
		if err != nil {
			return vault.Filter{}, fmt.Errorf("%w: %w", ErrInvalidQuery, err)
		}
		f.Category = category
	}

	if fav := q.Get("favorites"); fav != "" {
		v, err := strconv.ParseBool(fav)
		if err != nil {
			return vault.Filter{}, fmt.Errorf("%w: favorites: %w", ErrInvalidQuery, err)
		}
		f.FavoritesOnly = v
	}

	var err error
	if f.SortBy, err = vault.ParseSortField(q.Get("sort")); err != nil {
		return vault.Filter{}, fmt.Errorf("%w: %w", ErrInvalidQuery, err)
	}
	if f.Order, err = vault.ParseSortOrder(q.Get("order")); err != nil {
		return vault.Filter{}, fmt.Errorf("%w: %w", ErrInvalidQuery, err)
	}
	return f, nil
}

func (h *Handler) listPasswords(w http.ResponseWriter, r *http.Request) {
	filter, err := listFilter(r)
	if err != nil {
		writeServiceError(w, r, "*Handler.listPasswords", err)
		return
	}

	records, err := h.services.Vault.LoadAll(r.Context())
	if err != nil {
		writeServiceError(w, r, "*Handler.listPasswords", err)
		return
	}
	_, _ = utils.WriteJSON(w, filter.Apply(records), http.StatusOK)
}

func (h *Handler) createPassword(w http.ResponseWriter, r *http.Request) {
	var in models.CredentialInput
	if err := decodeJSON(r, &in, false); err != nil {
		writeServiceError(w, r, "*Handler.createPassword", err)
		return
	}

	created, err := h.services.Vault.Add(r.Context(), in)
	if err != nil {
		writeServiceError(w, r, "*Handler.createPassword", err)
		return
	}
	_, _ = utils.WriteJSON(w, created, http.StatusCreated)
}

func (h *Handler) getPassword(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	record, ok, err := h.services.Vault.FindByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, "*Handler.getPassword", err)
		return
	}
	if !ok {
		writeServiceError(w, r, "*Handler.getPassword", fmt.Errorf("%w: %s", vault.ErrRecordNotFound, id))
		return
	}
	_, _ = utils.WriteJSON(w, record, http.StatusOK)
}

func (h *Handler) updatePassword(w http.ResponseWriter, r *http.Request) {
	var patch models.CredentialPatch
	if err := decodeJSON(r, &patch, false); err != nil {
		writeServiceError(w, r, "*Handler.updatePassword", err)
		return
	}

	updated, err := h.services.Vault.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		writeServiceError(w, r, "*Handler.updatePassword", err)
		return
	}
	_, _ = utils.WriteJSON(w, updated, http.StatusOK)
}

func (h *Handler) toggleFavorite(w http.ResponseWriter, r *http.Request) {
	updated, err := h.services.Vault.ToggleFavorite(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, "*Handler.toggleFavorite", err)
		return
	}
	_, _ = utils.WriteJSON(w, updated, http.StatusOK)
}

// deletePassword answers 204 whether or not the record existed.
func (h *Handler) deletePassword(w http.ResponseWriter, r *http.Request) {
	if err := h.services.Vault.Remove(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, r, "*Handler.deletePassword", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
