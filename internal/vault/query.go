package vault

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/MKhiriev/onelock/models"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortField selects the key used by Sort.
type SortField string

const (
	SortByName      SortField = "name"
	SortByCreatedAt SortField = "createdAt"
	SortByUpdatedAt SortField = "updatedAt"
)

// SortOrder is ascending or descending.
type SortOrder string

const (
	Ascending  SortOrder = "asc"
	Descending SortOrder = "desc"
)

// ParseSortField accepts the field names used by the CLI and API.
func ParseSortField(s string) (SortField, error) {
	switch f := SortField(s); f {
	case SortByName, SortByCreatedAt, SortByUpdatedAt:
		return f, nil
	case "":
		return SortByName, nil
	}
	return "", fmt.Errorf("unknown sort field %q", s)
}

// ParseSortOrder defaults to ascending.
func ParseSortOrder(s string) (SortOrder, error) {
	switch o := SortOrder(strings.ToLower(s)); o {
	case Ascending, Descending:
		return o, nil
	case "":
		return Ascending, nil
	}
	return "", fmt.Errorf("unknown sort order %q", s)
}

// Search returns the records whose title, username, email, url or notes
// contain query, case-insensitively. A blank query matches everything.
// The result is a new slice; records is not modified.
func Search(records []models.Credential, query string) []models.Credential {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return slices.Clone(records)
	}

	out := make([]models.Credential, 0, len(records))
	for _, r := range records {
		if matches(r, q) {
			out = append(out, r)
		}
	}
	return out
}

func matches(r models.Credential, q string) bool {
	for _, field := range []string{r.Title, r.Username, r.Email, r.URL, r.Notes} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// FilterByCategory keeps records of category c. An empty category keeps
// everything.
func FilterByCategory(records []models.Credential, c models.Category) []models.Credential {
	if c == "" {
		return slices.Clone(records)
	}
	out := make([]models.Credential, 0, len(records))
	for _, r := range records {
		if r.Category == c {
			out = append(out, r)
		}
	}
	return out
}

// FilterFavorites keeps favourite records.
func FilterFavorites(records []models.Credential) []models.Credential {
	out := make([]models.Credential, 0, len(records))
	for _, r := range records {
		if r.IsFavorite {
			out = append(out, r)
		}
	}
	return out
}

// Sort returns a sorted copy of records. Titles are compared with
// case-insensitive collation; ties keep their input order.
func Sort(records []models.Credential, field SortField, order SortOrder) []models.Credential {
	out := slices.Clone(records)

	var compare func(a, b models.Credential) int
	switch field {
	case SortByCreatedAt:
		compare = func(a, b models.Credential) int { return a.CreatedAt.Compare(b.CreatedAt) }
	case SortByUpdatedAt:
		compare = func(a, b models.Credential) int { return a.UpdatedAt.Compare(b.UpdatedAt) }
	default:
		col := collate.New(language.Und, collate.IgnoreCase)
		compare = func(a, b models.Credential) int {
			if c := col.CompareString(a.Title, b.Title); c != 0 {
				return c
			}
			return cmp.Compare(a.Title, b.Title)
		}
	}

	if order == Descending {
		asc := compare
		compare = func(a, b models.Credential) int { return asc(b, a) }
	}

	slices.SortStableFunc(out, compare)
	return out
}

// Filter combines the query helpers the way list views use them.
type Filter struct {
	Query         string
	Category      models.Category
	FavoritesOnly bool
	SortBy        SortField
	Order         SortOrder
}

// Apply runs category, favourite and text filters, then sorts.
func (f Filter) Apply(records []models.Credential) []models.Credential {
	out := FilterByCategory(records, f.Category)
	if f.FavoritesOnly {
		out = FilterFavorites(out)
	}
	out = Search(out, f.Query)
	return Sort(out, f.SortBy, f.Order)
}
