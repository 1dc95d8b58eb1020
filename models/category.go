// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"fmt"
	"strings"
)

// Category groups vault records for filtering in the UI.
type Category string

// Fixed set of categories. Records decoded with an empty category fall back
// to [CategoryOther].
const (
	CategorySocial        Category = "Social"
	CategoryFinance       Category = "Finance"
	CategoryWork          Category = "Work"
	CategoryShopping      Category = "Shopping"
	CategoryEntertainment Category = "Entertainment"
	CategoryOther         Category = "Other"
)

// Categories lists every valid category in display order.
var Categories = []Category{
	CategorySocial,
	CategoryFinance,
	CategoryWork,
	CategoryShopping,
	CategoryEntertainment,
	CategoryOther,
}

// Valid reports whether c is one of [Categories].
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

func (c Category) String() string {
	return string(c)
}

// ParseCategory resolves s case-insensitively. An empty string maps to
// [CategoryOther].
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return CategoryOther, nil
	}
	for _, known := range Categories {
		if strings.EqualFold(s, string(known)) {
			return known, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}
