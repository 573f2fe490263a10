package api

import (
	"slices"
	"sort"
	"strings"

	"github.com/bialog/bialog/internal/pagination"
)

// Sort fields for purchase details.
const (
	SortByName     = "name"
	SortByCategory = "category"
	SortByPrice    = "price"
	SortByCount    = "count"
)

var detailSortFields = []string{SortByCategory, SortByCount, SortByName, SortByPrice}

// IsValidDetailSortField reports whether field can sort purchase details.
func IsValidDetailSortField(field string) bool {
	return slices.Contains(detailSortFields, field)
}

// DetailSortFields returns the valid sort fields in alphabetical order.
func DetailSortFields() []string {
	return slices.Clone(detailSortFields)
}

// SortDetails returns a sorted copy of items. An unknown field returns items
// unchanged.
func SortDetails(items []PurchaseItem, field, order string) []PurchaseItem {
	if !IsValidDetailSortField(field) {
		return items
	}

	sorted := slices.Clone(items)
	sort.SliceStable(sorted, func(i, j int) bool {
		if order == pagination.SortOrderDesc {
			i, j = j, i
		}
		a, b := sorted[i], sorted[j]
		switch field {
		case SortByPrice:
			return a.Price < b.Price
		case SortByCount:
			return a.Count < b.Count
		case SortByCategory:
			return strings.ToLower(a.Category) < strings.ToLower(b.Category)
		default:
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		}
	})
	return sorted
}
