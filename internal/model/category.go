package model

import "strings"

// Category is an expense/income category owned by an organization.
type Category struct {
	ID           string `json:"id"`
	CategoryName string `json:"categoryName"`
}

// DedupeCategories collapses case-insensitive duplicate category names to a
// single entry. The upstream list may contain near-duplicate entries from
// independent creation events ("Food" and "food"); the last-seen record wins
// for each group, and groups keep the order in which their key first appeared.
func DedupeCategories(categories []Category) []Category {
	index := make(map[string]int, len(categories))
	result := make([]Category, 0, len(categories))

	for _, cat := range categories {
		key := strings.ToLower(strings.TrimSpace(cat.CategoryName))
		if pos, seen := index[key]; seen {
			result[pos] = cat
			continue
		}
		index[key] = len(result)
		result = append(result, cat)
	}

	return result
}
