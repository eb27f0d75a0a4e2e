package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupeCategories(t *testing.T) {
	categories := []Category{
		{ID: "1", CategoryName: "Food"},
		{ID: "2", CategoryName: "Transport"},
		{ID: "3", CategoryName: "food"},
		{ID: "4", CategoryName: " FOOD "},
		{ID: "5", CategoryName: "Donation"},
	}

	deduped := DedupeCategories(categories)

	assert.Len(t, deduped, 3)
	// Last-seen record wins per name group, order follows first appearance.
	assert.Equal(t, "4", deduped[0].ID)
	assert.Equal(t, "2", deduped[1].ID)
	assert.Equal(t, "5", deduped[2].ID)
}

func TestDedupeCategoriesEmpty(t *testing.T) {
	assert.Empty(t, DedupeCategories(nil))
	assert.Empty(t, DedupeCategories([]Category{}))
}
