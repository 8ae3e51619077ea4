package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPageWindows(t *testing.T) {
	all := []int{1, 2, 3, 4, 5}

	page := NewPage(all, 0, 2)
	assert.Equal(t, []int{1, 2}, page.Content)
	assert.Equal(t, int64(5), page.TotalElements)
	assert.Equal(t, 3, page.TotalPages)

	page = NewPage(all, 2, 2)
	assert.Equal(t, []int{5}, page.Content)

	// Past the end: empty content, same totals.
	page = NewPage(all, 9, 2)
	assert.Empty(t, page.Content)
	assert.Equal(t, int64(5), page.TotalElements)
}

func TestNewPageDefaults(t *testing.T) {
	all := []int{1, 2, 3}

	// Non-positive size falls back to 20, negative page to 0.
	page := NewPage(all, -1, 0)
	assert.Equal(t, 0, page.Page)
	assert.Equal(t, 20, page.Size)
	assert.Equal(t, all, page.Content)
	assert.Equal(t, 1, page.TotalPages)
}
