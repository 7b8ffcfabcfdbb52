package repository

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSearchSQL_NoFilters(t *testing.T) {
	countSQL, selectSQL, args := buildSearchSQL(SearchQuery{Page: 1, PageSize: 20})

	assert.Equal(t, "SELECT COUNT(*) FROM contacts c", countSQL)
	assert.NotContains(t, selectSQL, "WHERE")
	assert.Contains(t, selectSQL, "ORDER BY c.created_at ASC, c.id ASC")
	assert.Contains(t, selectSQL, "LIMIT $1 OFFSET $2")
	assert.Empty(t, args)
}

func TestBuildSearchSQL_TextFilter(t *testing.T) {
	countSQL, selectSQL, args := buildSearchSQL(SearchQuery{Search: "anna", Page: 1, PageSize: 20})

	assert.Contains(t, countSQL, "c.name ILIKE $1 OR c.activity_name ILIKE $1")
	assert.Contains(t, selectSQL, "LIMIT $2 OFFSET $3")

	require.Len(t, args, 1)
	assert.Equal(t, "%anna%", args[0])
}

func TestBuildSearchSQL_TagFilter(t *testing.T) {
	tagID := uuid.New()
	countSQL, _, args := buildSearchSQL(SearchQuery{TagID: &tagID, Page: 1, PageSize: 20})

	assert.Contains(t, countSQL, "contact_tags ct WHERE ct.contact_id = c.id AND ct.tag_id = $1")

	require.Len(t, args, 1)
	assert.Equal(t, tagID, args[0])
}

func TestBuildSearchSQL_GeoFilter(t *testing.T) {
	q := SearchQuery{
		Geo:      &GeoFilter{Lat: 52.52, Lng: 13.405, RadiusMeters: 5000},
		Page:     1,
		PageSize: 20,
	}

	countSQL, selectSQL, args := buildSearchSQL(q)

	assert.Contains(t, countSQL, "FROM addresses a")
	assert.Contains(t, countSQL, "max(a2.created_at)")
	assert.Contains(t, countSQL, "6371000")
	assert.Contains(t, selectSQL, "LIMIT $4 OFFSET $5")

	require.Len(t, args, 3)
	assert.Equal(t, 52.52, args[0])
	assert.Equal(t, 13.405, args[1])
	assert.Equal(t, float64(5000), args[2])
}

func TestBuildSearchSQL_AllFilters(t *testing.T) {
	tagID := uuid.New()
	q := SearchQuery{
		Search:   "bakery",
		TagID:    &tagID,
		Geo:      &GeoFilter{Lat: 1, Lng: 2, RadiusMeters: 300},
		Page:     3,
		PageSize: 10,
	}

	countSQL, selectSQL, args := buildSearchSQL(q)

	assert.Contains(t, countSQL, "ILIKE $1")
	assert.Contains(t, countSQL, "ct.tag_id = $2")
	assert.Contains(t, countSQL, "<= $5")
	assert.Contains(t, selectSQL, "LIMIT $6 OFFSET $7")

	require.Len(t, args, 5)
	assert.Equal(t, "%bakery%", args[0])
	assert.Equal(t, tagID, args[1])

	assert.Equal(t, 20, q.Offset())
}
