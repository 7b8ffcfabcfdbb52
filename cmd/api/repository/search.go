package repository

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// SearchQuery holds normalized contact search filters.
// All filters are optional and combine with logical AND.
type SearchQuery struct {
	Search   string
	TagID    *uuid.UUID
	Geo      *GeoFilter
	Page     int
	PageSize int
}

// GeoFilter restricts matches to contacts whose attached address lies
// within RadiusMeters great-circle distance of the given point.
type GeoFilter struct {
	Lat          float64
	Lng          float64
	RadiusMeters float64
}

// Offset returns the row offset for the requested page
func (q SearchQuery) Offset() int {
	return (q.Page - 1) * q.PageSize
}

const summaryColumns = `c.id, c.name, c.avatar, c.activity_name, c.about, c.views_amount, c.saves_amount, c.user_id, c.is_published`

// buildSearchSQL renders the count and select statements plus the shared
// filter arguments. The caller appends LIMIT/OFFSET args for the select.
//
// The geo condition evaluates the haversine distance (mean earth radius
// 6371000 m) against the contact's most recently attached address only, so
// the radius filter stays deterministic if storage ever holds several rows.
func buildSearchSQL(q SearchQuery) (countSQL, selectSQL string, args []interface{}) {
	var clauses []string
	idx := 1

	if q.Search != "" {
		clauses = append(clauses, fmt.Sprintf(
			"(c.name ILIKE $%d OR c.activity_name ILIKE $%d)", idx, idx))
		args = append(args, "%"+q.Search+"%")
		idx++
	}

	if q.TagID != nil {
		clauses = append(clauses, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM contact_tags ct WHERE ct.contact_id = c.id AND ct.tag_id = $%d)", idx))
		args = append(args, *q.TagID)
		idx++
	}

	if q.Geo != nil {
		clauses = append(clauses, fmt.Sprintf(`EXISTS (
			SELECT 1 FROM addresses a
			WHERE a.contact_id = c.id
			  AND a.created_at = (SELECT max(a2.created_at) FROM addresses a2 WHERE a2.contact_id = c.id)
			  AND 2 * 6371000 * asin(sqrt(
					pow(sin(radians(a.lat - $%d) / 2), 2) +
					cos(radians($%d)) * cos(radians(a.lat)) *
					pow(sin(radians(a.lng - $%d) / 2), 2))) <= $%d
		)`, idx, idx, idx+1, idx+2))
		args = append(args, q.Geo.Lat, q.Geo.Lng, q.Geo.RadiusMeters)
		idx += 3
	}

	where := ""
	if len(clauses) > 0 {
		where = " WHERE " + strings.Join(clauses, " AND ")
	}

	countSQL = "SELECT COUNT(*) FROM contacts c" + where

	selectSQL = fmt.Sprintf(
		"SELECT %s FROM contacts c%s ORDER BY c.created_at ASC, c.id ASC LIMIT $%d OFFSET $%d",
		summaryColumns, where, idx, idx+1)

	return countSQL, selectSQL, args
}
