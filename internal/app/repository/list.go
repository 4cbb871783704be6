package repository

import (
	"Backend-CMS/internal/app/tablequery"

	"gorm.io/gorm"
)

// applySort orders the query by the requested column when it is in the
// whitelist; columns maps wire field names to SQL columns. Falls back to
// fallback when no (or an unknown) sort is requested.
func applySort(query *gorm.DB, srt *tablequery.Sort, columns map[string]string, fallback string) *gorm.DB {
	if srt != nil {
		if col, ok := columns[srt.Field]; ok {
			dir := "ASC"
			if srt.Direction == tablequery.Descending {
				dir = "DESC"
			}
			return query.Order(col + " " + dir)
		}
	}
	return query.Order(fallback)
}

// applyPage clamps and applies offset/limit. Offset arrives in rows.
func applyPage(query *gorm.DB, q tablequery.ListQuery) *gorm.DB {
	limit := q.Limit
	if limit <= 0 {
		limit = tablequery.DefaultLimit
	}
	if limit > tablequery.MaxLimit {
		limit = tablequery.MaxLimit
	}
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}
	return query.Offset(offset).Limit(limit)
}

// filterBool reads an optional boolean filter value; ParseListQuery
// delivers single values as strings.
func filterBool(f tablequery.FilterObject, field string) (bool, bool) {
	v, ok := f[field]
	if !ok {
		return false, false
	}
	switch val := v.(type) {
	case bool:
		return val, true
	case string:
		if val == "true" {
			return true, true
		}
		if val == "false" {
			return false, true
		}
	}
	return false, false
}

// filterString reads an optional string filter value.
func filterString(f tablequery.FilterObject, field string) (string, bool) {
	v, ok := f[field]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// filterStrings reads a filter value that may carry one or many strings.
func filterStrings(f tablequery.FilterObject, field string) []string {
	v, ok := f[field]
	if !ok {
		return nil
	}
	switch val := v.(type) {
	case string:
		if val == "" {
			return nil
		}
		return []string{val}
	case []string:
		return val
	}
	return nil
}

// filterDateRange reads an optional date range filter value.
func filterDateRange(f tablequery.FilterObject, field string) (tablequery.DateRange, bool) {
	v, ok := f[field]
	if !ok {
		return tablequery.DateRange{}, false
	}
	switch val := v.(type) {
	case tablequery.DateRange:
		return val, !val.IsZero()
	case *tablequery.DateRange:
		if val == nil {
			return tablequery.DateRange{}, false
		}
		return *val, !val.IsZero()
	}
	return tablequery.DateRange{}, false
}
