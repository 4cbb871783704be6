package tablequery

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// SortDirection is ascending (1) or descending (-1).
type SortDirection int

const (
	Ascending  SortDirection = 1
	Descending SortDirection = -1
)

// Sort is the single active sort column. The sort map holds at most one
// field: setting a new field replaces the previous one entirely.
type Sort struct {
	Field     string        `json:"field"`
	Direction SortDirection `json:"direction"`
}

// DateRange is a half-open filter value over a date field. On the wire a
// field named "xDate" becomes the params "xDate.start" and "xDate.end".
type DateRange struct {
	Start time.Time `json:"startingDate"`
	End   time.Time `json:"endingDate"`
}

// IsZero reports whether both bounds are unset.
func (r DateRange) IsZero() bool {
	return r.Start.IsZero() && r.End.IsZero()
}

// FilterObject is an open-ended field→value map. Supported value kinds:
// string, bool, int, int64, float64, []string and DateRange.
type FilterObject map[string]interface{}

// Clone returns a shallow copy; value kinds above are immutable except
// []string, which is copied as well.
func (f FilterObject) Clone() FilterObject {
	if f == nil {
		return nil
	}
	out := make(FilterObject, len(f))
	for k, v := range f {
		if ss, ok := v.([]string); ok {
			v = append([]string(nil), ss...)
		}
		out[k] = v
	}
	return out
}

// IsEmpty reports whether the filter carries no effective criteria.
func (f FilterObject) IsEmpty() bool {
	for _, v := range f {
		if !emptyFilterValue(v) {
			return false
		}
	}
	return true
}

func emptyFilterValue(v interface{}) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == ""
	case []string:
		return len(val) == 0
	case DateRange:
		return val.IsZero()
	case *DateRange:
		return val == nil || val.IsZero()
	default:
		return false
	}
}

// ListQuery is the canonical request descriptor for one list fetch.
// Offset is in rows (the store keeps a page index, the binding converts).
type ListQuery struct {
	Endpoint string
	PageKey  string
	Offset   int
	Limit    int
	Sort     *Sort
	Search   string
	Filter   FilterObject
}

// CacheKey builds the deterministic composite cache key. Optional parts
// (sort, search, filter) are included only when set, the filter is wrapped
// under the page key and serialized with sorted field order, so identical
// tuples always collide and any differing field never does.
func (q ListQuery) CacheKey() string {
	var b strings.Builder
	b.WriteString(q.Endpoint)
	fmt.Fprintf(&b, "?offset=%d&limit=%d", q.Offset, q.Limit)
	if q.Sort != nil && q.Sort.Field != "" {
		fmt.Fprintf(&b, "&sort=%s:%d", q.Sort.Field, q.Sort.Direction)
	}
	if q.Search != "" {
		b.WriteString("&search=")
		b.WriteString(url.QueryEscape(q.Search))
	}
	if !q.Filter.IsEmpty() {
		vals := url.Values{}
		flattenFilter(q.Filter, vals)
		fmt.Fprintf(&b, "&filter=%s{%s}", url.QueryEscape(q.PageKey), vals.Encode())
	}
	return b.String()
}

// Values encodes the descriptor as wire query params. Sort is encoded as
// "field" for ascending and "-field" for descending; filter fields are
// flattened directly into params.
func (q ListQuery) Values() url.Values {
	vals := url.Values{}
	vals.Set("offset", strconv.Itoa(q.Offset))
	vals.Set("limit", strconv.Itoa(q.Limit))
	if q.Sort != nil && q.Sort.Field != "" {
		field := q.Sort.Field
		if q.Sort.Direction == Descending {
			field = "-" + field
		}
		vals.Set("sort", field)
	}
	if q.Search != "" {
		vals.Set("search", q.Search)
	}
	if !q.Filter.IsEmpty() {
		flattenFilter(q.Filter, vals)
	}
	return vals
}

// URL renders the full request URL for the descriptor.
func (q ListQuery) URL(base string) string {
	return strings.TrimRight(base, "/") + q.Endpoint + "?" + q.Values().Encode()
}

func flattenFilter(f FilterObject, vals url.Values) {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		switch v := f[k].(type) {
		case nil:
			// skip
		case string:
			if v != "" {
				vals.Set(k, v)
			}
		case bool:
			vals.Set(k, strconv.FormatBool(v))
		case int:
			vals.Set(k, strconv.Itoa(v))
		case int64:
			vals.Set(k, strconv.FormatInt(v, 10))
		case float64:
			vals.Set(k, strconv.FormatFloat(v, 'f', -1, 64))
		case []string:
			for _, item := range v {
				vals.Add(k, item)
			}
		case DateRange:
			flattenDateRange(k, v, vals)
		case *DateRange:
			if v != nil {
				flattenDateRange(k, *v, vals)
			}
		default:
			vals.Set(k, fmt.Sprintf("%v", v))
		}
	}
}

func flattenDateRange(key string, r DateRange, vals url.Values) {
	if !r.Start.IsZero() {
		vals.Set(key+".start", r.Start.Format(dateLayout))
	}
	if !r.End.IsZero() {
		vals.Set(key+".end", r.End.Format(dateLayout))
	}
}

// ParseListQuery is the server-side inverse of Values. Only the filter
// fields listed in allowedFilters are picked up; everything else in the
// query string is ignored. Offset and limit fall back to 0 and
// DefaultLimit on bad or missing input.
func ParseListQuery(vals url.Values, allowedFilters []string) ListQuery {
	q := ListQuery{Limit: DefaultLimit}

	if n, err := strconv.Atoi(vals.Get("offset")); err == nil && n >= 0 {
		q.Offset = n
	}
	if n, err := strconv.Atoi(vals.Get("limit")); err == nil && n > 0 {
		if n > MaxLimit {
			n = MaxLimit
		}
		q.Limit = n
	}
	if s := vals.Get("sort"); s != "" {
		srt := Sort{Field: s, Direction: Ascending}
		if strings.HasPrefix(s, "-") {
			srt = Sort{Field: strings.TrimPrefix(s, "-"), Direction: Descending}
		}
		q.Sort = &srt
	}
	q.Search = vals.Get("search")

	filter := FilterObject{}
	for _, field := range allowedFilters {
		if start, end := vals.Get(field+".start"), vals.Get(field+".end"); start != "" || end != "" {
			var r DateRange
			if t, err := time.Parse(dateLayout, start); err == nil {
				r.Start = t
			}
			if t, err := time.Parse(dateLayout, end); err == nil {
				r.End = t
			}
			if !r.IsZero() {
				filter[field] = r
			}
			continue
		}
		if items, ok := vals[field]; ok && len(items) > 0 {
			if len(items) == 1 {
				filter[field] = items[0]
			} else {
				filter[field] = append([]string(nil), items...)
			}
		}
	}
	if !filter.IsEmpty() {
		q.Filter = filter
	}
	return q
}
