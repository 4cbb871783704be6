package tablequery

import "strings"

// PageKey derives a stable per-page key from a route path. Query string
// and fragment are stripped, duplicate and trailing slashes collapsed, so
// the same logical page always resolves to the same key across remounts.
func PageKey(routePath string) string {
	path := routePath
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}

	parts := strings.Split(path, "/")
	cleaned := parts[:0]
	for _, p := range parts {
		if p != "" {
			cleaned = append(cleaned, p)
		}
	}
	if len(cleaned) == 0 {
		return "/"
	}
	return "/" + strings.Join(cleaned, "/")
}
