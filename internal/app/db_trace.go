package app

import (
	"regexp"
	"strings"
)

// Backends truncate long span attributes anyway, so traced queries are
// whitespace-collapsed and capped here.
const tracedQueryLimit = 512

var collapseWhitespace = regexp.MustCompile(`\s+`)

func formatDBQueryForTrace(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return query
	}

	flattened := collapseWhitespace.ReplaceAllString(query, " ")
	if len(flattened) > tracedQueryLimit {
		return flattened[:tracedQueryLimit] + "..."
	}

	return flattened
}
