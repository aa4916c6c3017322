package store

// Pagination bounds for list queries.
const (
	defaultListLimit = 50
	maxListLimit     = 1000
)

// clampPage normalizes limit and offset for list queries.
func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	if limit > maxListLimit {
		limit = maxListLimit
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
