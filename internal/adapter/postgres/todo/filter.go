package todo

import (
	"github.com/heartmarshall/daypulse-backend/internal/domain"
)

const (
	defaultLimit = 50
	maxLimit     = 200

	sortByDueDate   = "due_date"
	sortByPriority  = "priority"
	sortByCreatedAt = "created_at"

	sortOrderASC  = "ASC"
	sortOrderDESC = "DESC"
)

// normalizeFilter applies defaults and clamps values. Sort inputs are
// whitelisted here because they are interpolated into the ORDER BY clause.
func normalizeFilter(f domain.TodoFilter) domain.TodoFilter {
	switch f.SortBy {
	case sortByDueDate, sortByPriority, sortByCreatedAt:
		// valid
	default:
		f.SortBy = sortByDueDate
	}

	switch f.SortOrder {
	case sortOrderASC, sortOrderDESC:
		// valid
	default:
		f.SortOrder = sortOrderASC
	}

	if f.Limit <= 0 {
		f.Limit = defaultLimit
	}
	if f.Limit > maxLimit {
		f.Limit = maxLimit
	}

	if f.Offset < 0 {
		f.Offset = 0
	}

	return f
}
