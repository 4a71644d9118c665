package recent

import (
	"context"

	"github.com/shandysiswandi/goflightstore/internal/storefront/entity"
)

// Limit caps how many airports are remembered per field.
const Limit = 5

// Store persists the recently selected airports of one owner, one list per
// field kind, most recent first.
type Store interface {
	Load(ctx context.Context, owner string, kind entity.FieldKind) ([]entity.Airport, error)
	Save(ctx context.Context, owner string, kind entity.FieldKind, airports []entity.Airport) error
}

// Push puts a at the front of list, drops any older entry with the same id
// and truncates to Limit. list is not modified.
func Push(list []entity.Airport, a entity.Airport) []entity.Airport {
	out := make([]entity.Airport, 0, Limit)
	out = append(out, a)
	for _, item := range list {
		if len(out) == Limit {
			break
		}
		if item.ID == a.ID {
			continue
		}
		out = append(out, item)
	}
	return out
}
