package airport

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/goflightstore/internal/storefront/entity"
	"github.com/shandysiswandi/goflightstore/internal/storefront/recent"
)

const (
	MaxResults = 8
	// An empty query shows this many recents ahead of the catalog defaults.
	maxRecentShown  = 3
	maxDefaultShown = 5
)

//go:embed airports.json
var defaultCatalog []byte

type record struct {
	ID          int    `json:"id"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	City        string `json:"city"`
	Country     string `json:"country"`
	Description string `json:"description"`
}

// Directory searches a fixed airport list and remembers what each owner
// picked per field.
type Directory struct {
	airports []entity.Airport
	haystack []string
	byCode   map[string]entity.Airport
	recents  recent.Store
}

// NewDirectory builds a directory over the embedded airport list.
func NewDirectory(recents recent.Store) (*Directory, error) {
	var records []record
	if err := json.Unmarshal(defaultCatalog, &records); err != nil {
		return nil, fmt.Errorf("decode airport catalog: %w", err)
	}
	airports := make([]entity.Airport, 0, len(records))
	for _, r := range records {
		airports = append(airports, entity.Airport{
			ID:          r.ID,
			Code:        r.Code,
			Name:        r.Name,
			City:        r.City,
			Country:     r.Country,
			Description: r.Description,
		})
	}
	return New(airports, recents)
}

// New fails when two airports share a code, since lookup by code would be
// ambiguous.
func New(airports []entity.Airport, recents recent.Store) (*Directory, error) {
	d := &Directory{
		airports: make([]entity.Airport, 0, len(airports)),
		haystack: make([]string, 0, len(airports)),
		byCode:   make(map[string]entity.Airport, len(airports)),
		recents:  recents,
	}
	for _, a := range airports {
		code := strings.ToUpper(strings.TrimSpace(a.Code))
		if len(code) != 3 {
			return nil, fmt.Errorf("airport %d: code %q is not three letters", a.ID, a.Code)
		}
		if _, dup := d.byCode[code]; dup {
			return nil, fmt.Errorf("airport %d: duplicate code %s", a.ID, code)
		}
		a.Code = code
		d.byCode[code] = a
		d.airports = append(d.airports, a)
		d.haystack = append(d.haystack, strings.ToLower(strings.Join([]string{a.Code, a.Name, a.City, a.Country}, " ")))
	}
	return d, nil
}

func (d *Directory) Lookup(code string) (entity.Airport, bool) {
	a, ok := d.byCode[strings.ToUpper(strings.TrimSpace(code))]
	return a, ok
}

func (d *Directory) All() []entity.Airport {
	return append([]entity.Airport(nil), d.airports...)
}

// Search never fails: a query that matches nothing yields an empty list and
// an unreadable recency list is treated as empty.
func (d *Directory) Search(ctx context.Context, owner, query string, kind entity.FieldKind) []entity.Airport {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return d.suggestions(ctx, owner, kind)
	}

	out := make([]entity.Airport, 0, MaxResults)
	for i, text := range d.haystack {
		if !strings.Contains(text, q) {
			continue
		}
		out = append(out, d.airports[i])
		if len(out) == MaxResults {
			break
		}
	}
	return out
}

func (d *Directory) suggestions(ctx context.Context, owner string, kind entity.FieldKind) []entity.Airport {
	recents := d.loadRecents(ctx, owner, kind)

	out := make([]entity.Airport, 0, MaxResults)
	seen := make(map[int]struct{}, len(recents))
	for _, a := range recents {
		if len(out) == maxRecentShown {
			break
		}
		if _, dup := seen[a.ID]; dup {
			continue
		}
		seen[a.ID] = struct{}{}
		out = append(out, a)
	}

	// Every recent is excluded from the defaults, including the ones past
	// the shown three.
	for _, a := range recents {
		seen[a.ID] = struct{}{}
	}

	defaults := 0
	for _, a := range d.airports {
		if defaults == maxDefaultShown || len(out) == MaxResults {
			break
		}
		if _, dup := seen[a.ID]; dup {
			continue
		}
		out = append(out, a)
		defaults++
	}
	return out
}

// Select records a as the most recent pick for kind.
func (d *Directory) Select(ctx context.Context, owner string, a entity.Airport, kind entity.FieldKind) error {
	list := recent.Push(d.loadRecents(ctx, owner, kind), a)
	if err := d.recents.Save(ctx, owner, kind, list); err != nil {
		return fmt.Errorf("save recent airports: %w", err)
	}
	return nil
}

func (d *Directory) loadRecents(ctx context.Context, owner string, kind entity.FieldKind) []entity.Airport {
	list, err := d.recents.Load(ctx, owner, kind)
	if err != nil {
		slog.WarnContext(ctx, "failed to load recent airports", "owner", owner, "field", kind, "error", err)
		return nil
	}
	return list
}
