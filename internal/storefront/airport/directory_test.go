package airport

import (
	"context"
	"errors"
	"testing"

	"github.com/shandysiswandi/goflightstore/internal/storefront/entity"
	"github.com/shandysiswandi/goflightstore/internal/storefront/recent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDirectory(t *testing.T) (*Directory, *recent.MemoryStore) {
	t.Helper()
	store := recent.NewMemoryStore()
	dir, err := NewDirectory(store)
	require.NoError(t, err)
	return dir, store
}

func codes(list []entity.Airport) []string {
	out := make([]string, 0, len(list))
	for _, a := range list {
		out = append(out, a.Code)
	}
	return out
}

func mustLookup(t *testing.T, dir *Directory, code string) entity.Airport {
	t.Helper()
	a, ok := dir.Lookup(code)
	require.True(t, ok, code)
	return a
}

func TestNew_RejectsBadCatalog(t *testing.T) {
	_, err := New([]entity.Airport{{ID: 1, Code: "CGK"}, {ID: 2, Code: "cgk"}}, recent.NewMemoryStore())
	assert.ErrorContains(t, err, "duplicate code")

	_, err = New([]entity.Airport{{ID: 1, Code: "JKTA"}}, recent.NewMemoryStore())
	assert.ErrorContains(t, err, "three letters")
}

func TestLookup(t *testing.T) {
	dir, _ := newDirectory(t)

	a, ok := dir.Lookup(" dps ")
	require.True(t, ok)
	assert.Equal(t, "Denpasar", a.City)

	_, ok = dir.Lookup("XXX")
	assert.False(t, ok)
}

func TestSearch_Query(t *testing.T) {
	dir, _ := newDirectory(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"code", "dps", []string{"DPS"}},
		{"city case-insensitive", "  JAKARTA ", []string{"CGK", "HLP"}},
		{"name substring", "hasanuddin", []string{"UPG"}},
		{"country", "malaysia", []string{"KUL"}},
		{"unknown", "atlantis", []string{}},
		{"punctuation", "%$#@!", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, codes(dir.Search(ctx, "c", tt.query, entity.FieldOrigin)))
		})
	}
}

func TestSearch_QueryCapsAtEightInCatalogOrder(t *testing.T) {
	dir, _ := newDirectory(t)

	got := dir.Search(context.Background(), "c", "international", entity.FieldOrigin)
	require.Len(t, got, MaxResults)
	assert.Equal(t, []string{"CGK", "DPS", "SUB", "UPG", "KNO", "YIA", "SOC", "HLP"}, codes(got))
}

func TestSearch_EmptyQueryWithoutRecents(t *testing.T) {
	dir, _ := newDirectory(t)

	got := dir.Search(context.Background(), "c", "", entity.FieldOrigin)
	assert.Equal(t, []string{"CGK", "DPS", "SUB", "UPG", "KNO"}, codes(got))
}

func TestSearch_EmptyQueryAfterThreeSelects(t *testing.T) {
	dir, _ := newDirectory(t)
	ctx := context.Background()

	for _, code := range []string{"SUB", "CGK", "LBJ"} {
		require.NoError(t, dir.Select(ctx, "c", mustLookup(t, dir, code), entity.FieldDestination))
	}

	got := dir.Search(ctx, "c", "", entity.FieldDestination)
	assert.Equal(t, []string{"LBJ", "CGK", "SUB", "DPS", "UPG", "KNO", "YIA", "SOC"}, codes(got))

	seen := map[int]bool{}
	for _, a := range got {
		assert.False(t, seen[a.ID], "duplicate airport %s", a.Code)
		seen[a.ID] = true
	}

	other := dir.Search(ctx, "c", "", entity.FieldOrigin)
	assert.Equal(t, []string{"CGK", "DPS", "SUB", "UPG", "KNO"}, codes(other), "recents are per field")
}

func TestSearch_EmptyQueryShowsThreeRecentsOnly(t *testing.T) {
	dir, _ := newDirectory(t)
	ctx := context.Background()

	for _, code := range []string{"CGK", "DPS", "SUB", "UPG", "KNO"} {
		require.NoError(t, dir.Select(ctx, "c", mustLookup(t, dir, code), entity.FieldOrigin))
	}

	got := dir.Search(ctx, "c", "", entity.FieldOrigin)
	assert.Equal(t, []string{"KNO", "UPG", "SUB", "YIA", "SOC", "HLP", "BPN", "LOP"}, codes(got))
}

func TestSelect_Deduplicates(t *testing.T) {
	dir, store := newDirectory(t)
	ctx := context.Background()

	for _, code := range []string{"CGK", "DPS", "CGK"} {
		require.NoError(t, dir.Select(ctx, "c", mustLookup(t, dir, code), entity.FieldOrigin))
	}

	saved, err := store.Load(ctx, "c", entity.FieldOrigin)
	require.NoError(t, err)
	assert.Equal(t, []string{"CGK", "DPS"}, codes(saved))
}

type brokenStore struct{}

func (brokenStore) Load(context.Context, string, entity.FieldKind) ([]entity.Airport, error) {
	return nil, errors.New("redis down")
}

func (brokenStore) Save(context.Context, string, entity.FieldKind, []entity.Airport) error {
	return errors.New("redis down")
}

func TestSearch_BrokenRecencyStore(t *testing.T) {
	dir, err := NewDirectory(brokenStore{})
	require.NoError(t, err)

	got := dir.Search(context.Background(), "c", "", entity.FieldOrigin)
	assert.Equal(t, []string{"CGK", "DPS", "SUB", "UPG", "KNO"}, codes(got))

	assert.Error(t, dir.Select(context.Background(), "c", mustLookup(t, dir, "DPS"), entity.FieldOrigin))
}
