// AngelaMos | 2026
// repository_integration_test.go

//go:build integration

package tip

import (
	"context"
	"net/url"
	"sort"
	"testing"
	"time"

	"github.com/carterperez-dev/lifehacking-api/internal/testinfra"
)

func TestRepository_SearchFilters(t *testing.T) {
	db := testinfra.NewPostgres(t)
	repo := NewRepository(db)
	ctx := context.Background()

	kitchen := testinfra.InsertCategory(t, db, "Kitchen")
	laundry := testinfra.InsertCategory(t, db, "Laundry")
	gone := testinfra.InsertCategory(t, db, "Garage")

	descale := testinfra.InsertTip(t, db, kitchen,
		"Descale the kettle", "Boil vinegar and water", `["Cleaning", "Kitchen"]`)
	cotton := testinfra.InsertTip(t, db, laundry,
		"100% cotton care", "Wash cold to avoid shrinking", `["laundry"]`)
	underscore := testinfra.InsertTip(t, db, laundry,
		"Stain_remover", "Dab, never rub", `["CLEANING"]`)
	deleted := testinfra.InsertTip(t, db, kitchen,
		"Old kettle trick", "Superseded", `["cleaning"]`)
	testinfra.InsertTip(t, db, gone,
		"Kettle in the garage", "Category removed", `["cleaning"]`)

	now := time.Now().UTC()
	if _, err := db.Exec(`UPDATE tips SET deleted_at = $2 WHERE id = $1`, deleted, now); err != nil {
		t.Fatalf("delete tip: %v", err)
	}
	if _, err := db.Exec(`UPDATE categories SET deleted_at = $2 WHERE id = $1`, gone, now); err != nil {
		t.Fatalf("delete category: %v", err)
	}

	tests := []struct {
		name  string
		query url.Values
		want  []string
	}{
		{
			name:  "no filters hides deleted tips and categories",
			query: url.Values{},
			want:  []string{descale, cotton, underscore},
		},
		{
			name:  "tag matches case-insensitively",
			query: url.Values{"tags": {"cleaning"}},
			want:  []string{descale, underscore},
		},
		{
			name:  "any tag matches",
			query: url.Values{"tags": {"laundry,kitchen"}},
			want:  []string{descale, cotton},
		},
		{
			name:  "q matches title",
			query: url.Values{"q": {"KETTLE"}},
			want:  []string{descale},
		},
		{
			name:  "q matches description",
			query: url.Values{"q": {"shrink"}},
			want:  []string{cotton},
		},
		{
			name:  "percent is literal",
			query: url.Values{"q": {"%"}},
			want:  []string{cotton},
		},
		{
			name:  "underscore is literal",
			query: url.Values{"q": {"n_r"}},
			want:  []string{underscore},
		},
		{
			name:  "category with tag",
			query: url.Values{"categoryId": {laundry}, "tags": {"cleaning"}},
			want:  []string{underscore},
		},
		{
			name:  "q and tag combine",
			query: url.Values{"q": {"vinegar"}, "tags": {"laundry"}},
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params, err := ParseSearchParams(tt.query)
			if err != nil {
				t.Fatalf("ParseSearchParams() error = %v", err)
			}

			tips, total, err := repo.Search(ctx, params)
			if err != nil {
				t.Fatalf("Search() error = %v", err)
			}

			got := make([]string, 0, len(tips))
			for _, tip := range tips {
				got = append(got, tip.ID)
			}
			want := append([]string{}, tt.want...)
			sort.Strings(got)
			sort.Strings(want)

			if total != len(want) {
				t.Errorf("total = %d, want %d", total, len(want))
			}
			if len(got) != len(want) {
				t.Fatalf("ids = %v, want %v", got, want)
			}
			for i := range want {
				if got[i] != want[i] {
					t.Fatalf("ids = %v, want %v", got, want)
				}
			}
		})
	}
}

func TestRepository_SearchPagesInOrder(t *testing.T) {
	db := testinfra.NewPostgres(t)
	repo := NewRepository(db)
	ctx := context.Background()

	cat := testinfra.InsertCategory(t, db, "Kitchen")
	for _, title := range []string{"Charlie", "alpha", "Bravo"} {
		testinfra.InsertTip(t, db, cat, title, "desc", `[]`)
	}

	params, err := ParseSearchParams(url.Values{
		"sortBy":        {"Title"},
		"sortDirection": {"Ascending"},
		"pageSize":      {"2"},
		"pageNumber":    {"2"},
	})
	if err != nil {
		t.Fatalf("ParseSearchParams() error = %v", err)
	}

	tips, total, err := repo.Search(ctx, params)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if total != 3 {
		t.Errorf("total = %d, want 3", total)
	}
	if len(tips) != 1 || tips[0].Title != "Charlie" {
		t.Errorf("second page = %+v, want only Charlie", tips)
	}
	if tips[0].CategoryName != "Kitchen" {
		t.Errorf("CategoryName = %q, want Kitchen", tips[0].CategoryName)
	}
}
