// AngelaMos | 2026
// repository_integration_test.go

//go:build integration

package favorite

import (
	"context"
	"testing"
	"time"

	"github.com/carterperez-dev/lifehacking-api/internal/testinfra"
)

func TestRepository_AddManyReturnsInsertedOnly(t *testing.T) {
	db := testinfra.NewPostgres(t)
	repo := NewRepository(db)
	ctx := context.Background()

	userID := testinfra.InsertUser(t, db, "fav@example.com")
	cat := testinfra.InsertCategory(t, db, "Kitchen")
	a := testinfra.InsertTip(t, db, cat, "A", "first", `[]`)
	b := testinfra.InsertTip(t, db, cat, "B", "second", `[]`)
	c := testinfra.InsertTip(t, db, cat, "C", "third", `[]`)

	at := time.Now().UTC()

	inserted, err := repo.AddMany(ctx, userID, []string{a, b}, at)
	if err != nil {
		t.Fatalf("first AddMany() error = %v", err)
	}
	if len(inserted) != 2 {
		t.Fatalf("first AddMany() inserted = %v, want %s and %s", inserted, a, b)
	}

	inserted, err = repo.AddMany(ctx, userID, []string{b, c}, at)
	if err != nil {
		t.Fatalf("second AddMany() error = %v", err)
	}
	if _, ok := inserted[c]; !ok || len(inserted) != 1 {
		t.Errorf("second AddMany() inserted = %v, want only %s", inserted, c)
	}

	existing, err := repo.ExistingTipIDs(ctx, userID, []string{a, b, c})
	if err != nil {
		t.Fatalf("ExistingTipIDs() error = %v", err)
	}
	if len(existing) != 3 {
		t.Errorf("ExistingTipIDs() = %v, want all three", existing)
	}

	inserted, err = repo.AddMany(ctx, userID, nil, at)
	if err != nil || len(inserted) != 0 {
		t.Errorf("AddMany(nil) = %v, %v, want empty", inserted, err)
	}
}
