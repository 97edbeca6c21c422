package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/spec-kit/staff-roster/internal/domain"
)

func TestMemoryStoreLoadBeforeSave(t *testing.T) {
	st := NewMemoryStore()
	if _, err := st.Load(context.Background()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	st := NewMemoryStore()
	reason := "input error"
	roster := []*domain.StaffMember{
		{
			ID:   "1",
			Name: "Alice",
			Code: "A1",
			Sales: []domain.Sale{
				{ID: "s1", Amount: 42.5, SoldAt: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC), CommissionPaid: true},
			},
			Discounts: []domain.Discount{
				{
					ID:                 "d1",
					Date:               time.Date(2025, 3, 2, 9, 0, 0, 0, time.UTC),
					Amount:             50,
					Reason:             "promo",
					Status:             domain.DiscountStatusCancelled,
					CancellationReason: &reason,
				},
			},
		},
		{ID: "2", Name: "Bob", Code: "B1"},
	}

	if err := st.Save(context.Background(), roster); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := st.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if len(loaded) != 2 {
		t.Fatalf("expected 2 members, got %d", len(loaded))
	}
	alice := loaded[0]
	if alice.ID != "1" || alice.Name != "Alice" || alice.Code != "A1" {
		t.Fatalf("member fields lost: %+v", alice)
	}
	if len(alice.Sales) != 1 || alice.Sales[0].Amount != 42.5 || !alice.Sales[0].CommissionPaid {
		t.Fatalf("sales lost: %+v", alice.Sales)
	}
	if len(alice.Discounts) != 1 {
		t.Fatalf("discounts lost: %+v", alice.Discounts)
	}
	d := alice.Discounts[0]
	if d.Status != domain.DiscountStatusCancelled || d.CancellationReason == nil || *d.CancellationReason != "input error" {
		t.Fatalf("discount state lost: %+v", d)
	}
}

func TestMemoryStoreIsolatesSnapshots(t *testing.T) {
	st := NewMemoryStore()
	roster := []*domain.StaffMember{{ID: "1", Name: "Alice", Code: "A1"}}
	if err := st.Save(context.Background(), roster); err != nil {
		t.Fatalf("save: %v", err)
	}

	// mutating the caller's slice must not leak into the stored snapshot
	roster[0].Name = "Eve"

	loaded, err := st.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded[0].Name != "Alice" {
		t.Fatalf("stored snapshot mutated: %+v", loaded[0])
	}

	// and mutating a loaded roster must not leak back either
	loaded[0].Name = "Mallory"
	again, _ := st.Load(context.Background())
	if again[0].Name != "Alice" {
		t.Fatalf("loaded snapshot aliases store: %+v", again[0])
	}
}

func TestMemoryStoreEmptySaveIsExplicit(t *testing.T) {
	st := NewMemoryStore()
	if err := st.Save(context.Background(), nil); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := st.Load(context.Background())
	if err != nil {
		t.Fatalf("load after empty save: %v", err)
	}
	if len(loaded) != 0 {
		t.Fatalf("expected empty roster, got %d", len(loaded))
	}
}
