package appointment

import (
	"context"
	"database/sql"
	"testing"

	"studio/internal/adapters/storage"
	domain "studio/internal/domain/appointment"

	_ "modernc.org/sqlite"
)

func openStoreDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := storage.MigrateDB(db, ":memory:"); err != nil {
		t.Fatalf("MigrateDB failed: %v", err)
	}
	return db
}

func seedTestAppointments(t *testing.T, store *SQLiteStore) {
	t.Helper()
	appts := []domain.Appointment{
		{ID: "a1", ClientName: "Mia Harper", Category: domain.CategoryLash, Date: "2024-06-10", StartTime: "09:00", DurationMinutes: 60, PriceCents: 8500, Status: domain.StatusConfirmed},
		{ID: "a2", ClientName: "Josie Park", Category: domain.CategoryJewelry, Date: "2024-06-10", StartTime: "11:00", DurationMinutes: 30, PriceCents: 6500, Status: domain.StatusPending},
		{ID: "a3", ClientName: "Mia Harper", Category: domain.CategoryLash, Date: "2024-06-12", StartTime: "10:00", DurationMinutes: 90, PriceCents: 12000, Status: domain.StatusCancelled},
		{ID: "a4", ClientName: "Dave Thompson", Category: domain.CategoryConsulting, Date: "2024-06-09", StartTime: "14:00", DurationMinutes: 45, PriceCents: 5000, Status: domain.StatusCompleted},
	}
	for _, a := range appts {
		if err := store.Save(context.Background(), a); err != nil {
			t.Fatalf("seed save failed: %v", err)
		}
	}
}

// TestSQLiteStore_SaveAndGet tests round-trip persistence and upsert.
func TestSQLiteStore_SaveAndGet(t *testing.T) {
	store := NewSQLiteStore(openStoreDB(t))
	a := domain.Appointment{
		ID: "a1", ClientName: "Mia Harper", Category: domain.CategoryLash,
		Date: "2024-06-10", StartTime: "09:00", DurationMinutes: 60,
		PriceCents: 8500, Status: domain.StatusConfirmed,
		Notes: "**Patch test** required", Location: "Lash room",
	}
	if err := store.Save(context.Background(), a); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := store.GetByID(context.Background(), "a1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got != a {
		t.Errorf("round trip mismatch:\ngot:  %+v\nwant: %+v", got, a)
	}

	// Upsert: same ID, new status
	a.Status = domain.StatusCompleted
	if err := store.Save(context.Background(), a); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	got, _ = store.GetByID(context.Background(), "a1")
	if got.Status != domain.StatusCompleted {
		t.Errorf("status after upsert = %s, want completed", got.Status)
	}
}

// TestSQLiteStore_GetByID_NotFound tests the missing-row error.
func TestSQLiteStore_GetByID_NotFound(t *testing.T) {
	store := NewSQLiteStore(openStoreDB(t))
	if _, err := store.GetByID(context.Background(), "nope"); err == nil {
		t.Error("expected error for missing appointment")
	}
}

// TestSQLiteStore_List tests chronological ordering of the full snapshot.
func TestSQLiteStore_List(t *testing.T) {
	store := NewSQLiteStore(openStoreDB(t))
	seedTestAppointments(t, store)

	appts, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(appts) != 4 {
		t.Fatalf("got %d appointments, want 4", len(appts))
	}
	wantOrder := []string{"a4", "a1", "a2", "a3"}
	for i, want := range wantOrder {
		if appts[i].ID != want {
			t.Fatalf("order[%d] = %s, want %s", i, appts[i].ID, want)
		}
	}
}

// TestSQLiteStore_ListFiltered tests category/status/search filters and paging.
func TestSQLiteStore_ListFiltered(t *testing.T) {
	store := NewSQLiteStore(openStoreDB(t))
	seedTestAppointments(t, store)

	tests := []struct {
		name    string
		filter  ListFilter
		wantIDs []string
	}{
		{"by category", ListFilter{Category: domain.CategoryLash}, []string{"a3", "a1"}},
		{"by status", ListFilter{Status: domain.StatusPending}, []string{"a2"}},
		{"by search", ListFilter{Search: "mia"}, []string{"a3", "a1"}},
		{"combined", ListFilter{Category: domain.CategoryLash, Status: domain.StatusConfirmed}, []string{"a1"}},
		{"paged", ListFilter{Limit: 2, Offset: 2}, []string{"a2", "a4"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := store.ListFiltered(context.Background(), tc.filter)
			if err != nil {
				t.Fatalf("ListFiltered failed: %v", err)
			}
			if len(got) != len(tc.wantIDs) {
				t.Fatalf("got %d rows, want %d", len(got), len(tc.wantIDs))
			}
			for i, want := range tc.wantIDs {
				if got[i].ID != want {
					t.Errorf("row[%d] = %s, want %s", i, got[i].ID, want)
				}
			}
		})
	}
}

// TestSQLiteStore_CountFiltered tests the count matching the filter.
func TestSQLiteStore_CountFiltered(t *testing.T) {
	store := NewSQLiteStore(openStoreDB(t))
	seedTestAppointments(t, store)

	count, err := store.CountFiltered(context.Background(), ListFilter{Search: "Mia"})
	if err != nil {
		t.Fatalf("CountFiltered failed: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
}

// TestSQLiteStore_Delete tests removal.
func TestSQLiteStore_Delete(t *testing.T) {
	store := NewSQLiteStore(openStoreDB(t))
	seedTestAppointments(t, store)

	if err := store.Delete(context.Background(), "a1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.GetByID(context.Background(), "a1"); err == nil {
		t.Error("appointment still present after delete")
	}
}
