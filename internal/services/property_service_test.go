package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/estately/backend/internal/models"
	"github.com/estately/backend/internal/storage"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func plotInput(title string) *models.PropertyInput {
	return &models.PropertyInput{
		Title:       title,
		Description: "Corner plot near the ring road",
		Category:    "Plot",
		Price:       720000,
		Location:    models.Location{City: "Vizag", State: "AP", Country: "India"},
		Amenities:   []string{"road-access", "road-access", " electricity "},
		Sqft:        floatPtr(720),
		Facing:      "NORTH-east",
		YearBuilt:   "2015-06-01",
	}
}

func TestMemoryPropertyServiceCRUD(t *testing.T) {
	ctx := context.Background()
	svc, err := NewMemoryPropertyService(nil)
	if err != nil {
		t.Fatal(err)
	}

	created, err := svc.Create(ctx, "admin-1", plotInput("Corner Plot"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == "" || created.CreatedBy != "admin-1" || created.Category != "plot" {
		t.Fatalf("created = %+v", created)
	}
	if created.Facing != "North-East" {
		t.Errorf("facing = %q, want North-East", created.Facing)
	}
	if created.YearBuilt == nil || *created.YearBuilt != 2015 {
		t.Errorf("yearBuilt = %v", created.YearBuilt)
	}
	if created.PricePerSqft == nil || *created.PricePerSqft != 1000 {
		t.Errorf("pricePerSqft = %v", created.PricePerSqft)
	}
	if len(created.Amenities) != 2 {
		t.Errorf("amenities = %v, want deduplicated", created.Amenities)
	}

	in := plotInput("Corner Plot (reduced)")
	in.Price = 360000
	updated, err := svc.Update(ctx, created.ID, in)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Title != "Corner Plot (reduced)" || *updated.PricePerSqft != 500 {
		t.Errorf("updated = %+v", updated)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) || updated.CreatedBy != "admin-1" {
		t.Errorf("creation metadata changed on update")
	}

	featured, err := svc.SetFeatured(ctx, created.ID, true)
	if err != nil || !featured.Featured {
		t.Fatalf("SetFeatured = %+v, %v", featured, err)
	}

	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := svc.GetByID(ctx, created.ID); !errors.Is(err, ErrPropertyNotFound) {
		t.Errorf("GetByID after delete = %v", err)
	}
}

func TestMemoryPropertyServiceNotFound(t *testing.T) {
	ctx := context.Background()
	svc, _ := NewMemoryPropertyService(nil)

	if _, err := svc.Update(ctx, "missing", plotInput("x")); !errors.Is(err, ErrPropertyNotFound) {
		t.Errorf("Update = %v", err)
	}
	if err := svc.Delete(ctx, "missing"); !errors.Is(err, ErrPropertyNotFound) {
		t.Errorf("Delete = %v", err)
	}
	if _, err := svc.SetFeatured(ctx, "missing", true); !errors.Is(err, ErrPropertyNotFound) {
		t.Errorf("SetFeatured = %v", err)
	}
}

func TestMemoryPropertyServiceRejectsBadYear(t *testing.T) {
	svc, _ := NewMemoryPropertyService(nil)
	in := plotInput("x")
	in.YearBuilt = "a while ago"
	if _, err := svc.Create(context.Background(), "u", in); !errors.Is(err, ErrInvalidYearBuilt) {
		t.Errorf("Create = %v, want ErrInvalidYearBuilt", err)
	}
}

func TestMemoryPropertyServiceListNewestFirst(t *testing.T) {
	svc, _ := NewMemoryPropertyService(nil)
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"old", "new", "mid"} {
		svc.properties[id] = &models.Property{ID: id, CreatedAt: base.Add(time.Duration([]int{0, 2, 1}[i]) * time.Hour)}
	}

	list, err := svc.List(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, p := range list {
		got = append(got, p.ID)
	}
	want := []string{"new", "mid", "old"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestMemoryPropertyServicePersists(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.NewJSONStore[[]*models.Property](dir, "properties.json")
	if err != nil {
		t.Fatal(err)
	}
	svc, _ := NewMemoryPropertyService(store)
	created, err := svc.Create(context.Background(), "u", plotInput("Saved Plot"))
	if err != nil {
		t.Fatal(err)
	}

	reopened, err := NewMemoryPropertyService(store)
	if err != nil {
		t.Fatal(err)
	}
	got, err := reopened.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.Title != "Saved Plot" || got.Sqft == nil || *got.Sqft != 720 {
		t.Errorf("reloaded = %+v", got)
	}
}

func TestMemoryPropertyServiceReturnsCopies(t *testing.T) {
	svc, _ := NewMemoryPropertyService(nil)
	created, _ := svc.Create(context.Background(), "u", plotInput("Copy"))
	created.Title = "mutated"
	created.Amenities[0] = "mutated"

	got, _ := svc.GetByID(context.Background(), created.ID)
	if got.Title != "Copy" || got.Amenities[0] == "mutated" {
		t.Errorf("stored property shares memory with caller: %+v", got)
	}
}
