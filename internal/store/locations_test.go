package store

import (
	"context"
	"errors"
	"slices"
	"testing"

	"stocktrack/internal/db"
	"stocktrack/internal/model"
)

func TestDefaultLocationsSeeded(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	locations, err := ListLocations(ctx, database)
	if err != nil {
		t.Fatalf("ListLocations: %v", err)
	}
	if len(locations) != 3 {
		t.Fatalf("expected 3 seeded locations, got %v", locations)
	}
	if locations[0] != model.LocationStorage {
		t.Errorf("expected Storage first, got %q", locations[0])
	}
	for _, want := range []string{model.LocationOffice, model.LocationOutOfStock} {
		if !slices.Contains(locations, want) {
			t.Errorf("expected %q in seeded set, got %v", want, locations)
		}
	}
}

func TestAddLocation(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	if err := AddLocation(ctx, database, "Workshop"); err != nil {
		t.Fatalf("AddLocation: %v", err)
	}
	// Adding again is a no-op, not an error.
	if err := AddLocation(ctx, database, "Workshop"); err != nil {
		t.Fatalf("AddLocation (repeat): %v", err)
	}

	locations, _ := ListLocations(ctx, database)
	if !slices.Contains(locations, "Workshop") {
		t.Errorf("expected Workshop in %v", locations)
	}
	if len(locations) != 4 {
		t.Errorf("expected 4 locations, got %v", locations)
	}

	var ve *ValidationError
	if err := AddLocation(ctx, database, "  "); !errors.As(err, &ve) || ve.Code != CodeRequired {
		t.Errorf("expected REQUIRED for blank name, got %v", err)
	}
}

func TestRemoveLocation(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	AddLocation(ctx, database, "Workshop")
	if err := RemoveLocation(ctx, database, "Workshop"); err != nil {
		t.Fatalf("RemoveLocation: %v", err)
	}

	var nfe *NotFoundError
	if err := RemoveLocation(ctx, database, "Workshop"); !errors.As(err, &nfe) {
		t.Errorf("expected NotFoundError for removed label, got %v", err)
	}

	var ve *ValidationError
	if err := RemoveLocation(ctx, database, model.LocationStorage); !errors.As(err, &ve) || ve.Code != CodeLocationInUse {
		t.Errorf("expected LOCATION_IN_USE for Storage, got %v", err)
	}
}

func TestRemoveOccupiedLocation(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	RegisterItem(ctx, database, ItemParams{Barcode: "AB1234", Name: "Widget"})
	MoveItem(ctx, database, "AB1234", model.LocationOffice, "", "")

	var ve *ValidationError
	if err := RemoveLocation(ctx, database, model.LocationOffice); !errors.As(err, &ve) || ve.Code != CodeLocationInUse {
		t.Fatalf("expected LOCATION_IN_USE for occupied label, got %v", err)
	}

	// After the item comes back, removal succeeds.
	MoveItem(ctx, database, "AB1234", model.LocationStorage, "", "")
	if err := RemoveLocation(ctx, database, model.LocationOffice); err != nil {
		t.Errorf("RemoveLocation after vacating: %v", err)
	}
}
