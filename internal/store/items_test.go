package store

import (
	"context"
	"errors"
	"testing"

	"stocktrack/internal/db"
	"stocktrack/internal/model"
)

func TestRegisterAndLookup(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	item, err := RegisterItem(ctx, database, ItemParams{Barcode: "ABC123", Name: "Widget"})
	if err != nil {
		t.Fatalf("RegisterItem: %v", err)
	}
	if item.Location != model.LocationStorage {
		t.Errorf("expected new item in Storage, got %q", item.Location)
	}
	if !item.InStock {
		t.Error("expected new item to be in stock")
	}
	if item.CurrentHolder != "" {
		t.Errorf("expected no holder, got %q", item.CurrentHolder)
	}

	got, err := GetItemByBarcode(ctx, database, "ABC123")
	if err != nil {
		t.Fatalf("GetItemByBarcode: %v", err)
	}
	if got == nil || got.ID != item.ID {
		t.Fatalf("expected to find registered item, got %+v", got)
	}
	if got.Name != "Widget" {
		t.Errorf("expected name 'Widget', got %q", got.Name)
	}
}

func TestRegisterBarcodeLength(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	for _, barcode := range []string{"", "AB123", "ABCD1234"} {
		_, err := RegisterItem(ctx, database, ItemParams{Barcode: barcode, Name: "Widget"})
		var ve *ValidationError
		if !errors.As(err, &ve) || ve.Code != CodeBarcodeLength {
			t.Errorf("barcode %q: expected BARCODE_LENGTH validation error, got %v", barcode, err)
		}
	}

	// Both valid lengths work.
	for _, barcode := range []string{"AB1234", "AB12345"} {
		if _, err := RegisterItem(ctx, database, ItemParams{Barcode: barcode, Name: "Widget"}); err != nil {
			t.Errorf("barcode %q: unexpected error: %v", barcode, err)
		}
	}
}

func TestRegisterDuplicateBarcode(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	if _, err := RegisterItem(ctx, database, ItemParams{Barcode: "AB1234", Name: "First"}); err != nil {
		t.Fatalf("RegisterItem: %v", err)
	}

	_, err := RegisterItem(ctx, database, ItemParams{Barcode: "AB1234", Name: "Second"})
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Code != CodeBarcodeDuplicate {
		t.Fatalf("expected BARCODE_DUPLICATE, got %v", err)
	}
}

func TestRegisterDuplicateSerial(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	if _, err := RegisterItem(ctx, database, ItemParams{Barcode: "AB1234", Name: "First", SerialNumber: "SN1"}); err != nil {
		t.Fatalf("RegisterItem: %v", err)
	}

	_, err := RegisterItem(ctx, database, ItemParams{Barcode: "CD5678", Name: "Second", SerialNumber: "SN1"})
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Code != CodeSerialDuplicate {
		t.Fatalf("expected SERIAL_DUPLICATE, got %v", err)
	}

	// Empty serials are not unique.
	if _, err := RegisterItem(ctx, database, ItemParams{Barcode: "EF9012", Name: "Third"}); err != nil {
		t.Errorf("empty serial should not conflict: %v", err)
	}
	if _, err := RegisterItem(ctx, database, ItemParams{Barcode: "GH3456", Name: "Fourth"}); err != nil {
		t.Errorf("empty serial should not conflict: %v", err)
	}
}

func TestRegisterRequiresName(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	_, err := RegisterItem(ctx, database, ItemParams{Barcode: "AB1234"})
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Code != CodeRequired {
		t.Fatalf("expected REQUIRED for missing name, got %v", err)
	}
}

func TestLookupNormalizesBarcode(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	if _, err := RegisterItem(ctx, database, ItemParams{Barcode: "  AB1234  ", Name: "Widget"}); err != nil {
		t.Fatalf("RegisterItem: %v", err)
	}

	got, err := GetItemByBarcode(ctx, database, " AB1234 ")
	if err != nil {
		t.Fatalf("GetItemByBarcode: %v", err)
	}
	if got == nil {
		t.Fatal("expected trimmed lookup to find the item")
	}

	// Unknown barcode is not an error.
	missing, err := GetItemByBarcode(ctx, database, "ZZZZZZ")
	if err != nil {
		t.Fatalf("GetItemByBarcode: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for unknown barcode, got %+v", missing)
	}
}

func TestUpdateItemLeavesStateAlone(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	item, _ := RegisterItem(ctx, database, ItemParams{Barcode: "AB1234", Name: "Widget"})
	if _, err := MoveItem(ctx, database, "AB1234", model.LocationOffice, "Alice", ""); err != nil {
		t.Fatalf("MoveItem: %v", err)
	}

	updated, err := UpdateItem(ctx, database, item.ID, ItemParams{
		Barcode: "AB1234",
		Name:    "Widget v2",
		Brand:   "Acme",
	})
	if err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}
	if updated.Name != "Widget v2" || updated.Brand != "Acme" {
		t.Errorf("descriptive fields not updated: %+v", updated)
	}
	if updated.Location != model.LocationOffice {
		t.Errorf("descriptive update must not touch location, got %q", updated.Location)
	}
}

func TestUpdateItemUniquenessExcludesSelf(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	item, _ := RegisterItem(ctx, database, ItemParams{Barcode: "AB1234", Name: "First", SerialNumber: "SN1"})
	RegisterItem(ctx, database, ItemParams{Barcode: "CD5678", Name: "Second", SerialNumber: "SN2"})

	// Keeping its own barcode and serial is fine.
	if _, err := UpdateItem(ctx, database, item.ID, ItemParams{Barcode: "AB1234", Name: "First", SerialNumber: "SN1"}); err != nil {
		t.Errorf("update with own barcode/serial: %v", err)
	}

	// Taking another item's barcode is not.
	_, err := UpdateItem(ctx, database, item.ID, ItemParams{Barcode: "CD5678", Name: "First"})
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Code != CodeBarcodeDuplicate {
		t.Errorf("expected BARCODE_DUPLICATE, got %v", err)
	}

	// Neither is another item's serial.
	_, err = UpdateItem(ctx, database, item.ID, ItemParams{Barcode: "AB1234", Name: "First", SerialNumber: "SN2"})
	if !errors.As(err, &ve) || ve.Code != CodeSerialDuplicate {
		t.Errorf("expected SERIAL_DUPLICATE, got %v", err)
	}
}

func TestDeleteItem(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	item, _ := RegisterItem(ctx, database, ItemParams{Barcode: "AB1234", Name: "Widget"})
	if err := DeleteItem(ctx, database, item.ID); err != nil {
		t.Fatalf("DeleteItem: %v", err)
	}

	got, _ := GetItem(ctx, database, item.ID)
	if got != nil {
		t.Error("expected item to be gone after delete")
	}

	var nfe *NotFoundError
	if err := DeleteItem(ctx, database, 9999); !errors.As(err, &nfe) {
		t.Errorf("expected NotFoundError for unknown id, got %v", err)
	}
}

func TestDeleteItemRejectedWithHistory(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	item, _ := RegisterItem(ctx, database, ItemParams{Barcode: "AB1234", Name: "Widget"})
	if _, err := MoveItem(ctx, database, "AB1234", model.LocationOffice, "", ""); err != nil {
		t.Fatalf("MoveItem: %v", err)
	}

	err := DeleteItem(ctx, database, item.ID)
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Code != CodeHasHistory {
		t.Fatalf("expected HAS_HISTORY, got %v", err)
	}

	// Item and its history both survive.
	if got, _ := GetItem(ctx, database, item.ID); got == nil {
		t.Error("item must survive a rejected delete")
	}
	history, _ := ListMovements(ctx, database, "AB1234", 0)
	if len(history) != 1 {
		t.Errorf("expected 1 history record, got %d", len(history))
	}
}

func TestListItemsFilters(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	RegisterItem(ctx, database, ItemParams{Barcode: "AB1234", Name: "Laptop", ProductType: "Computer", Brand: "Dell", SerialNumber: "SN100"})
	RegisterItem(ctx, database, ItemParams{Barcode: "CD5678", Name: "Monitor", ProductType: "Display", Brand: "Dell", SerialNumber: "SN200"})
	RegisterItem(ctx, database, ItemParams{Barcode: "EF9012", Name: "Keyboard", ProductType: "Peripheral", Brand: "Logitech"})

	MoveItem(ctx, database, "CD5678", model.LocationOffice, "", "")

	all, err := ListItems(ctx, database, ItemFilter{})
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 items, got %d", len(all))
	}
	// Most recently registered first.
	if all[0].Barcode != "EF9012" || all[2].Barcode != "AB1234" {
		t.Errorf("expected recency ordering, got %q first and %q last", all[0].Barcode, all[2].Barcode)
	}

	byType, _ := ListItems(ctx, database, ItemFilter{ProductType: "Computer"})
	if len(byType) != 1 || byType[0].Barcode != "AB1234" {
		t.Errorf("productType filter: got %+v", byType)
	}

	byBrand, _ := ListItems(ctx, database, ItemFilter{Brand: "Dell"})
	if len(byBrand) != 2 {
		t.Errorf("brand filter: expected 2, got %d", len(byBrand))
	}

	inStock, _ := ListItems(ctx, database, ItemFilter{InStockOnly: true})
	if len(inStock) != 2 {
		t.Errorf("inStockOnly: expected 2, got %d", len(inStock))
	}
	for _, s := range inStock {
		if !s.InStock {
			t.Errorf("inStockOnly returned out-of-stock item %q", s.Barcode)
		}
	}

	atOffice, _ := ListItems(ctx, database, ItemFilter{Location: model.LocationOffice})
	if len(atOffice) != 1 || atOffice[0].Barcode != "CD5678" {
		t.Errorf("location filter: got %+v", atOffice)
	}

	bySerial, _ := ListItems(ctx, database, ItemFilter{Serial: "N10"})
	if len(bySerial) != 1 || bySerial[0].Barcode != "AB1234" {
		t.Errorf("serial substring filter: got %+v", bySerial)
	}

	byTerm, _ := ListItems(ctx, database, ItemFilter{Term: "Logi"})
	if len(byTerm) != 1 || byTerm[0].Barcode != "EF9012" {
		t.Errorf("term filter over brand: got %+v", byTerm)
	}

	capped, _ := ListItems(ctx, database, ItemFilter{Limit: 2})
	if len(capped) != 2 {
		t.Errorf("limit: expected 2, got %d", len(capped))
	}
}

func TestItemImage(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	item, _ := RegisterItem(ctx, database, ItemParams{Barcode: "AB1234", Name: "Widget"})

	imageData := []byte("fake image data")
	if err := SetItemImage(ctx, database, item.ID, imageData, "image/jpeg"); err != nil {
		t.Fatalf("SetItemImage: %v", err)
	}

	data, mime, err := GetItemImage(ctx, database, item.ID)
	if err != nil {
		t.Fatalf("GetItemImage: %v", err)
	}
	if string(data) != "fake image data" {
		t.Errorf("expected image data, got %q", string(data))
	}
	if mime != "image/jpeg" {
		t.Errorf("expected mime 'image/jpeg', got %q", mime)
	}

	var nfe *NotFoundError
	if err := SetItemImage(ctx, database, 9999, imageData, "image/jpeg"); !errors.As(err, &nfe) {
		t.Errorf("expected NotFoundError for unknown item, got %v", err)
	}
}
