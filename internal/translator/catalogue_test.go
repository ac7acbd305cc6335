package translator

import (
	"errors"
	"testing"

	"github.com/marmos91/sovdgw/internal/uds"
)

func testCatalogue() *Catalogue {
	return New(map[string]uint32{
		"engine": 0x701,
		"abs":    0x702,
	})
}

func TestComponentAddress(t *testing.T) {
	c := testCatalogue()

	addr, err := c.ComponentAddress("engine")
	if err != nil {
		t.Fatalf("ComponentAddress() error = %v", err)
	}
	if addr != 0x701 {
		t.Errorf("ComponentAddress(engine) = 0x%X, want 0x701", addr)
	}
}

func TestComponentAddressUnknownReturnsNotFound(t *testing.T) {
	c := testCatalogue()

	_, err := c.ComponentAddress("brakes")
	if err == nil {
		t.Fatal("expected error for unknown component")
	}
	if !errors.Is(err, uds.ErrComponentNotFound) {
		t.Errorf("expected error to wrap ErrComponentNotFound, got %v", err)
	}
}

func TestComponentIDsSorted(t *testing.T) {
	c := testCatalogue()
	ids := c.ComponentIDs()
	want := []string{"abs", "engine"}
	if len(ids) != len(want) {
		t.Fatalf("ComponentIDs() = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("ComponentIDs()[%d] = %s, want %s", i, ids[i], want[i])
		}
	}
}

func TestDataItemByID(t *testing.T) {
	c := testCatalogue()

	item, ok := c.DataItemByID("vin")
	if !ok {
		t.Fatal("expected vin data item to be found")
	}
	if item.DID != uds.DIDVIN {
		t.Errorf("DID = 0x%04X, want 0x%04X", item.DID, uds.DIDVIN)
	}
	if item.DataType != DataTypeString {
		t.Errorf("DataType = %s, want string", item.DataType)
	}
}

func TestDataItemByIDUnknown(t *testing.T) {
	c := testCatalogue()
	if _, ok := c.DataItemByID("does-not-exist"); ok {
		t.Error("expected unknown data item id to not be found")
	}
}

func TestDataItemIDsFilteredByCategory(t *testing.T) {
	c := testCatalogue()

	all := c.DataItemIDs("")
	if len(all) != 6 {
		t.Fatalf("DataItemIDs(\"\") returned %d items, want 6", len(all))
	}

	ident := c.DataItemIDs("identData")
	if len(ident) != len(all) {
		t.Errorf("DataItemIDs(identData) = %d, want %d (all default items share identData)", len(ident), len(all))
	}

	none := c.DataItemIDs("unknown-category")
	if len(none) != 0 {
		t.Errorf("DataItemIDs(unknown-category) = %v, want empty", none)
	}
}

func TestActuatorByID(t *testing.T) {
	c := testCatalogue()

	actuator, ok := c.ActuatorByID("fuel_pump")
	if !ok {
		t.Fatal("expected fuel_pump actuator to be found")
	}
	if actuator.RoutineID != 0x0201 {
		t.Errorf("RoutineID = 0x%04X, want 0x0201", actuator.RoutineID)
	}
}

func TestActuatorByIDUnknown(t *testing.T) {
	c := testCatalogue()
	if _, ok := c.ActuatorByID("does-not-exist"); ok {
		t.Error("expected unknown actuator id to not be found")
	}
}
