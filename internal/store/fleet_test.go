package store

import (
	"testing"

	"drivedash/internal/domain"
	"drivedash/pkg/fleetdata"
)

func loadedFleetStore(t *testing.T) *FleetStore {
	t.Helper()
	ds, err := fleetdata.Load("")
	if err != nil {
		t.Fatalf("loading default dataset: %v", err)
	}
	s := NewFleetStore()
	s.Load(ds)
	return s
}

func TestFleetStore_Load(t *testing.T) {
	s := NewFleetStore()
	if s.IsLoaded() {
		t.Fatal("expected unloaded store")
	}

	s = loadedFleetStore(t)
	if !s.IsLoaded() {
		t.Fatal("expected loaded store")
	}
	if s.Driver().Name == "" || s.Vehicle().PlateNo == "" {
		t.Error("expected driver and vehicle from dataset")
	}
}

func TestFleetStore_ZonesKeepPriorityOrder(t *testing.T) {
	s := loadedFleetStore(t)

	zones := s.Zones()
	if len(zones) != 2 {
		t.Fatalf("expected 2 zones, got %d", len(zones))
	}
	if zones[0].Name != "School Zone" || zones[1].Name != "Construction Zone" {
		t.Errorf("zone priority order lost: %v", zones)
	}
}

func TestFleetStore_ReadsReturnCopies(t *testing.T) {
	s := loadedFleetStore(t)

	deliveries := s.Deliveries()
	deliveries[0].Status = domain.DeliveryDelivered
	deliveries[0].Customer = "mutated"

	if s.Deliveries()[0].Customer == "mutated" {
		t.Error("mutation through returned slice leaked into store")
	}
}

func TestFleetStore_DeliveryCounts(t *testing.T) {
	s := loadedFleetStore(t)

	counts := s.DeliveryCounts()
	total := 0
	for _, n := range counts {
		total += n
	}
	if total != s.Stats().Deliveries {
		t.Errorf("counts sum %d != total %d", total, s.Stats().Deliveries)
	}
	if counts[domain.DeliveryPending] == 0 {
		t.Error("expected at least one pending delivery in the default dataset")
	}
}
