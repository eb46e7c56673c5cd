package store

import (
	"sync"
	"time"

	"drivedash/internal/domain"
	"drivedash/pkg/fleetdata"
)

// FleetStore serves the read-only driver/vehicle/deliveries/zones dataset.
// Loaded once at startup; readers get copies.
type FleetStore struct {
	mu sync.RWMutex

	driver     domain.Driver
	vehicle    domain.Vehicle
	deliveries []domain.Delivery
	zones      []domain.Zone

	loaded   bool
	loadedAt time.Time
}

func NewFleetStore() *FleetStore {
	return &FleetStore{}
}

func (s *FleetStore) Load(ds *fleetdata.Dataset) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.driver = ds.Driver
	s.vehicle = ds.Vehicle
	s.deliveries = make([]domain.Delivery, len(ds.Deliveries))
	copy(s.deliveries, ds.Deliveries)
	s.zones = make([]domain.Zone, len(ds.Zones))
	copy(s.zones, ds.Zones)
	s.loaded = true
	s.loadedAt = time.Now()
}

func (s *FleetStore) Driver() domain.Driver {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.driver
}

func (s *FleetStore) Vehicle() domain.Vehicle {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.vehicle
}

func (s *FleetStore) Deliveries() []domain.Delivery {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Delivery, len(s.deliveries))
	copy(result, s.deliveries)
	return result
}

// Zones returns the configured zones in priority order
func (s *FleetStore) Zones() []domain.Zone {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Zone, len(s.zones))
	copy(result, s.zones)
	return result
}

func (s *FleetStore) DeliveryCounts() map[domain.DeliveryStatus]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[domain.DeliveryStatus]int)
	for _, d := range s.deliveries {
		counts[d.Status]++
	}
	return counts
}

func (s *FleetStore) IsLoaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

type FleetStats struct {
	Deliveries int       `json:"deliveries"`
	Zones      int       `json:"zones"`
	IsLoaded   bool      `json:"is_loaded"`
	LoadedAt   time.Time `json:"loaded_at"`
}

func (s *FleetStore) Stats() FleetStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return FleetStats{
		Deliveries: len(s.deliveries),
		Zones:      len(s.zones),
		IsLoaded:   s.loaded,
		LoadedAt:   s.loadedAt,
	}
}
