// Package fleetdata loads the driver/vehicle/deliveries/zones dataset the
// dashboard serves. The default dataset is embedded; an on-disk JSON file
// can override it for demos.
package fleetdata

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"drivedash/internal/domain"
)

//go:embed default_dataset.json
var defaultDataset []byte

type Dataset struct {
	Driver     domain.Driver     `json:"driver"`
	Vehicle    domain.Vehicle    `json:"vehicle"`
	Deliveries []domain.Delivery `json:"deliveries"`
	Zones      []domain.Zone     `json:"zones"`
}

// Load reads the dataset from path, or the embedded default when path is
// empty.
func Load(path string) (*Dataset, error) {
	data := defaultDataset
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading fleet data: %w", err)
		}
		data = b
	}

	var ds Dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("parsing fleet data: %w", err)
	}
	if err := ds.Validate(); err != nil {
		return nil, fmt.Errorf("validating fleet data: %w", err)
	}
	return &ds, nil
}

// Validate rejects datasets the monitor cannot work with. Zone order is
// preserved as declared: it is the priority order for overlapping zones.
func (d *Dataset) Validate() error {
	if d.Driver.ID == "" {
		return fmt.Errorf("driver id is required")
	}
	if d.Vehicle.ID == "" {
		return fmt.Errorf("vehicle id is required")
	}
	for i, z := range d.Zones {
		if z.Name == "" {
			return fmt.Errorf("zone %d: name is required", i)
		}
		if !z.Center.Valid() {
			return fmt.Errorf("zone %q: center out of range", z.Name)
		}
		if z.RadiusKm <= 0 {
			return fmt.Errorf("zone %q: radius must be positive", z.Name)
		}
		if z.SpeedLimitKmh <= 0 {
			return fmt.Errorf("zone %q: speed limit must be positive", z.Name)
		}
	}
	for i, del := range d.Deliveries {
		if del.ID == "" {
			return fmt.Errorf("delivery %d: id is required", i)
		}
		if del.Position != nil && !del.Position.Valid() {
			return fmt.Errorf("delivery %q: position out of range", del.ID)
		}
	}
	return nil
}
