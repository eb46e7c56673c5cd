package domain

import "time"

// Driver is the profile shown on the dashboard sidebar
type Driver struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Phone     string  `json:"phone"`
	LicenseNo string  `json:"licenseNo"`
	Rating    float64 `json:"rating"`
	Since     string  `json:"since"`
}

// Vehicle describes the vehicle the driver is operating
type Vehicle struct {
	ID       string `json:"id"`
	PlateNo  string `json:"plateNo"`
	Model    string `json:"model"`
	Type     string `json:"type"`
	Capacity string `json:"capacity"`
}

// DeliveryStatus tracks a delivery through its day
type DeliveryStatus string

const (
	DeliveryPending   DeliveryStatus = "pending"
	DeliveryInTransit DeliveryStatus = "in_transit"
	DeliveryDelivered DeliveryStatus = "delivered"
)

// Delivery is one stop on the driver's schedule
type Delivery struct {
	ID       string         `json:"id"`
	Customer string         `json:"customer"`
	Address  string         `json:"address"`
	Status   DeliveryStatus `json:"status"`
	ETA      string         `json:"eta,omitempty"`
	Position *Position      `json:"position,omitempty"`
	DueAt    *time.Time     `json:"dueAt,omitempty"`
}
