package devices

import (
	"time"
)

const (
	TypeGateway        string = "gateway"
	TypeEnvSensor      string = "env-sensor"
	TypeRFIDReader     string = "rfid-reader"
	TypeControllerNode string = "controller-node"
)

const (
	StateActive       string = "active"
	StateInactive     string = "inactive"
	StateMaintenance  string = "maintenance"
	StateUnauthorized string = "unauthorized"
)

const (
	StatusOff int = 0
	StatusOn  int = 1
)

type Device struct {
	ID        uint      `gorm:"primarykey" json:"-"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	MAC         string   `gorm:"uniqueIndex" json:"mac"`
	Type        string   `json:"type"`
	State       string   `json:"state"`
	ParentMAC   *string  `json:"parent,omitempty"`
	WarehouseID string   `gorm:"index" json:"warehouseId"`
	X           *float64 `json:"x,omitempty"`
	Y           *float64 `json:"y,omitempty"`

	SubDevices []SubDevice `gorm:"constraint:OnDelete:CASCADE;" json:"subDevices,omitempty"`
}

func (d Device) OwnsSubDevices() bool {
	return d.Type == TypeControllerNode || d.Type == TypeRFIDReader
}

type SubDevice struct {
	ID        uint      `gorm:"primarykey" json:"-"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	DeviceID     uint     `gorm:"index" json:"-"`
	Code         string   `gorm:"uniqueIndex" json:"code"`
	ActuatorType int      `json:"actuator"`
	Status       int      `json:"status"`
	State        string   `json:"state"`
	Value        *float64 `json:"value,omitempty"`
	Min          *float64 `json:"min,omitempty"`
	Max          *float64 `json:"max,omitempty"`
}
