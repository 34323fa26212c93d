package domain

import "time"

type ComponentType string

const (
	ComponentSensor          ComponentType = "sensor"
	ComponentMicrocontroller ComponentType = "microcontroller"
	ComponentActuator        ComponentType = "actuator"
	ComponentDisplay         ComponentType = "display"
	ComponentPower           ComponentType = "power"
	ComponentMisc            ComponentType = "misc"
)

const (
	EnvironmentIndoor  = "indoor"
	EnvironmentOutdoor = "outdoor"
	EnvironmentBoth    = "both"
)

const (
	PowerBattery = "battery"
	PowerUSB     = "usb"
	PowerWall    = "wall"
	PowerSolar   = "solar"
	PowerOther   = "other"
)

type ProjectComponent struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	Type       ComponentType `json:"type"`
	PriceCents int64         `json:"priceCents"`
	Image      string        `json:"image,omitempty"`
	Quantity   int           `json:"quantity"`
}

type ProjectRequirements struct {
	Title                  string `json:"title"`
	Objective              string `json:"objective"`
	Environment            string `json:"environment"`
	PowerSource            string `json:"powerSource"`
	SizeConstraints        string `json:"sizeConstraints,omitempty"`
	AdditionalRequirements string `json:"additionalRequirements,omitempty"`
}

// Blueprint is the generated output of the project builder: a schematic
// reference, a bill-of-materials snapshot, firmware notes and an instructions
// document interpolated from the requirements.
type Blueprint struct {
	Schematic           string             `json:"schematic"`
	BOM                 []ProjectComponent `json:"bom"`
	FirmwareSuggestions []string           `json:"firmwareSuggestions"`
	Instructions        string             `json:"instructions"`
}

type CustomProject struct {
	ID           string              `json:"id"`
	UserID       string              `json:"userId"`
	Components   []ProjectComponent  `json:"components"`
	Requirements ProjectRequirements `json:"requirements"`
	TotalCents   int64               `json:"totalCents"`
	Status       string              `json:"status"`
	Blueprint    *Blueprint          `json:"blueprint,omitempty"`
	CreatedAt    time.Time           `json:"createdAt"`
	UpdatedAt    time.Time           `json:"updatedAt"`
}

// ValidEnvironment reports whether v belongs to the closed environment set.
func ValidEnvironment(v string) bool {
	switch v {
	case EnvironmentIndoor, EnvironmentOutdoor, EnvironmentBoth:
		return true
	}
	return false
}

// ValidPowerSource reports whether v belongs to the closed power-source set.
func ValidPowerSource(v string) bool {
	switch v {
	case PowerBattery, PowerUSB, PowerWall, PowerSolar, PowerOther:
		return true
	}
	return false
}
