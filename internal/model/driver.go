package model

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Veraticus/remis/internal/common"
)

// VehicleType is the kind of vehicle a driver works.
type VehicleType string

const (
	// VehicleTaxi is a street-hail taxi.
	VehicleTaxi VehicleType = "taxi"
	// VehicleRemise is a booked private car.
	VehicleRemise VehicleType = "remise"
)

// DefaultVehicleColor matches the color new drivers get in the original app.
const DefaultVehicleColor = "#1976d2"

var hexColorRegex = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// IsValid reports whether v is a known vehicle type.
func (v VehicleType) IsValid() bool {
	switch v {
	case VehicleTaxi, VehicleRemise:
		return true
	default:
		return false
	}
}

// Driver is a person whose transactions are tracked.
type Driver struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	VehicleType  VehicleType `json:"vehicleType"`
	VehicleColor string      `json:"vehicleColor"`
	Active       bool        `json:"active"`
}

// Validate checks the user-editable fields of a driver.
func (d Driver) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("%w: driver name cannot be empty", common.ErrInvalidInput)
	}
	if !d.VehicleType.IsValid() {
		return fmt.Errorf("%w: vehicle type %q must be taxi or remise", common.ErrInvalidInput, d.VehicleType)
	}
	if !IsHexColor(d.VehicleColor) {
		return fmt.Errorf("%w: vehicle color %q must look like #rrggbb", common.ErrInvalidInput, d.VehicleColor)
	}
	return nil
}

// IsHexColor reports whether s is a #rrggbb color.
func IsHexColor(s string) bool {
	return hexColorRegex.MatchString(s)
}
