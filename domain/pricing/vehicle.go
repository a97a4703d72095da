package pricing

import (
	"fmt"
	"strings"
)

// VehicleType identifies one of the fixed delivery vehicle categories priced in the table.
type VehicleType int

const (
	Car VehicleType = iota
	MidSized
	PickupTruck
	CargoVan
	CargoVanHighTop
	BoxTruck16
	BoxTruck26

	// NumVehicleTypes is the number of price columns in a normalized row.
	NumVehicleTypes = 7
)

var vehicleLabels = [NumVehicleTypes]string{
	Car:             "CAR",
	MidSized:        "MID-SIZED",
	PickupTruck:     "PICKUP TRUCK",
	CargoVan:        "CARGO VAN",
	CargoVanHighTop: "CARGO VAN WITH HIGH TOP",
	BoxTruck16:      "16' BOX TRUCK",
	BoxTruck26:      "26' BOX TRUCK",
}

var vehicleImages = [NumVehicleTypes]string{
	Car:             "Imagem1.png",
	MidSized:        "Imagem2.png",
	PickupTruck:     "Imagem3.png",
	CargoVan:        "Imagem4.png",
	CargoVanHighTop: "Imagem5.png",
	BoxTruck16:      "Imagem6.png",
	BoxTruck26:      "Imagem7.png",
}

// AllVehicleTypes returns every vehicle type in column order.
func AllVehicleTypes() []VehicleType {
	all := make([]VehicleType, NumVehicleTypes)
	for i := range all {
		all[i] = VehicleType(i)
	}
	return all
}

// Valid reports whether v is one of the known vehicle types.
func (v VehicleType) Valid() bool {
	return v >= 0 && int(v) < NumVehicleTypes
}

// Label returns the spreadsheet column label for the vehicle type.
func (v VehicleType) Label() string {
	if !v.Valid() {
		return fmt.Sprintf("VehicleType(%d)", int(v))
	}
	return vehicleLabels[v]
}

func (v VehicleType) String() string {
	return v.Label()
}

// DisplayName is the card title: the label with underscores as spaces, title-cased.
func (v VehicleType) DisplayName() string {
	return titleCase(strings.ReplaceAll(v.Label(), "_", " "))
}

// ImageFile is the default illustration file name for the vehicle type.
func (v VehicleType) ImageFile() string {
	if !v.Valid() {
		return ""
	}
	return vehicleImages[v]
}

// ParseVehicleType maps a column label (case-insensitive) back to its vehicle type.
func ParseVehicleType(label string) (VehicleType, error) {
	needle := strings.TrimSpace(label)
	for i, l := range vehicleLabels {
		if strings.EqualFold(l, needle) {
			return VehicleType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown vehicle type %q", label)
}

// titleCase upper-cases the first letter of every run of letters and lower-cases the rest,
// so "16' BOX TRUCK" becomes "16' Box Truck".
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		isLetter := ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z')
		switch {
		case isLetter && !prevLetter:
			b.WriteString(strings.ToUpper(string(r)))
		case isLetter:
			b.WriteString(strings.ToLower(string(r)))
		default:
			b.WriteRune(r)
		}
		prevLetter = isLetter
	}
	return b.String()
}
