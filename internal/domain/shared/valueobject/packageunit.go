package valueobject

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

// PackageUnit is a value object representing how a pharmaceutical product is
// packaged and sold. The set of valid units is closed.
type PackageUnit string

const (
	PackageUnitKg     PackageUnit = "kg"
	PackageUnitBox    PackageUnit = "box"
	PackageUnitBottle PackageUnit = "bottle"
	PackageUnitPack   PackageUnit = "pack"
	PackageUnitUnit   PackageUnit = "unit"
)

// AllPackageUnits returns every valid package unit
func AllPackageUnits() []PackageUnit {
	return []PackageUnit{
		PackageUnitKg,
		PackageUnitBox,
		PackageUnitBottle,
		PackageUnitPack,
		PackageUnitUnit,
	}
}

// NewPackageUnit parses a string into a PackageUnit
func NewPackageUnit(s string) (PackageUnit, error) {
	u := PackageUnit(strings.ToLower(strings.TrimSpace(s)))
	if !u.IsValid() {
		return "", fmt.Errorf("invalid package unit: %q", s)
	}
	return u, nil
}

// IsValid checks if the unit belongs to the enumerated set
func (u PackageUnit) IsValid() bool {
	switch u {
	case PackageUnitKg, PackageUnitBox, PackageUnitBottle, PackageUnitPack, PackageUnitUnit:
		return true
	}
	return false
}

// String returns the string representation of the unit
func (u PackageUnit) String() string {
	return string(u)
}

// Value implements driver.Valuer for database storage
func (u PackageUnit) Value() (driver.Value, error) {
	return string(u), nil
}

// Scan implements sql.Scanner for database retrieval
func (u *PackageUnit) Scan(value interface{}) error {
	switch v := value.(type) {
	case string:
		*u = PackageUnit(v)
	case []byte:
		*u = PackageUnit(v)
	case nil:
		*u = ""
	default:
		return fmt.Errorf("cannot scan %T into PackageUnit", value)
	}
	return nil
}
