package vehicle

import "errors"

var (
	ErrInvalidFuelLevel = errors.New("invalid fuel level")
	ErrInvalidStatus    = errors.New("invalid vehicle status")
)

// FuelLevel is the coarse gauge reading recorded at inspection time.
type FuelLevel string

const (
	FuelFull          FuelLevel = "full"
	FuelThreeQuarters FuelLevel = "3/4"
	FuelHalf          FuelLevel = "half"
	FuelQuarter       FuelLevel = "1/4"
	FuelEmpty         FuelLevel = "empty"
)

func ParseFuelLevel(s string) (FuelLevel, error) {
	switch FuelLevel(s) {
	case FuelFull, FuelThreeQuarters, FuelHalf, FuelQuarter, FuelEmpty:
		return FuelLevel(s), nil
	default:
		return "", ErrInvalidFuelLevel
	}
}

func (f FuelLevel) String() string { return string(f) }

type Status string

const (
	StatusAvailable   Status = "available"
	StatusInUse       Status = "in-use"
	StatusMaintenance Status = "maintenance"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusAvailable, StatusInUse, StatusMaintenance:
		return Status(s), nil
	default:
		return "", ErrInvalidStatus
	}
}

func (s Status) String() string { return string(s) }
