package layout

// VehicleClass classifies a bus for seat-map purposes.  The class only
// matters to the fallback synthesizer: sleeper-style coaches run a 1+2
// arrangement per row while everything else runs 2+2.
type VehicleClass string

const (
	ClassSleeper     VehicleClass = "sleeper"      // full sleeper coach
	ClassSemiSleeper VehicleClass = "semi-sleeper" // mixed recliner/berth coach
	ClassSeater      VehicleClass = "seater"       // plain seater
	ClassACSeater    VehicleClass = "ac-seater"    // air-conditioned seater
	ClassVolvo       VehicleClass = "volvo"        // premium seater
)

// IsValid checks if the vehicle class is one of the known values.
func (c VehicleClass) IsValid() bool {
	switch c {
	case ClassSleeper, ClassSemiSleeper, ClassSeater, ClassACSeater, ClassVolvo:
		return true
	}
	return false
}

// String returns the string representation of the vehicle class.
func (c VehicleClass) String() string { return string(c) }

// SeatsPerRow returns how many seats the fallback synthesizer places per
// row for this class: 3 (1 left + 2 right) for sleeper classes, 4
// (2 left + 2 right) for everything else, including unknown classes.
func (c VehicleClass) SeatsPerRow() int {
	switch c {
	case ClassSleeper, ClassSemiSleeper:
		return 3
	}
	return 4
}
