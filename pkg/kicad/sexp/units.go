package sexp

// Unit conversion constants.
// KiCad board files store coordinates in millimeters and angles in degrees,
// but pcbnew's internal representation uses nanometers and (historically)
// decidegrees. Adapters that model the internal representation convert at
// the boundary.
const (
	NanometersToMM       = 1e-6
	MMToNanometers       = 1e6
	DecidegreesToDegrees = 0.1
	DegreesToDecidegrees = 10.0
)

// IUToMM converts internal units (nanometers) to millimeters.
func IUToMM(iu int64) float64 {
	return float64(iu) * NanometersToMM
}

// MMToIU converts millimeters to internal units (nanometers), rounding to
// the nearest unit.
func MMToIU(mm float64) int64 {
	if mm < 0 {
		return int64(mm*MMToNanometers - 0.5)
	}
	return int64(mm*MMToNanometers + 0.5)
}

// NormalizeDegrees maps an angle into [0, 360).
func NormalizeDegrees(deg float64) float64 {
	for deg < 0 {
		deg += 360
	}
	for deg >= 360 {
		deg -= 360
	}
	return deg
}
