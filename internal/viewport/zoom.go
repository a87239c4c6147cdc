package viewport

import (
	"fmt"
	"slices"
)

// DefaultZoom is the zoom level a new session starts at and ResetZoom
// returns to.
const DefaultZoom = 1.0

// ZoomLevels are the discrete zoom levels in ascending order.
var ZoomLevels = []float64{0.5, 0.75, 1.0, 1.25, 1.5, 1.75, 2.0}

// ZoomIn returns the next level above z, or the highest level.
func ZoomIn(z float64) float64 {
	for _, l := range ZoomLevels {
		if l > z {
			return l
		}
	}
	return ZoomLevels[len(ZoomLevels)-1]
}

// ZoomOut returns the next level below z, or the lowest level.
func ZoomOut(z float64) float64 {
	for i := len(ZoomLevels) - 1; i >= 0; i-- {
		if ZoomLevels[i] < z {
			return ZoomLevels[i]
		}
	}
	return ZoomLevels[0]
}

// ValidateZoom checks that z is one of ZoomLevels.
func ValidateZoom(z float64) error {
	if !slices.Contains(ZoomLevels, z) {
		return fmt.Errorf("%w: %v (must be one of %v)", ErrInvalidZoom, z, ZoomLevels)
	}
	return nil
}
