package input

import (
	"math"

	"github.com/lixenwraith/pickacard/constant"
)

// ShakeDetector flags accelerometer samples strong enough to count as a shake
// Dwell between shakes is enforced by the hand, not here
type ShakeDetector struct {
	Threshold float64 // Magnitude in g, strictly exceeded
}

// NewShakeDetector returns a detector at the default threshold
func NewShakeDetector() ShakeDetector {
	return ShakeDetector{Threshold: constant.ShakeThreshold}
}

// Sample reports whether the acceleration vector's magnitude exceeds the threshold
func (d ShakeDetector) Sample(x, y, z float64) bool {
	return math.Sqrt(x*x+y*y+z*z) > d.Threshold
}
