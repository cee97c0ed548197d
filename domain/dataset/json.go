package dataset

import "math"

// JSONFloat returns nil for NaN and infinities so undefined statistics encode
// as JSON null instead of failing the encoder.
func JSONFloat(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
