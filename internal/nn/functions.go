package nn

// Sat clamps value to [min, max].
func Sat(value, max, min float64) float64 {
	if value > max {
		return max
	}
	if value < min {
		return min
	}
	return value
}

// Saturation clamps value to the symmetric range [-spread, spread].
func Saturation(value, spread float64) float64 {
	if spread < 0 {
		spread = -spread
	}
	return Sat(value, spread, -spread)
}

// ScaleValue maps value from [min, max] to [-1, 1].
func ScaleValue(value, max, min float64) float64 {
	if max == min {
		return 0
	}
	return (value*2 - (max + min)) / (max - min)
}

// ScaleSlice maps each value from [min, max] to [-1, 1].
func ScaleSlice(values []float64, max, min float64) []float64 {
	out := make([]float64, len(values))
	for i, value := range values {
		out[i] = ScaleValue(value, max, min)
	}
	return out
}
