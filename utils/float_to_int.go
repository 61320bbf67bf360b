package utils

// Float32ToInt16 converts a normalized sample in [-1, 1] to 16-bit PCM,
// clamping out-of-range input.
func Float32ToInt16(x float32) int16 {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	// Use 32767 for positive max to avoid overflow
	return int16(x * 32767.0)
}

// Int16ToFloat32 converts a 16-bit PCM sample to a normalized float in
// [-1, 1).
func Int16ToFloat32(v int16) float32 {
	return float32(v) / 32768.0
}
