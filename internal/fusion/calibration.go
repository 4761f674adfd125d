package fusion

// Calibration holds the fixed decision policy for verdict fusion. These
// values are tuned against the external classifier's output distribution
// and must be reproduced exactly for verdict compatibility.
type Calibration struct {
	// CameraOverrideFactor downgrades the classifier fake score when the
	// image carries a camera signature (Stage A).
	CameraOverrideFactor float64 `toml:"camera_override_factor"`
	// CrossValidationFloor is the fake score above which Stage A engages.
	CrossValidationFloor float64 `toml:"cross_validation_floor"`

	// Stage B thresholds on the (possibly adjusted) fake score. Strict
	// greater-than / less-than comparisons at every boundary.
	ManipulatedThreshold float64 `toml:"manipulated_threshold"`
	SuspiciousThreshold  float64 `toml:"suspicious_threshold"`
	AuthenticThreshold   float64 `toml:"authentic_threshold"`

	// Fallback blend when the classifier is unavailable.
	ELAWeight         float64 `toml:"ela_weight"`
	SpectralWeight    float64 `toml:"spectral_weight"`
	FallbackThreshold float64 `toml:"fallback_threshold"`

	// Explanation tiers shared by the ELA and spectral clauses.
	FlaggedTier float64 `toml:"flagged_tier"`
	MinorTier   float64 `toml:"minor_tier"`
}

// DefaultCalibration returns the production decision policy.
func DefaultCalibration() Calibration {
	return Calibration{
		CameraOverrideFactor: 0.15,
		CrossValidationFloor: 0.5,
		ManipulatedThreshold: 0.75,
		SuspiciousThreshold:  0.50,
		AuthenticThreshold:   0.30,
		ELAWeight:            0.5,
		SpectralWeight:       0.5,
		FallbackThreshold:    0.4,
		FlaggedTier:          0.4,
		MinorTier:            0.15,
	}
}
