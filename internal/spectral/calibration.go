package spectral

// Calibration holds the tunable weights for the spectral anomaly score.
// Values are empirically calibrated policy, reproduced exactly for
// compatibility with stored verdicts.
type Calibration struct {
	// RatioWeight scales the high-frequency energy ratio term.
	RatioWeight float64 `toml:"ratio_weight"`
	// DecayWeight and DecayScale shape the energy-decay anomaly term.
	DecayWeight float64 `toml:"decay_weight"`
	DecayScale  float64 `toml:"decay_scale"`
	// ExpectedDecay is the fraction of low-band energy a natural image is
	// expected to retain in the high band.
	ExpectedDecay float64 `toml:"expected_decay"`
	// PeriodicityWeight scales the autocorrelation peak term.
	PeriodicityWeight float64 `toml:"periodicity_weight"`
}

// DefaultCalibration returns the production scoring policy.
func DefaultCalibration() Calibration {
	return Calibration{
		RatioWeight:       0.3,
		DecayWeight:       0.4,
		DecayScale:        0.15,
		ExpectedDecay:     0.1,
		PeriodicityWeight: 0.3,
	}
}
