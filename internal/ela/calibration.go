package ela

// Calibration holds the tunable scoring policy for error level analysis.
// The divisors and weights are empirically calibrated against known-edited
// and known-clean corpora; they are policy, not derived constants.
type Calibration struct {
	// Quality is the JPEG quality used for the forensic re-encode.
	Quality int `toml:"quality"`
	// VarianceDivisor normalizes the error-field standard deviation.
	VarianceDivisor float64 `toml:"variance_divisor"`
	// MeanDivisor normalizes the error-field mean.
	MeanDivisor float64 `toml:"mean_divisor"`
	// VarianceWeight and MeanWeight blend the two normalized components
	// into the manipulation score.
	VarianceWeight float64 `toml:"variance_weight"`
	MeanWeight     float64 `toml:"mean_weight"`
	// UniformStdCutoff suppresses artifact detection when the error field
	// is too uniform to carry regional signal.
	UniformStdCutoff float64 `toml:"uniform_std_cutoff"`
	// RegionSigma is the number of standard deviations above the mean a
	// region must reach to be flagged; SeveritySigma scales severity.
	RegionSigma   float64 `toml:"region_sigma"`
	SeveritySigma float64 `toml:"severity_sigma"`
}

// DefaultCalibration returns the production scoring policy.
func DefaultCalibration() Calibration {
	return Calibration{
		Quality:          90,
		VarianceDivisor:  40.0,
		MeanDivisor:      30.0,
		VarianceWeight:   0.6,
		MeanWeight:       0.4,
		UniformStdCutoff: 1.0,
		RegionSigma:      2.0,
		SeveritySigma:    3.0,
	}
}
