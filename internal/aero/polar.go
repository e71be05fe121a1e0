package aero

// PolarPoint is one sample of a measured airfoil polar: angle of attack in
// degrees against lift, drag and pitching-moment coefficients.
type PolarPoint struct {
	AlphaDeg float64
	Cl       float64
	Cd       float64
	Cm       float64
}

// DefaultPolar returns the built-in low-Reynolds flat-plate polar for the
// QBiT wing, sampled every 5 degrees from -10 to 110. External tables may
// be supplied instead; the model only consumes the in-memory samples.
func DefaultPolar() []PolarPoint {
	return []PolarPoint{
		{-10, -0.3591, 0.0682, 0.0410},
		{-5, -0.1823, 0.0322, 0.0208},
		{0, 0.0000, 0.0200, 0.0000},
		{5, 0.1823, 0.0322, -0.0208},
		{10, 0.3591, 0.0682, -0.0410},
		{15, 0.5250, 0.1272, -0.0600},
		{20, 0.6749, 0.2072, -0.0771},
		{25, 0.8043, 0.3058, -0.0919},
		{30, 0.9093, 0.4200, -0.1039},
		{35, 0.9867, 0.5464, -0.1128},
		{40, 1.0340, 0.6811, -0.1182},
		{45, 1.0500, 0.8200, -0.1200},
		{50, 1.0340, 0.9589, -0.1182},
		{55, 0.9867, 1.0936, -0.1128},
		{60, 0.9093, 1.2200, -0.1039},
		{65, 0.8043, 1.3342, -0.0919},
		{70, 0.6749, 1.4328, -0.0771},
		{75, 0.5250, 1.5128, -0.0600},
		{80, 0.3591, 1.5718, -0.0410},
		{85, 0.1823, 1.6078, -0.0208},
		{90, 0.0000, 1.6200, 0.0000},
		{95, -0.1823, 1.6078, 0.0208},
		{100, -0.3591, 1.5718, 0.0410},
		{105, -0.5250, 1.5128, 0.0600},
		{110, -0.6749, 1.4328, 0.0771},
	}
}
