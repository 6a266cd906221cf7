package core

// percentEpsilon keeps percentage math finite when a planned sum or a
// yearly total is legitimately zero, while staying negligible for real
// denominators.
const percentEpsilon = 0.0001

// SafePercent returns numerator as a percentage of denominator. It is
// the single point of truth for every percentage in the monthly and
// yearly reports; the epsilon in the denominator guards against
// division by exactly zero.
func SafePercent(numerator, denominator float64) float64 {
	return numerator * 100 / (denominator + percentEpsilon)
}
