package engine

// Score is a signal strength bounded to [0, 1]. Construct values through
// BoundScore so every extractor output is in range by construction and the
// aggregator never needs to re-clamp.
type Score float64

// BoundScore clamps v into [0, 1].
func BoundScore(v float64) Score {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return Score(v)
}

// Float returns the score as a plain float64.
func (s Score) Float() float64 {
	return float64(s)
}
