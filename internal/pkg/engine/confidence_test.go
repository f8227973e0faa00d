package engine

import "testing"

func TestEstimateConfidenceBounds(t *testing.T) {
	risks := []float64{0, 0.1, 0.5, 1, 1.5, 2.7, 10, 100}
	counts := []int{0, 1, 2, 3, 4, 10}

	for _, risk := range risks {
		for _, count := range counts {
			c := estimateConfidence(risk, count)
			if c < 0 || c > 1 {
				t.Errorf("estimateConfidence(%f, %d) = %f, out of [0,1]", risk, count, c)
			}
		}
	}
}

func TestEstimateConfidenceNoViolations(t *testing.T) {
	if c := estimateConfidence(0, 0); c != 1.0 {
		t.Errorf("zero-risk approval confidence = %f, want 1.0", c)
	}
	// Approval confidence never drops below the 0.9 base for risk in [0,1].
	if c := estimateConfidence(0.5, 0); c < 0.9 {
		t.Errorf("approval confidence = %f, want >= 0.9", c)
	}
}

func TestEstimateConfidenceWithViolations(t *testing.T) {
	c := estimateConfidence(0.9, 1)
	if c < 0.7 {
		t.Errorf("violation confidence = %f, want >= 0.7 base", c)
	}

	// More violations at the same risk means more corroborating evidence.
	if one, three := estimateConfidence(1.0, 1), estimateConfidence(1.0, 3); three < one {
		t.Errorf("confidence decreased with violation count: %f -> %f", one, three)
	}

	// Both bonuses saturate: risk term at 0.2, count term at 0.1.
	if c := estimateConfidence(100, 10); c != 1.0 {
		t.Errorf("saturated confidence = %f, want 1.0", c)
	}
}
