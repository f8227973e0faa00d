package engine

// estimateConfidence derives the decision confidence from the outcome and
// the number/severity of violations. Both branches are monotone in risk
// and violation count and bounded to [0, 1] by construction.
func estimateConfidence(riskScore float64, violationCount int) float64 {
	if violationCount == 0 {
		// High confidence for approved videos, scaled slightly by
		// residual risk.
		return BoundScore(0.9 + (1-riskScore)*0.1).Float()
	}

	base := 0.7
	severityBonus := riskScore * 0.2
	if severityBonus > 0.2 {
		severityBonus = 0.2
	}
	violationBonus := float64(violationCount) * 0.05
	if violationBonus > 0.1 {
		violationBonus = 0.1
	}
	return BoundScore(base + severityBonus + violationBonus).Float()
}
