package engine

import (
	"fmt"
	"strings"
)

// Violation categories.
const (
	ViolationNudity    = "nudity"
	ViolationCopyright = "copyright"
	ViolationFraud     = "fraud"
	ViolationTechnical = "technical"
)

// Violation is a signal whose score crossed its sensitivity-derived
// threshold, carried into the rejection reasoning.
type Violation struct {
	Type             string    `json:"type"`
	Reason           string    `json:"reason"`
	Score            float64   `json:"score,omitempty"`
	SeverityScore    float64   `json:"severity_score"`
	Category         string    `json:"category,omitempty"`
	Timestamps       []float64 `json:"timestamps,omitempty"`
	PotentialSources []string  `json:"potential_sources,omitempty"`
	Indicators       []string  `json:"indicators,omitempty"`
	FraudTypes       []string  `json:"fraud_types,omitempty"`
	Issues           []string  `json:"issues,omitempty"`
	QualityRating    string    `json:"quality_rating,omitempty"`
}

// aggregate maps each signal against its threshold and combines breaches
// into the final verdict. Failed extractors contribute nothing.
func aggregate(details *AnalysisDetails, cfg ModerationConfig) (violations []Violation, riskScore float64) {
	violations = make([]Violation, 0)

	if v, ok := checkNudity(details.Nudity, cfg); ok {
		violations = append(violations, v)
		riskScore += v.SeverityScore
	}
	if v, ok := checkCopyright(details.Copyright, cfg); ok {
		violations = append(violations, v)
		riskScore += v.SeverityScore
	}
	if v, ok := checkFraud(details.Fraud, cfg); ok {
		violations = append(violations, v)
		riskScore += v.SeverityScore
	}
	if v, ok := checkTechnical(details.Quality, cfg); ok {
		violations = append(violations, v)
		riskScore += v.SeverityScore
	}
	return violations, riskScore
}

func checkNudity(sig NuditySignal, cfg ModerationConfig) (Violation, bool) {
	if sig.Failed() {
		return Violation{}, false
	}
	score := sig.Score.Float()
	if score < cfg.NuditySensitivity.Threshold() {
		return Violation{}, false
	}

	reason := fmt.Sprintf("nudity detected (score: %.2f, category: %s)", score, sig.Category)
	timestamps := make([]float64, 0, len(sig.Detections))
	for _, d := range sig.Detections {
		timestamps = append(timestamps, d.Timestamp)
	}
	if len(timestamps) > 0 {
		shown := make([]string, 0, 3)
		for i, ts := range timestamps {
			if i >= 3 {
				break
			}
			shown = append(shown, fmt.Sprintf("%.1fs", ts))
		}
		reason += fmt.Sprintf(" at timestamps: %s", strings.Join(shown, ", "))
	}

	return Violation{
		Type:          ViolationNudity,
		Reason:        reason,
		Score:         score,
		Category:      sig.Category,
		SeverityScore: BoundScore(score * 1.5).Float(),
		Timestamps:    timestamps,
	}, true
}

func checkCopyright(sig CopyrightSignal, cfg ModerationConfig) (Violation, bool) {
	if sig.Failed() {
		return Violation{}, false
	}
	score := sig.Score.Float()
	if score < float64(cfg.CopyrightThreshold)/100.0 {
		return Violation{}, false
	}

	reason := fmt.Sprintf("copyright infringement detected (score: %.2f)", score)
	if sig.Audio.Score > sig.Visual.Score {
		reason += fmt.Sprintf(" - primarily audio content (score: %.2f)", sig.Audio.Score.Float())
	} else {
		reason += fmt.Sprintf(" - primarily visual content (score: %.2f)", sig.Visual.Score.Float())
	}
	if len(sig.PotentialSources) > 0 {
		shown := sig.PotentialSources
		if len(shown) > 2 {
			shown = shown[:2]
		}
		reason += fmt.Sprintf(". Potential sources: %s", strings.Join(shown, ", "))
	}

	return Violation{
		Type:             ViolationCopyright,
		Reason:           reason,
		Score:            score,
		SeverityScore:    score,
		PotentialSources: sig.PotentialSources,
	}, true
}

func checkFraud(sig FraudSignal, cfg ModerationConfig) (Violation, bool) {
	if sig.Failed() {
		return Violation{}, false
	}
	score := sig.Score.Float()
	if score < cfg.FraudSensitivity.Threshold() {
		return Violation{}, false
	}

	reason := fmt.Sprintf("fraudulent content detected (score: %.2f)", score)
	if len(sig.FraudTypes) > 0 {
		reason += fmt.Sprintf(" - types: %s", strings.Join(sig.FraudTypes, ", "))
	}
	if len(sig.Indicators) > 0 {
		shown := sig.Indicators
		if len(shown) > 3 {
			shown = shown[:3]
		}
		reason += fmt.Sprintf(". Indicators: %s", strings.Join(shown, ", "))
	}

	return Violation{
		Type:   ViolationFraud,
		Reason: reason,
		Score:  score,
		// Fraud is weighted more severely
		SeverityScore: score * 1.2,
		Indicators:    sig.Indicators,
		FraudTypes:    sig.FraudTypes,
	}, true
}

func checkTechnical(sig QualitySignal, cfg ModerationConfig) (Violation, bool) {
	if sig.Failed() {
		return Violation{}, false
	}

	issues := make([]string, 0)
	if sig.IsBlurry {
		issues = append(issues, "video is too blurry")
	}
	if sig.IsTooDark {
		issues = append(issues, "video is too dark")
	}
	if sig.IsTooBright {
		issues = append(issues, "video is overexposed")
	}
	if sig.QualityRating == "poor" && cfg.RejectPoorQuality {
		issues = append(issues, "poor technical quality")
	}
	if len(issues) == 0 {
		return Violation{}, false
	}

	return Violation{
		Type:   ViolationTechnical,
		Reason: fmt.Sprintf("technical quality issues: %s", strings.Join(issues, ", ")),
		// Technical issues are less severe
		SeverityScore: 0.3,
		Issues:        issues,
		QualityRating: sig.QualityRating,
	}, true
}

// buildReasoning renders the human-readable verdict explanation.
func buildReasoning(violations []Violation) string {
	if len(violations) == 0 {
		return "Video approved - all content checks passed within acceptable thresholds"
	}
	parts := make([]string, 0, len(violations))
	for _, v := range violations {
		parts = append(parts, v.Reason)
	}
	return fmt.Sprintf("Video rejected due to: %s", strings.Join(parts, "; "))
}
