package engine

import (
	"strings"
	"testing"
)

func detailsWithScores(nudity, copyright, fraud float64) *AnalysisDetails {
	return &AnalysisDetails{
		Nudity:    NuditySignal{Score: Score(nudity), Category: categorizeNudity(Score(nudity))},
		Copyright: CopyrightSignal{Score: Score(copyright)},
		Fraud:     FraudSignal{Score: Score(fraud)},
		Quality:   QualitySignal{QualityRating: "good", SharpnessScore: 200, BrightnessScore: 120},
	}
}

func TestAggregateThresholds(t *testing.T) {
	cfg := DefaultConfig() // nudity moderate (0.6), fraud strict (0.4), copyright 60

	cases := []struct {
		name            string
		details         *AnalysisDetails
		wantViolations  int
		wantFirstReason string
	}{
		{"all clean", detailsWithScores(0, 0, 0), 0, ""},
		{"nudity at threshold", detailsWithScores(0.6, 0, 0), 1, "nudity detected"},
		{"nudity below threshold", detailsWithScores(0.59, 0, 0), 0, ""},
		{"copyright at threshold", detailsWithScores(0, 0.6, 0), 1, "copyright infringement detected"},
		{"fraud at threshold", detailsWithScores(0, 0, 0.4), 1, "fraudulent content detected"},
		{"everything", detailsWithScores(0.9, 0.9, 0.9), 3, "nudity detected"},
	}

	for _, tc := range cases {
		violations, risk := aggregate(tc.details, cfg)
		if len(violations) != tc.wantViolations {
			t.Errorf("%s: got %d violations, want %d", tc.name, len(violations), tc.wantViolations)
			continue
		}
		if tc.wantViolations > 0 {
			if !strings.Contains(violations[0].Reason, tc.wantFirstReason) {
				t.Errorf("%s: reason %q missing %q", tc.name, violations[0].Reason, tc.wantFirstReason)
			}
			if risk <= 0 {
				t.Errorf("%s: risk = %f, want > 0", tc.name, risk)
			}
		} else if risk != 0 {
			t.Errorf("%s: risk = %f, want 0", tc.name, risk)
		}
	}
}

func TestAggregateSensitivityMonotonic(t *testing.T) {
	// A stricter sensitivity never produces fewer violations on identical
	// signals.
	order := []Sensitivity{SensitivityLenient, SensitivityModerate, SensitivityStrict}
	scores := []float64{0, 0.3, 0.45, 0.6, 0.75, 0.85, 1.0}

	for _, score := range scores {
		prev := -1
		for _, s := range order {
			cfg := DefaultConfig()
			cfg.NuditySensitivity = s
			cfg.FraudSensitivity = s
			violations, _ := aggregate(detailsWithScores(score, 0, score), cfg)
			if prev >= 0 && len(violations) < prev {
				t.Errorf("score %.2f: %s produced %d violations, lenient-er setting produced %d",
					score, s, len(violations), prev)
			}
			prev = len(violations)
		}
	}
}

func TestAggregateSeverities(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NuditySensitivity = SensitivityStrict

	violations, risk := aggregate(detailsWithScores(0.5, 0.7, 0.5), cfg)
	if len(violations) != 3 {
		t.Fatalf("got %d violations, want 3", len(violations))
	}

	bySeverity := map[string]float64{}
	sum := 0.0
	for _, v := range violations {
		bySeverity[v.Type] = v.SeverityScore
		sum += v.SeverityScore
	}
	if got, want := bySeverity[ViolationNudity], 0.75; got != want {
		t.Errorf("nudity severity = %f, want %f (1.5x score)", got, want)
	}
	if got, want := bySeverity[ViolationCopyright], 0.7; got != want {
		t.Errorf("copyright severity = %f, want %f (raw score)", got, want)
	}
	if got, want := bySeverity[ViolationFraud], 0.6; got-want > 1e-9 || want-got > 1e-9 {
		t.Errorf("fraud severity = %f, want %f (1.2x score)", got, want)
	}
	if risk-sum > 1e-9 || sum-risk > 1e-9 {
		t.Errorf("risk = %f, want sum of severities %f", risk, sum)
	}
}

func TestAggregateSkipsFailedSignals(t *testing.T) {
	details := detailsWithScores(0.9, 0.9, 0.9)
	details.Nudity.Err = "nudity analysis failed: decode error"
	details.Copyright.Err = "copyright analysis failed: decode error"
	details.Fraud.Err = "fraud analysis failed: decode error"

	violations, risk := aggregate(details, DefaultConfig())
	if len(violations) != 0 || risk != 0 {
		t.Errorf("failed signals produced violations %v (risk %f)", violations, risk)
	}
}

func TestAggregateTechnicalQuality(t *testing.T) {
	details := detailsWithScores(0, 0, 0)
	details.Quality = QualitySignal{QualityRating: "poor", SharpnessScore: 30, IsBlurry: true, BrightnessScore: 20, IsTooDark: true}

	cfg := DefaultConfig()
	violations, _ := aggregate(details, cfg)
	if len(violations) != 1 || violations[0].Type != ViolationTechnical {
		t.Fatalf("violations = %+v, want single technical", violations)
	}
	if violations[0].SeverityScore != 0.3 {
		t.Errorf("technical severity = %f, want 0.3", violations[0].SeverityScore)
	}
	for _, issue := range violations[0].Issues {
		if issue == "poor technical quality" {
			t.Error("poor-quality issue present with RejectPoorQuality disabled")
		}
	}

	cfg.RejectPoorQuality = true
	violations, _ = aggregate(details, cfg)
	found := false
	for _, issue := range violations[0].Issues {
		if issue == "poor technical quality" {
			found = true
		}
	}
	if !found {
		t.Errorf("issues %v missing poor-quality entry with RejectPoorQuality enabled", violations[0].Issues)
	}
}

func TestBuildReasoning(t *testing.T) {
	if got := buildReasoning(nil); !strings.Contains(got, "approved") {
		t.Errorf("empty reasoning = %q", got)
	}

	got := buildReasoning([]Violation{
		{Reason: "nudity detected (score: 0.80, category: explicit)"},
		{Reason: "fraudulent content detected (score: 0.60)"},
	})
	if !strings.HasPrefix(got, "Video rejected due to: ") {
		t.Errorf("reasoning = %q, want rejection prefix", got)
	}
	if !strings.Contains(got, "; ") {
		t.Errorf("reasoning = %q, want semicolon-joined parts", got)
	}
}
