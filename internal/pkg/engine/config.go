package engine

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Sensitivity selects a violation threshold from the fixed per-category
// table. Unknown values fall back to the moderate threshold at aggregation
// time; Validate rejects them at the API edge.
type Sensitivity string

const (
	SensitivityLenient  Sensitivity = "lenient"
	SensitivityModerate Sensitivity = "moderate"
	SensitivityStrict   Sensitivity = "strict"
)

// sensitivityThresholds maps a sensitivity to the minimum signal score
// that counts as a violation. Shared by the nudity and fraud categories.
var sensitivityThresholds = map[Sensitivity]float64{
	SensitivityLenient:  0.8,
	SensitivityModerate: 0.6,
	SensitivityStrict:   0.4,
}

// Threshold returns the violation threshold for the sensitivity,
// defaulting to moderate for unrecognized values.
func (s Sensitivity) Threshold() float64 {
	if t, ok := sensitivityThresholds[s]; ok {
		return t
	}
	return sensitivityThresholds[SensitivityModerate]
}

// ModerationConfig is the immutable per-invocation policy configuration.
// A fresh value is built per request from DefaultConfig merged with caller
// overrides; it is never mutated after construction.
type ModerationConfig struct {
	NuditySensitivity  Sensitivity `json:"nudity_sensitivity" validate:"oneof=lenient moderate strict"`
	FraudSensitivity   Sensitivity `json:"fraud_sensitivity" validate:"oneof=lenient moderate strict"`
	CopyrightThreshold int         `json:"copyright_threshold" validate:"min=0,max=100"`
	RejectPoorQuality  bool        `json:"reject_poor_quality"`
	BlurFaces          bool        `json:"blur_faces"`
	BlurViolence       bool        `json:"blur_violence"`
}

// DefaultConfig returns the documented default policy.
func DefaultConfig() ModerationConfig {
	return ModerationConfig{
		NuditySensitivity:  SensitivityModerate,
		FraudSensitivity:   SensitivityStrict,
		CopyrightThreshold: 60,
		RejectPoorQuality:  false,
		BlurFaces:          true,
		BlurViolence:       true,
	}
}

var configValidator = validator.New()

// Validate checks all fields against their accepted enumerations/ranges.
func (c ModerationConfig) Validate() error {
	if err := configValidator.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}
