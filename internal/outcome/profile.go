package outcome

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	ErrProfileNotFound = errors.New("outcome profile not found")
	ErrInvalidProfile  = errors.New("invalid outcome profile")
)

// Profile is the statistical shape of one outcome bucket. Immutable once loaded.
type Profile struct {
	Outcome              string   `yaml:"outcome" json:"outcome"`
	Description          string   `yaml:"description" json:"description"`
	AverageYardsGained   float64  `yaml:"average-yards-gained" json:"average-yards-gained"`
	StandardDeviation    float64  `yaml:"standard-deviation" json:"standard-deviation"`
	Skewness             float64  `yaml:"skewness" json:"skewness"`
	CompletionPercentage *float64 `yaml:"completion-percentage,omitempty" json:"completion-percentage,omitempty"`
	TurnoverProbability  float64  `yaml:"turnover-probability" json:"turnover-probability"`
	TurnoverType         string   `yaml:"turnover-type" json:"turnover-type"`
}

// Validate checks the invariants the samplers rely on.
func (p Profile) Validate() error {
	var errs []string
	if !(p.StandardDeviation > 0) || math.IsInf(p.StandardDeviation, 0) {
		errs = append(errs, "standard-deviation must be > 0")
	}
	if math.IsNaN(p.AverageYardsGained) || math.IsInf(p.AverageYardsGained, 0) {
		errs = append(errs, "average-yards-gained must be finite")
	}
	if math.IsNaN(p.Skewness) || math.IsInf(p.Skewness, 0) {
		errs = append(errs, "skewness must be finite")
	}
	if p.CompletionPercentage != nil && !inPercent(*p.CompletionPercentage) {
		errs = append(errs, "completion-percentage must be in [0,100]")
	}
	if !inPercent(p.TurnoverProbability) {
		errs = append(errs, "turnover-probability must be in [0,100]")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidProfile, strings.Join(errs, "; "))
	}
	return nil
}

// Describe fills the {yards} placeholders of the description template.
func (p Profile) Describe(yards int) string {
	return strings.ReplaceAll(p.Description, "{yards}", strconv.Itoa(yards))
}

func inPercent(v float64) bool {
	return v >= 0 && v <= 100
}
