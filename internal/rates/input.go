package rates

import "math"

// Input is the evaluator payload. Either the advantage pair or the three
// direct percentages may be supplied; the advantage pair wins when both are.
type Input struct {
	PlayType         PlayType `json:"play-type,omitempty"`
	OffenseAdvantage *float64 `json:"offense-advantage,omitempty"`
	RiskLeverage     *float64 `json:"risk-leverage,omitempty"`

	SuccessRate   *float64 `json:"success-rate,omitempty"`
	HavocRate     *float64 `json:"havoc-rate,omitempty"`
	ExplosiveRate *float64 `json:"explosive-rate,omitempty"`
}

// HasEvaluation reports whether an advantage evaluation is present.
func (in Input) HasEvaluation() bool {
	return in.OffenseAdvantage != nil
}

// Vector resolves the input to a rate vector. Missing or malformed direct
// percentages fall back to the documented defaults rather than failing.
func (in Input) Vector(pt PlayType) Vector {
	if in.PlayType != "" {
		pt = in.PlayType
	}
	if in.HasEvaluation() {
		lev := 0.0
		if in.RiskLeverage != nil {
			lev = *in.RiskLeverage
		}
		return Compute(pt, *in.OffenseAdvantage, lev)
	}
	return Vector{
		Success:   percentOr(in.SuccessRate, DefaultSuccess),
		Explosive: percentOr(in.ExplosiveRate, DefaultExplosive),
		Havoc:     percentOr(in.HavocRate, DefaultHavoc),
	}
}

func percentOr(p *float64, d float64) float64 {
	if p == nil {
		return d
	}
	v := *p
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 || v > 100 {
		return d
	}
	return v
}
