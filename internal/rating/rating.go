package rating

import (
	"math"

	"github.com/markd315/football-vibes-sub000/internal/rates"
)

// Player is one rostered player. Percentile and Traits are static; Stamina
// changes after every play; Assignment and Location are supplied per play.
type Player struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	Position   Position           `json:"position"`
	Percentile float64            `json:"percentile"`
	Stamina    float64            `json:"stamina"`
	Traits     map[string]float64 `json:"traits,omitempty"`
	OnField    bool               `json:"onField"`
	Location   Location           `json:"location,omitempty"`
	Assignment *Assignment        `json:"assignment,omitempty"`
}

// Roster is a team's full player list.
type Roster struct {
	Players []*Player `json:"players"`
}

// Find returns the player with the given ID, or nil.
func (r *Roster) Find(id string) *Player {
	if r == nil {
		return nil
	}
	for _, p := range r.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// OnField returns the players currently on the field, in roster order.
func (r *Roster) OnField() []*Player {
	if r == nil {
		return nil
	}
	var out []*Player
	for _, p := range r.Players {
		if p.OnField {
			out = append(out, p)
		}
	}
	return out
}

// Result is the effective rating of one player on one play.
type Result struct {
	PlayerID            string   `json:"playerId"`
	Position            Position `json:"position"`
	EffectivePercentile float64  `json:"effectivePercentile"`
	TraitAdjustment     float64  `json:"traitAdjustment"`
	Trait               string   `json:"trait,omitempty"`
}

// Evaluate computes the effective percentile:
//
//	clamp(base + traitBonus, 0, 100) * max(fatigue(stamina), floor)
//
// capped so fatigue can only lower the trait-adjusted base.
func Evaluate(p *Player, asg *Assignment, pc PlayContext, curve FatigueCurve) Result {
	trait, bonus := SelectTrait(p.Position, p.Traits, asg, pc)
	adjusted := clamp(p.Percentile+bonus, 0, 100)
	eff := math.Min(adjusted*curve.Multiplier(p.Stamina), adjusted)
	return Result{
		PlayerID:            p.ID,
		Position:            p.Position,
		EffectivePercentile: eff,
		TraitAdjustment:     bonus,
		Trait:               trait,
	}
}

// EvaluateOnField rates every on-field player using their own assignment and location.
func EvaluateOnField(r *Roster, pt rates.PlayType, curve FatigueCurve) []Result {
	var out []Result
	for _, p := range r.OnField() {
		out = append(out, Evaluate(p, p.Assignment, PlayContext{PlayType: pt, Location: p.Location}, curve))
	}
	return out
}
