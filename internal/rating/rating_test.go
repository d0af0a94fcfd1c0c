package rating

import (
	"errors"
	"testing"

	"github.com/markd315/football-vibes-sub000/internal/rates"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFatigueCurveAnchors(t *testing.T) {
	c := DefaultFatigueCurve()

	assert.Equal(t, 0.99, c.Raw(85), "stamina at Thi is exactly Mhi")
	assert.Equal(t, 0.99, c.Raw(100))
	assert.InDelta(t, 0.80, c.Raw(60), 1e-12, "stamina at Tmed is exactly Mmed")
	assert.InDelta(t, 0.895, c.Raw(72.5), 1e-12, "linear midpoint")

	assert.Equal(t, 0.0, c.Raw(0), "log10(max(0,1)) is zero")
	assert.Equal(t, 0.20, c.Multiplier(0), "floor applies after the curve")
	assert.InDelta(t, 0.80, c.Raw(59.9999), 1e-4, "log segment meets the linear segment")
}

func TestFatigueCurveMonotonic(t *testing.T) {
	c := DefaultFatigueCurve()
	prev := -1.0
	for s := 0.0; s <= 100; s += 0.5 {
		m := c.Multiplier(s)
		require.GreaterOrEqual(t, m, prev, "stamina=%v", s)
		require.GreaterOrEqual(t, m, c.Floor)
		prev = m
	}
}

func TestEvaluateNeverExceedsTraitAdjustedBase(t *testing.T) {
	c := DefaultFatigueCurve()
	c.High = 1.25 // a misconfigured curve must still not inflate ratings
	p := &Player{ID: "qb1", Position: QB, Percentile: 90, Stamina: 100, Traits: map[string]float64{"escape-artist": 8}}
	asg := &Assignment{Category: CategoryPass, Action: ActionBoot}

	res := Evaluate(p, asg, PlayContext{PlayType: rates.Pass}, c)
	assert.Equal(t, "escape-artist", res.Trait)
	assert.Equal(t, 8.0, res.TraitAdjustment)
	assert.Equal(t, 98.0, res.EffectivePercentile, "capped at clamp(base+trait)")
}

func TestEvaluateClampsBeforeFatigue(t *testing.T) {
	c := DefaultFatigueCurve()
	p := &Player{ID: "ol1", Position: OL, Percentile: 97, Stamina: 90, Traits: map[string]float64{"zone-blocker": 10}}
	res := Evaluate(p, &Assignment{Category: CategoryRunBlock, Action: ActionZoneBlock}, PlayContext{PlayType: rates.Run}, c)
	assert.InDelta(t, 100*0.99, res.EffectivePercentile, 1e-9)

	p.Traits = map[string]float64{"zone-blocker": -120}
	res = Evaluate(p, &Assignment{Category: CategoryRunBlock, Action: ActionZoneBlock}, PlayContext{PlayType: rates.Run}, c)
	assert.Equal(t, 0.0, res.EffectivePercentile)
}

func TestEvaluateTiredPlayer(t *testing.T) {
	c := DefaultFatigueCurve()
	p := &Player{ID: "rb1", Position: RB, Percentile: 80, Stamina: 10}
	res := Evaluate(p, nil, PlayContext{PlayType: rates.Run}, c)
	// (0.8 / log10(60)) * log10(10)
	assert.InDelta(t, 80*0.8/1.7781512503836436, res.EffectivePercentile, 1e-9)
	assert.Empty(t, res.Trait)
}

func TestSelectTraitOrdering(t *testing.T) {
	traits := map[string]float64{
		"escape-artist": 6,
		"pocket-passer": 4,
		"option-threat": 5,
	}
	boot := &Assignment{Category: CategoryPass, Action: ActionBoot}
	drop := &Assignment{Category: CategoryPass, Action: ActionDrop7}
	read := &Assignment{Category: CategoryRun, Action: ActionZoneRead}

	name, v := SelectTrait(QB, traits, boot, PlayContext{PlayType: rates.Pass})
	assert.Equal(t, "escape-artist", name)
	assert.Equal(t, 6.0, v)

	name, _ = SelectTrait(QB, traits, drop, PlayContext{PlayType: rates.Pass})
	assert.Equal(t, "pocket-passer", name)

	name, _ = SelectTrait(QB, traits, read, PlayContext{PlayType: rates.Run})
	assert.Equal(t, "option-threat", name)

	// zero-valued trait is skipped, not matched
	name, v = SelectTrait(QB, map[string]float64{"escape-artist": 0}, boot, PlayContext{PlayType: rates.Pass})
	assert.Empty(t, name)
	assert.Zero(t, v)
}

func TestSelectTraitLinemanPrecedence(t *testing.T) {
	all := map[string]float64{"zone-blocker": 3, "gap-blocker": 4, "hammer": 5, "pass-protection": 6}
	cases := []struct {
		asg  Assignment
		want string
	}{
		{Assignment{CategoryRunBlock, ActionZoneBlock}, "zone-blocker"},
		{Assignment{CategoryRunBlock, ActionDoubleTeam}, "gap-blocker"},
		{Assignment{CategoryRunBlock, ActionPullBlock}, "hammer"},
		{Assignment{CategoryPassBlock, ActionPassSet}, "pass-protection"},
	}
	for _, tc := range cases {
		got, _ := SelectTrait(OL, all, &tc.asg, PlayContext{})
		assert.Equal(t, tc.want, got, tc.asg.String())
	}
}

func TestSelectTraitFallsThroughToLocation(t *testing.T) {
	traits := map[string]float64{"box-safety": 7, "ball-hawk": 2}
	asg := &Assignment{Category: CategoryZoneCoverage, Action: ActionDeepZone}

	name, _ := SelectTrait(S, traits, asg, PlayContext{PlayType: rates.Pass, Location: LocationBox})
	assert.Equal(t, "box-safety", name)
	name, _ = SelectTrait(S, traits, asg, PlayContext{PlayType: rates.Pass, Location: LocationDeep})
	assert.Equal(t, "ball-hawk", name)
}

func TestValidateAssignment(t *testing.T) {
	require.NoError(t, ValidateAssignment(QB, Assignment{CategoryPass, ActionBoot}))
	require.NoError(t, ValidateAssignment(LB, Assignment{CategoryRunDefense, ActionScrape}))

	err := ValidateAssignment(OL, Assignment{CategoryRoute, ActionDeepRoute})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrIllegalAssignment))

	err = ValidateAssignment(Position("K"), Assignment{})
	assert.ErrorIs(t, err, ErrIllegalAssignment)

	for _, asg := range LegalAssignments(TE) {
		assert.NoError(t, ValidateAssignment(TE, asg))
	}
}

func TestAssignmentText(t *testing.T) {
	var a Action
	require.NoError(t, a.UnmarshalText([]byte("zone-inside-left")))
	assert.Equal(t, ActionZoneInsideLeft, a)
	assert.Error(t, a.UnmarshalText([]byte("zone inside left")))

	b, err := CategoryPassRush.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "pass-rush", string(b))
}

func TestUpdateFatigue(t *testing.T) {
	r := &Roster{Players: []*Player{
		{ID: "rb1", Position: RB, Stamina: 90, OnField: true},
		{ID: "ol1", Position: OL, Stamina: 2, OnField: true},
		{ID: "wr9", Position: WR, Stamina: 97, OnField: false},
	}}
	UpdateFatigue(r, PlayInfo{PlayType: rates.Run, BallCarrier: "rb1"}, DefaultFatigueRates())

	assert.Equal(t, 90.0-3-1-3, r.Find("rb1").Stamina)
	assert.Equal(t, 0.0, r.Find("ol1").Stamina, "stamina floors at zero")
	assert.Equal(t, 100.0, r.Find("wr9").Stamina, "bench recovery caps at 100")

	Recover(r, 4)
	assert.Equal(t, 87.0, r.Find("rb1").Stamina)
	assert.Len(t, r.OnField(), 2)
}
