package rating

import "github.com/markd315/football-vibes-sub000/internal/rates"

// Location is where a player lines up.
type Location string

const (
	LocationLine      Location = "line"
	LocationBackfield Location = "backfield"
	LocationSlot      Location = "slot"
	LocationWide      Location = "wide"
	LocationBox       Location = "box"
	LocationDeep      Location = "deep"
)

// PlayContext is the per-play information trait conditions may inspect.
type PlayContext struct {
	PlayType rates.PlayType
	Location Location
}

type traitRule struct {
	trait string
	when  func(Assignment, PlayContext) bool
}

func inCategory(cats ...Category) func(Assignment, PlayContext) bool {
	return func(a Assignment, _ PlayContext) bool {
		for _, c := range cats {
			if a.Category == c {
				return true
			}
		}
		return false
	}
}

func isAction(acts ...Action) func(Assignment, PlayContext) bool {
	return func(a Assignment, _ PlayContext) bool {
		for _, x := range acts {
			if a.Action == x {
				return true
			}
		}
		return false
	}
}

// traitRules is evaluated top to bottom; the first matching rule whose trait
// the player actually carries (nonzero) wins. Order is part of the contract:
// reordering a list changes resolved outcomes.
var traitRules = map[Position][]traitRule{
	QB: {
		{"escape-artist", isAction(ActionBoot, ActionRollout)},
		{"pocket-passer", isAction(ActionDrop5, ActionDrop7)},
		{"option-threat", isAction(ActionOption, ActionZoneRead)},
		{"quick-release", isAction(ActionQuickDrop)},
	},
	RB: {
		{"zone-runner", func(a Assignment, _ PlayContext) bool { return a.Action.zoneRun() }},
		{"power-back", func(a Assignment, _ PlayContext) bool { return a.Action.gapRun() }},
		{"receiving-back", inCategory(CategoryRoute)},
		{"pass-protection", inCategory(CategoryPassBlock)},
		{"elusive", inCategory(CategoryRun)},
	},
	WR: {
		{"deep-threat", isAction(ActionDeepRoute)},
		{"yac-threat", isAction(ActionScreen, ActionShortRoute)},
		{"route-technician", inCategory(CategoryRoute)},
		{"slot-specialist", func(_ Assignment, pc PlayContext) bool { return pc.Location == LocationSlot }},
		{"blocker", inCategory(CategoryRunBlock)},
	},
	TE: {
		{"seam-threat", isAction(ActionDeepRoute, ActionIntermediateRoute)},
		{"blocker", inCategory(CategoryRunBlock)},
		{"pass-protection", inCategory(CategoryPassBlock)},
		{"route-technician", inCategory(CategoryRoute)},
	},
	OL: {
		{"zone-blocker", isAction(ActionZoneBlock)},
		{"gap-blocker", isAction(ActionGapBlock, ActionDoubleTeam)},
		{"hammer", isAction(ActionPullBlock)},
		{"pass-protection", inCategory(CategoryPassBlock)},
	},
	DL: {
		{"stunt-specialist", isAction(ActionStunt)},
		{"pass-rusher", inCategory(CategoryPassRush)},
		{"run-stuffer", inCategory(CategoryRunDefense)},
		{"pass-rusher", func(_ Assignment, pc PlayContext) bool { return pc.PlayType == rates.Pass }},
	},
	LB: {
		{"blitzer", isAction(ActionBlitz)},
		{"spy", isAction(ActionSpy)},
		{"run-stopper", inCategory(CategoryRunDefense)},
		{"coverage-backer", inCategory(CategoryManCoverage, CategoryZoneCoverage)},
		{"pass-rusher", inCategory(CategoryPassRush)},
	},
	CB: {
		{"press-corner", isAction(ActionPress)},
		{"ball-hawk", isAction(ActionDeepZone)},
		{"man-cover", inCategory(CategoryManCoverage)},
		{"zone-cover", inCategory(CategoryZoneCoverage)},
		{"run-support", func(_ Assignment, pc PlayContext) bool { return pc.PlayType == rates.Run }},
	},
	S: {
		{"box-safety", func(_ Assignment, pc PlayContext) bool { return pc.Location == LocationBox }},
		{"ball-hawk", isAction(ActionDeepZone)},
		{"man-cover", inCategory(CategoryManCoverage)},
		{"run-support", inCategory(CategoryRunDefense)},
		{"blitzer", isAction(ActionBlitz)},
	},
}

// SelectTrait returns the single trait (name and bonus) that applies to the
// player on this play, or ("", 0) when none does.
func SelectTrait(pos Position, traits map[string]float64, asg *Assignment, pc PlayContext) (string, float64) {
	if len(traits) == 0 {
		return "", 0
	}
	var a Assignment
	if asg != nil {
		a = *asg
	}
	for _, r := range traitRules[pos] {
		if !r.when(a, pc) {
			continue
		}
		if v := traits[r.trait]; v != 0 {
			return r.trait, v
		}
	}
	return "", 0
}
