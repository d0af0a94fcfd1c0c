package rating

import (
	"errors"
	"fmt"
)

var ErrIllegalAssignment = errors.New("illegal assignment for position")

// Position is a roster slot.
type Position string

const (
	QB Position = "QB"
	RB Position = "RB"
	WR Position = "WR"
	TE Position = "TE"
	OL Position = "OL"
	DL Position = "DL"
	LB Position = "LB"
	CB Position = "CB"
	S  Position = "S"
)

// Category groups assignment actions.
type Category uint8

const (
	CategoryNone Category = iota
	CategoryPass
	CategoryRun
	CategoryRoute
	CategoryRunBlock
	CategoryPassBlock
	CategoryPassRush
	CategoryRunDefense
	CategoryManCoverage
	CategoryZoneCoverage
)

var categoryNames = [...]string{
	CategoryNone:         "none",
	CategoryPass:         "pass",
	CategoryRun:          "run",
	CategoryRoute:        "route",
	CategoryRunBlock:     "run-block",
	CategoryPassBlock:    "pass-block",
	CategoryPassRush:     "pass-rush",
	CategoryRunDefense:   "run-defense",
	CategoryManCoverage:  "man-coverage",
	CategoryZoneCoverage: "zone-coverage",
}

func (c Category) String() string {
	if int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return fmt.Sprintf("category(%d)", uint8(c))
}

// Action is the concrete instruction inside a category.
type Action uint8

const (
	ActionNone Action = iota

	// quarterback
	ActionQuickDrop
	ActionDrop5
	ActionDrop7
	ActionBoot
	ActionRollout
	ActionOption
	ActionZoneRead
	ActionHandoff

	// ball carrier
	ActionZoneInsideLeft
	ActionZoneInsideRight
	ActionZoneOutsideLeft
	ActionZoneOutsideRight
	ActionPowerLeft
	ActionPowerRight
	ActionCounter
	ActionDraw
	ActionSweep

	// receivers
	ActionShortRoute
	ActionIntermediateRoute
	ActionDeepRoute
	ActionScreen

	// blockers
	ActionZoneBlock
	ActionGapBlock
	ActionPullBlock
	ActionDoubleTeam
	ActionPassSet
	ActionChip

	// front seven
	ActionRushInside
	ActionRushOutside
	ActionStunt
	ActionBlitz
	ActionSpy
	ActionGapControl
	ActionScrape

	// secondary
	ActionPress
	ActionOffMan
	ActionDeepZone
	ActionFlatZone
	ActionHookZone
)

var actionNames = [...]string{
	ActionNone:              "none",
	ActionQuickDrop:         "quick-drop",
	ActionDrop5:             "drop-5",
	ActionDrop7:             "drop-7",
	ActionBoot:              "boot",
	ActionRollout:           "rollout",
	ActionOption:            "option",
	ActionZoneRead:          "zone-read",
	ActionHandoff:           "handoff",
	ActionZoneInsideLeft:    "zone-inside-left",
	ActionZoneInsideRight:   "zone-inside-right",
	ActionZoneOutsideLeft:   "zone-outside-left",
	ActionZoneOutsideRight:  "zone-outside-right",
	ActionPowerLeft:         "power-left",
	ActionPowerRight:        "power-right",
	ActionCounter:           "counter",
	ActionDraw:              "draw",
	ActionSweep:             "sweep",
	ActionShortRoute:        "short-route",
	ActionIntermediateRoute: "intermediate-route",
	ActionDeepRoute:         "deep-route",
	ActionScreen:            "screen",
	ActionZoneBlock:         "zone-block",
	ActionGapBlock:          "gap-block",
	ActionPullBlock:         "pull-block",
	ActionDoubleTeam:        "double-team",
	ActionPassSet:           "pass-set",
	ActionChip:              "chip",
	ActionRushInside:        "rush-inside",
	ActionRushOutside:       "rush-outside",
	ActionStunt:             "stunt",
	ActionBlitz:             "blitz",
	ActionSpy:               "spy",
	ActionGapControl:        "gap-control",
	ActionScrape:            "scrape",
	ActionPress:             "press",
	ActionOffMan:            "off-man",
	ActionDeepZone:          "deep-zone",
	ActionFlatZone:          "flat-zone",
	ActionHookZone:          "hook-zone",
}

func (a Action) String() string {
	if int(a) < len(actionNames) {
		return actionNames[a]
	}
	return fmt.Sprintf("action(%d)", uint8(a))
}

// ParseAction maps a wire name back to its Action.
func ParseAction(s string) (Action, bool) {
	for i, n := range actionNames {
		if n == s {
			return Action(i), true
		}
	}
	return ActionNone, false
}

// ParseCategory maps a wire name back to its Category.
func ParseCategory(s string) (Category, bool) {
	for i, n := range categoryNames {
		if n == s {
			return Category(i), true
		}
	}
	return CategoryNone, false
}

// Assignment is what one player is told to do on one play.
type Assignment struct {
	Category Category `json:"category"`
	Action   Action   `json:"action"`
}

func (a Assignment) String() string { return a.Category.String() + "/" + a.Action.String() }

// zoneRun reports whether the action is one of the zone running tracks.
func (a Action) zoneRun() bool {
	switch a {
	case ActionZoneInsideLeft, ActionZoneInsideRight, ActionZoneOutsideLeft, ActionZoneOutsideRight:
		return true
	}
	return false
}

func (a Action) gapRun() bool {
	switch a {
	case ActionPowerLeft, ActionPowerRight, ActionCounter:
		return true
	}
	return false
}

var (
	qbPass       = []Action{ActionQuickDrop, ActionDrop5, ActionDrop7, ActionBoot, ActionRollout}
	qbRun        = []Action{ActionOption, ActionZoneRead, ActionHandoff}
	carrierRun   = []Action{ActionZoneInsideLeft, ActionZoneInsideRight, ActionZoneOutsideLeft, ActionZoneOutsideRight, ActionPowerLeft, ActionPowerRight, ActionCounter, ActionDraw, ActionSweep}
	routes       = []Action{ActionShortRoute, ActionIntermediateRoute, ActionDeepRoute, ActionScreen}
	runBlocks    = []Action{ActionZoneBlock, ActionGapBlock, ActionPullBlock, ActionDoubleTeam}
	passBlocks   = []Action{ActionPassSet, ActionChip}
	rushes       = []Action{ActionRushInside, ActionRushOutside, ActionStunt, ActionBlitz}
	runFits      = []Action{ActionGapControl, ActionScrape, ActionSpy}
	manCoverage  = []Action{ActionPress, ActionOffMan}
	zoneCoverage = []Action{ActionDeepZone, ActionFlatZone, ActionHookZone}
)

// legalActions is the per-position table of assignments a player may receive.
var legalActions = map[Position]map[Category][]Action{
	QB: {CategoryPass: qbPass, CategoryRun: qbRun},
	RB: {CategoryRun: carrierRun, CategoryRoute: routes, CategoryPassBlock: passBlocks},
	WR: {CategoryRoute: routes, CategoryRunBlock: {ActionZoneBlock, ActionGapBlock}, CategoryRun: {ActionSweep}},
	TE: {CategoryRoute: routes, CategoryRunBlock: runBlocks, CategoryPassBlock: passBlocks},
	OL: {CategoryRunBlock: runBlocks, CategoryPassBlock: {ActionPassSet}},
	DL: {CategoryPassRush: {ActionRushInside, ActionRushOutside, ActionStunt}, CategoryRunDefense: {ActionGapControl}},
	LB: {CategoryPassRush: rushes, CategoryRunDefense: runFits, CategoryManCoverage: manCoverage, CategoryZoneCoverage: zoneCoverage},
	CB: {CategoryManCoverage: manCoverage, CategoryZoneCoverage: zoneCoverage, CategoryPassRush: {ActionBlitz}, CategoryRunDefense: {ActionScrape}},
	S:  {CategoryManCoverage: manCoverage, CategoryZoneCoverage: zoneCoverage, CategoryPassRush: {ActionBlitz}, CategoryRunDefense: runFits},
}

// ValidateAssignment checks the assignment against the position's legal-action table.
func ValidateAssignment(pos Position, asg Assignment) error {
	cats, ok := legalActions[pos]
	if !ok {
		return fmt.Errorf("%w: unknown position %q", ErrIllegalAssignment, pos)
	}
	for _, a := range cats[asg.Category] {
		if a == asg.Action {
			return nil
		}
	}
	return fmt.Errorf("%w: %s cannot take %s", ErrIllegalAssignment, pos, asg)
}

// LegalAssignments lists every assignment a position may take, in table order.
func LegalAssignments(pos Position) []Assignment {
	var out []Assignment
	for c := CategoryNone; int(c) < len(categoryNames); c++ {
		for _, a := range legalActions[pos][c] {
			out = append(out, Assignment{Category: c, Action: a})
		}
	}
	return out
}

func (c Category) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

func (c *Category) UnmarshalText(b []byte) error {
	v, ok := ParseCategory(string(b))
	if !ok {
		return fmt.Errorf("unknown assignment category %q", b)
	}
	*c = v
	return nil
}

func (a Action) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

func (a *Action) UnmarshalText(b []byte) error {
	v, ok := ParseAction(string(b))
	if !ok {
		return fmt.Errorf("unknown assignment action %q", b)
	}
	*a = v
	return nil
}
