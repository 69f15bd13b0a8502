package game

import (
	"errors"
	"fmt"
	"sort"

	"github.com/samber/lo"

	"github.com/domino14/trio/board"
)

const (
	ProfileTrio     = "trio"
	ProfileExtended = "extended"
)

var ErrUnknownProfile = errors.New("unknown rules profile")

// Weights are the fixed scoring constants of a profile.
type Weights struct {
	// NearWinBonus is awarded for a line with one empty cell that shares an
	// attribute with the piece-to-play.
	NearWinBonus int
	// EarlyThreatPenalty is added (it is negative) for such a line with two
	// empty cells.
	EarlyThreatPenalty int
	// WinWeight and TieWeight are multiplied by (depth+1) for terminal states.
	WinWeight int
	TieWeight int
}

type profile struct {
	variant     board.Variant
	weights     Weights
	cutoffDepth int
	openingBook bool
}

var profiles = map[string]profile{
	ProfileTrio: {
		variant:     board.VariantLines,
		weights:     Weights{NearWinBonus: 200, EarlyThreatPenalty: -50, WinWeight: 100000, TieWeight: 1000},
		cutoffDepth: 5,
		openingBook: true,
	},
	ProfileExtended: {
		variant:     board.VariantSquares,
		weights:     Weights{NearWinBonus: 300, EarlyThreatPenalty: -100, WinWeight: 1000000, TieWeight: 0},
		cutoffDepth: 4,
	},
}

// ProfileNames lists the known profiles in sorted order.
func ProfileNames() []string {
	names := lo.Keys(profiles)
	sort.Strings(names)
	return names
}

// Rules is an immutable bundle of everything that differs between game
// profiles: board shape, win rule, heuristic weights and search depth.
// Many states share one Rules.
type Rules struct {
	name        string
	layout      *board.Layout
	weights     Weights
	cutoffDepth int
	openingBook bool
}

// NewRules builds rules for the named profile on a board of the given
// dimensions.
func NewRules(profileName string, dims board.Dims) (*Rules, error) {
	p, ok := profiles[profileName]
	if !ok {
		return nil, fmt.Errorf("%w: %q (known: %v)", ErrUnknownProfile, profileName, ProfileNames())
	}
	layout, err := board.NewLayout(dims, p.variant)
	if err != nil {
		return nil, err
	}
	return &Rules{
		name:        profileName,
		layout:      layout,
		weights:     p.weights,
		cutoffDepth: p.cutoffDepth,
		openingBook: p.openingBook,
	}, nil
}

// NewCustomRules is used when the weights or depth are overridden, for
// example from a config file.
func NewCustomRules(name string, dims board.Dims, variant board.Variant, w Weights,
	cutoffDepth int, openingBook bool) (*Rules, error) {

	if cutoffDepth < 0 {
		return nil, fmt.Errorf("negative cutoff depth %d", cutoffDepth)
	}
	layout, err := board.NewLayout(dims, variant)
	if err != nil {
		return nil, err
	}
	return &Rules{
		name:        name,
		layout:      layout,
		weights:     w,
		cutoffDepth: cutoffDepth,
		openingBook: openingBook,
	}, nil
}

func (r *Rules) Name() string {
	return r.name
}

func (r *Rules) Layout() *board.Layout {
	return r.layout
}

func (r *Rules) Dims() board.Dims {
	return r.layout.Dims()
}

func (r *Rules) Variant() board.Variant {
	return r.layout.Variant()
}

func (r *Rules) Weights() Weights {
	return r.weights
}

func (r *Rules) CutoffDepth() int {
	return r.cutoffDepth
}

// OpeningBook tells the search it may play a stored first move on the
// reference board instead of searching.
func (r *Rules) OpeningBook() bool {
	return r.openingBook && r.Dims() == board.Reference
}
