package alphabeta

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/trio/game"
	"github.com/domino14/trio/move"
)

// TerminalKind tells a win from a tie in trace events.
type TerminalKind uint8

const (
	TerminalWin TerminalKind = iota
	TerminalTie
)

func (k TerminalKind) String() string {
	if k == TerminalWin {
		return "win"
	}
	return "tie"
}

// Tracer observes a search. It is only called for states in verbose mode
// and must not change anything the search depends on.
type Tracer interface {
	// Searched is called for each child state the search creates.
	Searched(parent *game.GameState, m move.Move)
	// TerminalFound reports a win (for winner) or a tie, plies moves below
	// the root.
	TerminalFound(kind TerminalKind, winner game.Player, plies int, g *game.GameState)
	// BoundUpdated reports a new alpha (MAX) or beta (MIN).
	BoundUpdated(player game.Player, oldBound, newBound int)
	// Pruned reports that the rest of a node's moves were skipped.
	Pruned(player game.Player)
}

// LogTracer writes trace events to a zerolog logger.
type LogTracer struct {
	logger zerolog.Logger
}

func NewLogTracer(logger zerolog.Logger) *LogTracer {
	return &LogTracer{logger: logger}
}

// DefaultTracer logs through the global logger.
func DefaultTracer() *LogTracer {
	return NewLogTracer(log.Logger)
}

func (t *LogTracer) Searched(parent *game.GameState, m move.Move) {
	t.logger.Info().
		Int("piece", int(parent.PieceToPlay())).
		Int("cell", m.Cell).
		Int("handoff", int(m.Handoff)).
		Msg("searched-state")
}

func (t *LogTracer) TerminalFound(kind TerminalKind, winner game.Player, plies int, g *game.GameState) {
	ev := t.logger.Info().Int("moves", plies)
	if kind == TerminalWin {
		ev = ev.Stringer("win-for", winner)
		if line, ok := g.WinningLine(); ok {
			ev = ev.Stringer("line", line.Family).Ints("cells", line.Cells)
		}
	}
	ev.Str("state", g.Render()).Msgf("%s-state-found", kind)
}

func (t *LogTracer) BoundUpdated(player game.Player, oldBound, newBound int) {
	name := "alpha"
	if player == game.MinPlayer {
		name = "beta"
	}
	t.logger.Info().
		Stringer("player", player).
		Str("bound", name).
		Int("old", oldBound).
		Int("new", newBound).
		Msg("bound-updated")
}

func (t *LogTracer) Pruned(player game.Player) {
	t.logger.Info().Stringer("player", player).Msg("pruning")
}
