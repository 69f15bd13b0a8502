package automatic

import (
	"context"
	"errors"

	"lukechampine.com/frand"

	"github.com/domino14/trio/game"
	"github.com/domino14/trio/movegen"
	"github.com/domino14/trio/solver/alphabeta"
)

const (
	EnginePlayer = "engine"
	RandomPlayer = "random"
)

// Player takes one turn: it places the piece-to-play and hands a piece to
// the opponent, returning the new state.
type Player interface {
	Name() string
	Move(ctx context.Context, g *game.GameState) (*game.GameState, error)
}

type engine struct {
	name   string
	solver *alphabeta.Solver
}

func (e *engine) Name() string { return e.name }

func (e *engine) Move(ctx context.Context, g *game.GameState) (*game.GameState, error) {
	return e.solver.CalculateNextMove(ctx, g)
}

// Nodes is the node count of the engine's last search.
func (e *engine) Nodes() uint64 {
	return e.solver.Stats().Nodes
}

type random struct {
	name    string
	movegen movegen.MoveGenerator
}

func (r *random) Name() string { return r.name }

func (r *random) Move(ctx context.Context, g *game.GameState) (*game.GameState, error) {
	moves := movegen.GenAll(r.movegen, g)
	if len(moves) == 0 {
		return nil, errors.New("random player has no moves")
	}
	return g.Play(moves[frand.Intn(len(moves))])
}
