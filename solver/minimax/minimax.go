// Package minimax is plain depth-limited minimax with no pruning. It is
// far slower than alphabeta and exists to check it: both must agree on
// the score and the chosen state.
package minimax

import (
	"context"
	"errors"
	"math"

	"github.com/domino14/trio/equity"
	"github.com/domino14/trio/game"
	"github.com/domino14/trio/movegen"
)

var ErrNoMoves = errors.New("no moves at a non-terminal state")

// Search returns the minimax value of g for player and the child state
// that achieves it. Ties between children go to the first one generated.
func Search(ctx context.Context, mg movegen.MoveGenerator, g *game.GameState, depth int,
	player game.Player) (int, *game.GameState, error) {

	return search(ctx, mg, equity.ForRules(g.Rules()), g, depth, player)
}

func search(ctx context.Context, mg movegen.MoveGenerator, eval *equity.Evaluator,
	g *game.GameState, depth int, player game.Player) (int, *game.GameState, error) {

	if ctx.Err() != nil {
		return 0, nil, ctx.Err()
	}
	if score, ok := eval.Terminal(g, player, depth); ok {
		return score, g, nil
	}
	if depth == 0 {
		return eval.CostEstimate(g, player, depth), g, nil
	}

	bestScore := math.MinInt
	if player == game.MinPlayer {
		bestScore = math.MaxInt
	}
	var best *game.GameState
	for m := range mg.Generate(g) {
		next, err := g.Play(m)
		if err != nil {
			return 0, nil, err
		}
		score, _, err := search(ctx, mg, eval, next, depth-1, player.Other())
		if err != nil {
			return 0, nil, err
		}
		if (player == game.MaxPlayer && score > bestScore) ||
			(player == game.MinPlayer && score < bestScore) {
			bestScore = score
			best = next
		}
	}
	if best == nil {
		return 0, nil, ErrNoMoves
	}
	return bestScore, best, nil
}
